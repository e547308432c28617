package domain

import "time"

type BlockType string

const (
	BlockParagraph BlockType = "p"
	BlockHeading   BlockType = "h2"
	BlockList      BlockType = "ul"
	BlockQuote     BlockType = "quote"
)

type (
	Block struct {
		Type  BlockType
		Text  string
		Items []string
	}

	Video struct {
		Provider string
		ID       string
	}

	BlogPost struct {
		Slug         string
		Title        string
		Excerpt      string
		Cover        string
		Tags         []string
		Author       string
		Minutes      int
		Date         time.Time
		Video        *Video
		ProductSlugs []string
		Content      []Block
	}

	BlogPostDetail struct {
		Post     BlogPost
		Products []Product
	}
)

type (
	ForumReply struct {
		Author string
		Date   time.Time
		Text   string
	}

	ForumThread struct {
		Slug         string
		Title        string
		Excerpt      string
		Tags         []string
		Author       string
		Date         time.Time
		Replies      []ForumReply
		ProductSlugs []string
	}

	ForumThreadDetail struct {
		Thread   ForumThread
		Products []Product
	}
)
