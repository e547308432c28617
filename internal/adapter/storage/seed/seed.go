// Package seed holds the demo catalog and editorial content shipped with
// the binary.
package seed

import (
	"embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/niksmo/storefront/internal/core/domain"
)

//go:embed *.yaml
var files embed.FS

type (
	product struct {
		Slug           string   `yaml:"slug"`
		Title          string   `yaml:"title"`
		Brand          string   `yaml:"brand"`
		Description    string   `yaml:"description"`
		Price          float64  `yaml:"price"`
		CompareAtPrice *float64 `yaml:"compare_at_price"`
		Category       string   `yaml:"category"`
		Tags           []string `yaml:"tags"`
		Badge          string   `yaml:"badge"`
		Images         []image  `yaml:"images"`
	}

	image struct {
		Src string `yaml:"src"`
		Alt string `yaml:"alt"`
	}

	block struct {
		Type  string   `yaml:"type"`
		Text  string   `yaml:"text"`
		Items []string `yaml:"items"`
	}

	video struct {
		Provider string `yaml:"provider"`
		ID       string `yaml:"id"`
	}

	blogPost struct {
		Slug         string    `yaml:"slug"`
		Title        string    `yaml:"title"`
		Excerpt      string    `yaml:"excerpt"`
		Cover        string    `yaml:"cover"`
		Tags         []string  `yaml:"tags"`
		Author       string    `yaml:"author"`
		Minutes      int       `yaml:"minutes"`
		Date         time.Time `yaml:"date"`
		Video        *video    `yaml:"video"`
		ProductSlugs []string  `yaml:"product_slugs"`
		Content      []block   `yaml:"content"`
	}

	forumReply struct {
		Author string    `yaml:"author"`
		Date   time.Time `yaml:"date"`
		Text   string    `yaml:"text"`
	}

	forumThread struct {
		Slug         string       `yaml:"slug"`
		Title        string       `yaml:"title"`
		Excerpt      string       `yaml:"excerpt"`
		Tags         []string     `yaml:"tags"`
		Author       string       `yaml:"author"`
		Date         time.Time    `yaml:"date"`
		ProductSlugs []string     `yaml:"product_slugs"`
		Replies      []forumReply `yaml:"replies"`
	}
)

func Products() ([]domain.Product, error) {
	const op = "seed.Products"

	var vs []product
	if err := decode("catalog.yaml", &vs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, len(vs))
	for i, v := range vs {
		ps[i] = domain.Product{
			Slug:           v.Slug,
			Title:          v.Title,
			Brand:          v.Brand,
			Description:    v.Description,
			Price:          v.Price,
			CompareAtPrice: v.CompareAtPrice,
			Category:       v.Category,
			Tags:           v.Tags,
			Badge:          v.Badge,
		}
		for _, img := range v.Images {
			ps[i].Images = append(ps[i].Images, domain.ProductImage(img))
		}
	}
	return ps, nil
}

func BlogPosts() ([]domain.BlogPost, error) {
	const op = "seed.BlogPosts"

	var vs []blogPost
	if err := decode("blog.yaml", &vs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	posts := make([]domain.BlogPost, len(vs))
	for i, v := range vs {
		posts[i] = domain.BlogPost{
			Slug:         v.Slug,
			Title:        v.Title,
			Excerpt:      v.Excerpt,
			Cover:        v.Cover,
			Tags:         v.Tags,
			Author:       v.Author,
			Minutes:      v.Minutes,
			Date:         v.Date,
			ProductSlugs: v.ProductSlugs,
		}
		if v.Video != nil {
			posts[i].Video = &domain.Video{Provider: v.Video.Provider, ID: v.Video.ID}
		}
		for _, b := range v.Content {
			posts[i].Content = append(posts[i].Content, domain.Block{
				Type: domain.BlockType(b.Type), Text: b.Text, Items: b.Items,
			})
		}
	}
	return posts, nil
}

func ForumThreads() ([]domain.ForumThread, error) {
	const op = "seed.ForumThreads"

	var vs []forumThread
	if err := decode("forum.yaml", &vs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	threads := make([]domain.ForumThread, len(vs))
	for i, v := range vs {
		threads[i] = domain.ForumThread{
			Slug:         v.Slug,
			Title:        v.Title,
			Excerpt:      v.Excerpt,
			Tags:         v.Tags,
			Author:       v.Author,
			Date:         v.Date,
			ProductSlugs: v.ProductSlugs,
		}
		for _, r := range v.Replies {
			threads[i].Replies = append(threads[i].Replies, domain.ForumReply(r))
		}
	}
	return threads, nil
}

func decode(name string, v any) error {
	b, err := files.ReadFile(name)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, v)
}
