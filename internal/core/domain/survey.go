package domain

type QuestionKind string

const (
	QuestionSingle QuestionKind = "single"
	QuestionMulti  QuestionKind = "multi"
)

type (
	Choice struct {
		ID    string
		Title string
		Desc  string
		Emoji string
	}

	Question struct {
		ID       string
		Title    string
		Subtitle string
		Kind     QuestionKind
		Choices  []Choice
	}
)

// An Answer holds a single choice or a set of choices,
// depending on the question kind.
type Answer struct {
	Single string
	Multi  []string
}

func (a Answer) Empty() bool {
	return a.Single == "" && len(a.Multi) == 0
}

type Answers map[string]Answer

func (a Answers) Single(questionID string) string {
	return a[questionID].Single
}

func (a Answers) Clone() Answers {
	c := make(Answers, len(a))
	for k, v := range a {
		v.Multi = append([]string(nil), v.Multi...)
		c[k] = v
	}
	return c
}

type Recommendation struct {
	Category   string
	Tags       TagSet
	Products   []Product
	StoreQuery Query
}
