package survey

import (
	"errors"
	"math"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
)

var (
	ErrNoQuestion    = errors.New("no active question")
	ErrUnknownChoice = errors.New("unknown choice")
)

// WizardState is the serialisable snapshot of a [Wizard].
// Step equal to the number of questions means the result screen.
type WizardState struct {
	Step    int
	Answers domain.Answers
}

// A Wizard walks through questions one at a time.
//
// It is not safe for concurrent use; every user owns their own wizard.
type Wizard struct {
	questions []domain.Question
	step      int
	answers   domain.Answers
}

func NewWizard(questions []domain.Question) *Wizard {
	return &Wizard{
		questions: questions,
		answers:   make(domain.Answers),
	}
}

// Restore rebuilds a wizard from a snapshot taken by a client.
//
// Answers to unknown questions and unknown choice ids are dropped, single
// questions keep one choice, and a multi answer holding [ChoiceNone] is
// reduced to it. The step is clamped into range and never passes the first
// unanswered question.
func Restore(questions []domain.Question, state WizardState) *Wizard {
	w := NewWizard(questions)
	for _, q := range questions {
		if a := sanitize(q, state.Answers[q.ID]); !a.Empty() {
			w.answers[q.ID] = a
		}
	}

	w.step = min(max(state.Step, 0), len(questions))
	for i := range w.step {
		if w.answers[questions[i].ID].Empty() {
			w.step = i
			break
		}
	}
	return w
}

// sanitize keeps only the parts of a that q accepts.
func sanitize(q domain.Question, a domain.Answer) domain.Answer {
	known := func(id string) bool {
		return slices.ContainsFunc(q.Choices, func(c domain.Choice) bool {
			return c.ID == id
		})
	}

	if q.Kind != domain.QuestionMulti {
		if known(a.Single) {
			return domain.Answer{Single: a.Single}
		}
		return domain.Answer{}
	}

	ids := a.Multi
	if len(ids) == 0 && a.Single != "" {
		ids = []string{a.Single}
	}

	var multi []string
	for _, id := range ids {
		if !known(id) || slices.Contains(multi, id) {
			continue
		}
		if id == ChoiceNone {
			return domain.Answer{Multi: []string{ChoiceNone}}
		}
		multi = append(multi, id)
	}
	return domain.Answer{Multi: multi}
}

func (w *Wizard) State() WizardState {
	return WizardState{Step: w.step, Answers: w.Answers()}
}

func (w *Wizard) Step() int {
	return w.step
}

func (w *Wizard) Total() int {
	return len(w.questions)
}

func (w *Wizard) IsResult() bool {
	return w.step >= len(w.questions)
}

// Question returns the active question, false on the result screen.
func (w *Wizard) Question() (domain.Question, bool) {
	if w.IsResult() {
		return domain.Question{}, false
	}
	return w.questions[w.step], true
}

func (w *Wizard) Answers() domain.Answers {
	return w.answers.Clone()
}

// CanNext reports whether the active question has an answer.
func (w *Wizard) CanNext() bool {
	q, ok := w.Question()
	if !ok {
		return false
	}
	a := w.answers[q.ID]
	if q.Kind == domain.QuestionMulti {
		return len(a.Multi) != 0
	}
	return a.Single != ""
}

// Next advances one step, or to the result after the last question.
// It returns false and changes nothing when the active question is
// unanswered.
func (w *Wizard) Next() bool {
	if !w.CanNext() {
		return false
	}
	w.step++
	return true
}

// Back returns to the previous question; the result screen goes back to
// the last question. Back on the first question does nothing.
func (w *Wizard) Back() bool {
	if w.step == 0 {
		return false
	}
	w.step--
	return true
}

func (w *Wizard) Restart() {
	w.step = 0
	w.answers = make(domain.Answers)
}

// Choose answers the active question. Single questions take the choice as
// their answer. Multi questions toggle it; [ChoiceNone] replaces every
// other selection and any other choice drops [ChoiceNone].
func (w *Wizard) Choose(choiceID string) error {
	q, ok := w.Question()
	if !ok {
		return ErrNoQuestion
	}

	if !slices.ContainsFunc(q.Choices, func(c domain.Choice) bool {
		return c.ID == choiceID
	}) {
		return ErrUnknownChoice
	}

	if q.Kind != domain.QuestionMulti {
		w.answers[q.ID] = domain.Answer{Single: choiceID}
		return nil
	}

	w.answers[q.ID] = domain.Answer{
		Multi: toggle(w.answers[q.ID].Multi, choiceID),
	}
	return nil
}

func toggle(current []string, choiceID string) []string {
	if choiceID == ChoiceNone {
		return []string{ChoiceNone}
	}

	next := slices.DeleteFunc(slices.Clone(current), func(id string) bool {
		return id == ChoiceNone
	})

	if i := slices.Index(next, choiceID); i >= 0 {
		return slices.Delete(next, i, i+1)
	}
	return append(next, choiceID)
}

// Progress is the completion percentage shown above the question.
func (w *Wizard) Progress() int {
	total := len(w.questions)
	if total == 0 || w.IsResult() {
		return 100
	}
	done := min(w.step+1, total)
	return int(math.Round(float64(done) / float64(total) * 100))
}
