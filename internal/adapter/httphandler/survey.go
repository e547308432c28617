package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/survey"
)

// GET v1/survey/questions (200 OK)
// POST v1/survey/wizard JSON {"state", "action", "choice"} (200 OK, 400 Bad request)
// POST v1/survey/recommendations JSON {"answers", "limit"} (200 OK, 400 Bad request)

const (
	ActionStart   = "start"
	ActionChoose  = "choose"
	ActionNext    = "next"
	ActionBack    = "back"
	ActionRestart = "restart"
)

type SurveyHandler struct {
	recommender port.Recommender
	questions   []domain.Question
}

func RegisterSurvey(
	mux *http.ServeMux,
	recommender port.Recommender,
	questions []domain.Question,
) {
	h := SurveyHandler{recommender, questions}
	mux.HandleFunc("GET /v1/survey/questions", h.GetQuestions)
	mux.HandleFunc("POST /v1/survey/wizard", h.PostWizard)
	mux.HandleFunc("POST /v1/survey/recommendations", h.PostRecommendations)
}

func (h SurveyHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	out := make([]question, len(h.questions))
	for i, q := range h.questions {
		out[i] = fromQuestion(q)
	}
	writeJSON(w, http.StatusOK, out)
}

// PostWizard applies one action to the posted wizard state and returns the
// new state. The server keeps nothing between calls.
func (h SurveyHandler) PostWizard(w http.ResponseWriter, r *http.Request) {
	const op = "SurveyHandler.PostWizard"
	log := slog.With("op", op)

	var req wizardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	wz := survey.Restore(h.questions, survey.WizardState{
		Step:    req.State.Step,
		Answers: req.State.Answers.toDomain(),
	})

	moved := false
	switch req.Action {
	case ActionStart, "":
	case ActionChoose:
		err := wz.Choose(req.Choice)
		if errors.Is(err, survey.ErrNoQuestion) || errors.Is(err, survey.ErrUnknownChoice) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	case ActionNext:
		moved = wz.Next()
	case ActionBack:
		moved = wz.Back()
	case ActionRestart:
		wz.Restart()
		moved = true
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}

	view := fromWizard(wz, moved)
	if wz.IsResult() {
		rec, err := h.recommender.Recommend(r.Context(), wz.Answers(), 0)
		if err != nil {
			writeServiceError(w, log, err)
			return
		}
		dto := fromRecommendation(rec)
		view.Recommendation = &dto
	}

	writeJSON(w, http.StatusOK, view)
}

func (h SurveyHandler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "SurveyHandler.PostRecommendations"
	log := slog.With("op", op)

	var req recommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	rec, err := h.recommender.Recommend(r.Context(), req.Answers.toDomain(), req.Limit)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, fromRecommendation(rec))
}
