package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

const maxBodyBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// decodeJSON reads a single JSON value from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

// writeServiceError maps core errors onto status codes and logs the
// unexpected ones.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidProduct):
		writeError(w, http.StatusBadRequest, invalidReason(err))
	default:
		log.Error("request failed", "err", err)
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	}
}

// invalidReason drops the operation prefixes from a validation error.
func invalidReason(err error) string {
	msg := err.Error()
	i := strings.Index(msg, domain.ErrInvalidProduct.Error())
	if i < 0 {
		return msg
	}
	return strings.ReplaceAll(msg[i:], "\n", ": ")
}
