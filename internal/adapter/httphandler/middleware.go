package httphandler

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	CartCookieName   = "gzu_cart"
	AdminTokenHeader = "X-Admin-Token"

	cartCookieMaxAge = 30 * 24 * time.Hour
)

// AllowJSON rejects request bodies that are not JSON. uploads maps a route
// ("POST /path") to the one extra media type that route also accepts.
func AllowJSON(next http.Handler, uploads map[string]string) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || !allowedMediaType(r, mediaType, uploads) {
			writeError(w, http.StatusUnsupportedMediaType, "invalid media type")
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

func allowedMediaType(r *http.Request, mediaType string, uploads map[string]string) bool {
	if mediaType == "application/json" {
		return true
	}
	upload, ok := uploads[r.Method+" "+r.URL.Path]
	return ok && upload == mediaType
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func LogRequests(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		level := slog.LevelDebug
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		slog.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	}
	return http.HandlerFunc(hf)
}

// RequireAdminToken guards admin routes with a static token.
// An empty token disables them.
func RequireAdminToken(token string, next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(AdminTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			writeError(w, http.StatusUnauthorized, "admin token required")
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

type sessionKey struct{}

// CartSession makes sure every request carries a cart session id,
// issuing a fresh cookie when it is missing or malformed.
func CartSession(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(CartCookieName); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}

		if id == "" {
			id = uuid.NewString()
		}
		// refreshed on every visit, like the stored cart
		http.SetCookie(w, &http.Cookie{
			Name:     CartCookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(cartCookieMaxAge.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := context.WithValue(r.Context(), sessionKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hf)
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}
