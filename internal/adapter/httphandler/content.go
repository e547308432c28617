package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/blog?tag=, GET v1/blog/{slug} (200 OK, 404 Not found)
// GET v1/forum?tag=, GET v1/forum/{slug} (200 OK, 404 Not found)

type ContentHandler struct {
	content port.ContentReader
}

func RegisterContent(mux *http.ServeMux, content port.ContentReader) {
	h := ContentHandler{content}
	mux.HandleFunc("GET /v1/blog", h.GetBlogPosts)
	mux.HandleFunc("GET /v1/blog/{slug}", h.GetBlogPost)
	mux.HandleFunc("GET /v1/forum", h.GetForumThreads)
	mux.HandleFunc("GET /v1/forum/{slug}", h.GetForumThread)
}

func (h ContentHandler) GetBlogPosts(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.GetBlogPosts"

	posts, err := h.content.BlogPosts(r.Context(), r.URL.Query().Get("tag"))
	if err != nil {
		writeServiceError(w, slog.With("op", op), err)
		return
	}

	out := make([]blogPost, len(posts))
	for i, p := range posts {
		out[i] = fromBlogPost(p, false)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h ContentHandler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.GetBlogPost"

	detail, err := h.content.BlogPost(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, slog.With("op", op), err)
		return
	}

	writeJSON(w, http.StatusOK, blogPostDetail{
		Post:     fromBlogPost(detail.Post, true),
		Products: fromProducts(detail.Products),
	})
}

func (h ContentHandler) GetForumThreads(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.GetForumThreads"

	threads, err := h.content.ForumThreads(r.Context(), r.URL.Query().Get("tag"))
	if err != nil {
		writeServiceError(w, slog.With("op", op), err)
		return
	}

	out := make([]forumThread, len(threads))
	for i, t := range threads {
		out[i] = fromForumThread(t, false)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h ContentHandler) GetForumThread(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.GetForumThread"

	detail, err := h.content.ForumThread(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, slog.With("op", op), err)
		return
	}

	writeJSON(w, http.StatusOK, forumThreadDetail{
		Thread:   fromForumThread(detail.Thread, true),
		Products: fromProducts(detail.Products),
	})
}
