package httphandler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/adapter/xlsx"
	"github.com/niksmo/storefront/internal/core/port"
)

// All routes require the X-Admin-Token header.
//
// POST v1/admin/products JSON (200 OK, 400 Bad request)
// DELETE v1/admin/products/{slug} (204 No content, 404 Not found)
// POST v1/admin/products/import XLSX (200 OK, 400 Bad request)
// GET v1/admin/products/export (200 OK, XLSX)

const (
	XLSXMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	importPath = "/v1/admin/products/import"
)

// Uploads lists the routes that take a non-JSON body; see [AllowJSON].
var Uploads = map[string]string{
	http.MethodPost + " " + importPath: XLSXMediaType,
}

type AdminHandler struct {
	editor   port.CatalogEditor
	transfer port.CatalogTransfer
}

func RegisterAdmin(
	mux *http.ServeMux,
	token string,
	editor port.CatalogEditor,
	transfer port.CatalogTransfer,
) {
	h := AdminHandler{editor, transfer}
	guard := func(hf http.HandlerFunc) http.Handler {
		return RequireAdminToken(token, hf)
	}
	mux.Handle("POST /v1/admin/products", guard(h.PostProduct))
	mux.Handle("DELETE /v1/admin/products/{slug}", guard(h.DeleteProduct))
	mux.Handle("POST "+importPath, guard(h.ImportProducts))
	mux.Handle("GET /v1/admin/products/export", guard(h.ExportProducts))
}

func (h AdminHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostProduct"
	log := slog.With("op", op)

	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	p, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, invalidReason(err))
		return
	}

	stored, err := h.editor.UpsertProduct(r.Context(), p)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("product stored", "slug", stored.Slug)
	writeJSON(w, http.StatusOK, fromProduct(stored))
}

func (h AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.DeleteProduct"
	log := slog.With("op", op)

	slug := r.PathValue("slug")
	if err := h.editor.DeleteProduct(r.Context(), slug); err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("product deleted", "slug", slug)
	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) ImportProducts(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.ImportProducts"
	log := slog.With("op", op)

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(http.MaxBytesReader(w, r.Body, maxBodyBytes)); err != nil {
		writeError(w, http.StatusBadRequest, "failed to read spreadsheet")
		log.Warn("failed to read body", "err", err)
		return
	}

	ps, rowErrs, err := xlsx.ReadProducts(&buf)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid spreadsheet")
		log.Warn("failed to parse spreadsheet", "err", err)
		return
	}

	report, err := h.transfer.ImportProducts(r.Context(), ps)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	res := importResult{Stored: report.Stored, Skipped: []importIssue{}}
	if res.Stored == nil {
		res.Stored = []string{}
	}
	for _, e := range rowErrs {
		res.Skipped = append(res.Skipped, importIssue{Row: e.Row, Error: e.Err.Error()})
	}
	for _, rej := range report.Rejected {
		res.Skipped = append(res.Skipped, importIssue{
			Title: rej.Title, Error: invalidReason(rej.Err),
		})
	}

	log.Info("catalog imported", "stored", len(res.Stored), "skipped", len(res.Skipped))
	writeJSON(w, http.StatusOK, res)
}

func (h AdminHandler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.ExportProducts"
	log := slog.With("op", op)

	ps, err := h.transfer.ExportProducts(r.Context())
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	var buf bytes.Buffer
	if err := xlsx.WriteProducts(&buf, ps); err != nil {
		writeServiceError(w, log, err)
		return
	}

	w.Header().Set("Content-Type", XLSXMediaType)
	w.Header().Set("Content-Disposition", `attachment; filename="urunler.xlsx"`)
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
