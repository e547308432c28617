package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/products?q=&kat=&sort=&min=&max=&c= (200 OK)
// GET v1/products/{slug} (200 OK, 404 Not found)

type CatalogHandler struct {
	browser  port.CatalogBrowser
	tagMatch domain.TagMatch
}

func RegisterCatalog(
	mux *http.ServeMux, browser port.CatalogBrowser, tagMatch domain.TagMatch,
) {
	h := CatalogHandler{browser, tagMatch}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{slug}", h.GetProduct)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	q := catalog.ParseQuery(r.URL.Query(), h.tagMatch)
	page, err := h.browser.Browse(r.Context(), q)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, fromCatalogPage(page))
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	detail, err := h.browser.Product(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, productDetail{
		Product: fromProduct(detail.Product),
		Similar: fromProducts(detail.Similar),
	})
}
