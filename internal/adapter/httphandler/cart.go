package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// Routes are scoped to the gzu_cart session cookie.
//
// GET v1/cart (200 OK)
// POST v1/cart/items JSON {"id" string, "qty" int} (200 OK, 404 Not found)
// POST v1/cart/items/{id}/inc, POST v1/cart/items/{id}/dec (200 OK)
// DELETE v1/cart/items/{id} (200 OK)
// DELETE v1/cart (204 No content)
// GET v1/cart/totals?coupon=code (200 OK, 400 Bad request)

type CartHandler struct {
	carts port.CartManager
}

func RegisterCart(mux *http.ServeMux, carts port.CartManager) {
	h := CartHandler{carts}
	handle := func(pattern string, hf http.HandlerFunc) {
		mux.Handle(pattern, CartSession(hf))
	}
	handle("GET /v1/cart", h.GetCart)
	handle("POST /v1/cart/items", h.PostItem)
	handle("POST /v1/cart/items/{id}/inc", h.IncItem)
	handle("POST /v1/cart/items/{id}/dec", h.DecItem)
	handle("DELETE /v1/cart/items/{id}", h.DeleteItem)
	handle("DELETE /v1/cart", h.DeleteCart)
	handle("GET /v1/cart/totals", h.GetTotals)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"

	c, err := h.carts.Cart(r.Context(), sessionID(r))
	h.respond(w, op, c, err)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	c, err := h.carts.AddToCart(r.Context(), sessionID(r), req.ID, req.Qty)
	h.respond(w, op, c, err)
}

func (h CartHandler) IncItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.IncItem"

	c, err := h.carts.IncCartItem(r.Context(), sessionID(r), r.PathValue("id"))
	h.respond(w, op, c, err)
}

func (h CartHandler) DecItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DecItem"

	c, err := h.carts.DecCartItem(r.Context(), sessionID(r), r.PathValue("id"))
	h.respond(w, op, c, err)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"

	c, err := h.carts.RemoveCartItem(r.Context(), sessionID(r), r.PathValue("id"))
	h.respond(w, op, c, err)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteCart"

	if err := h.carts.ClearCart(r.Context(), sessionID(r)); err != nil {
		writeServiceError(w, slog.With("op", op), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetTotals"
	log := slog.With("op", op)

	coupon := r.URL.Query().Get("coupon")
	c, totals, err := h.carts.CartTotals(r.Context(), sessionID(r), coupon)
	if errors.Is(err, cart.ErrUnknownCoupon) {
		writeError(w, http.StatusBadRequest, "unknown coupon")
		return
	}
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, checkoutSummary{
		Cart:   fromCart(c),
		Totals: fromTotals(totals),
	})
}

func (h CartHandler) respond(w http.ResponseWriter, op string, c domain.Cart, err error) {
	if err != nil {
		writeServiceError(w, slog.With("op", op), err)
		return
	}
	writeJSON(w, http.StatusOK, fromCart(c))
}
