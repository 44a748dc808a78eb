package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tradepost/internal/auth"
	"tradepost/internal/model"
)

// CartResponse is the user's cart with the total of the snapshot prices.
type CartResponse struct {
	Items []model.Entry `json:"items"`
	Total float64       `json:"total"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.cart.Items(auth.EmailFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []model.Entry{}
	}
	h.writeJSON(w, http.StatusOK, CartResponse{Items: items, Total: total})
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.cart.Add(auth.EmailFromContext(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"status": "added to cart"})
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid cart index", http.StatusBadRequest)
		return
	}

	// Out-of-range positions, negative included, are a silent no-op.

	if err := h.cart.Remove(auth.EmailFromContext(r.Context()), index); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "removed from cart"})
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Checkout(auth.EmailFromContext(r.Context())); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "purchase completed"})
}

func (h *Handler) GetPurchases(w http.ResponseWriter, r *http.Request) {
	items, err := h.cart.History(auth.EmailFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []model.Entry{}
	}
	h.writeJSON(w, http.StatusOK, items)
}
