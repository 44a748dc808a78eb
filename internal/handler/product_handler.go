package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tradepost/internal/auth"
	"tradepost/internal/model"
	"tradepost/internal/repository"
	"tradepost/internal/service"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, model.Categories)
}

func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	listings, err := h.listings.Search(query, category)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if listings == nil {
		listings = []model.Listing{}
	}
	h.writeJSON(w, http.StatusOK, listings)
}

// ProductDetail pairs a listing with its owner's public profile.
type ProductDetail struct {
	model.Listing
	OwnerProfile *Profile `json:"owner_profile,omitempty"`
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	listing, err := h.listings.Get(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	detail := ProductDetail{Listing: *listing}
	owner, err := h.accounts.Profile(listing.Owner)
	switch {
	case err == nil:
		p := profileOf(owner)
		detail.OwnerProfile = &p
	case !errors.Is(err, service.ErrNotFound):
		// A dangling owner just omits the profile; anything else (storage
		// corruption) is fatal to the request.
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, detail)
}

type CreateProductRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.listings.Create(auth.EmailFromContext(r.Context()), service.NewListing{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

type UpdateProductRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err = h.listings.Edit(id, auth.EmailFromContext(r.Context()), repository.ListingUpdate{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.listings.Delete(id, auth.EmailFromContext(r.Context())); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) MyProducts(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.Mine(auth.EmailFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if listings == nil {
		listings = []model.Listing{}
	}
	h.writeJSON(w, http.StatusOK, listings)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Overview(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
