package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"tradepost/internal/repository"
	"tradepost/internal/service"
	"tradepost/internal/storage"
)

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorw("failed to encode response", "error", err)
	}
}

// writeError maps the service error taxonomy onto HTTP statuses. Storage
// corruption is the only condition treated as fatal to the request; it is
// logged and surfaced as a 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, repository.ErrEmailTaken):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrCorrupted):
		h.log.Errorw("storage corruption", "path", r.URL.Path, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	default:
		h.log.Errorw("request failed", "path", r.URL.Path, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
