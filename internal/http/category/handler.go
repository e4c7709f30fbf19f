package category

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
)

type Handler struct {
	cats []category.Category
}

func NewHandler(cats []category.Category) *Handler {
	return &Handler{cats: cats}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.cats); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
