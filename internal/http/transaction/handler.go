package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

type Handler struct {
	svc  *transaction.Service
	cats []category.Category
	f    *format.Formatter
}

func NewHandler(svc *transaction.Service, cats []category.Category, f *format.Formatter) *Handler {
	return &Handler{svc: svc, cats: cats, f: f}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

type createTransactionRequest struct {
	Name     string           `json:"name"`
	Amount   string           `json:"amount"`
	Type     transaction.Type `json:"type"`
	Category string           `json:"category"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Register(r.Context(), *user, transaction.RegisterParams{
		Name:     req.Name,
		Amount:   req.Amount,
		Type:     req.Type,
		Category: category.ParseKey(req.Category),
	})
	if err != nil {
		status := http.StatusBadRequest
		if !isValidation(err) {
			slog.Error("failed to register transaction", "user_id", user.ID, "error", err)

			status = http.StatusInternalServerError
		}

		writeError(w, status, transaction.AlertMessage(err))

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(h.toResponse(transaction.Format(*rec, h.f))); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	entries := h.svc.List(r.Context(), *user, h.f)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func isValidation(err error) bool {
	return errors.Is(err, transaction.ErrMissingType) ||
		errors.Is(err, transaction.ErrMissingCategory) ||
		errors.Is(err, transaction.ErrInvalidAmount) ||
		errors.Is(err, transaction.ErrInvalidParams)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(errorResponse{Message: msg}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
