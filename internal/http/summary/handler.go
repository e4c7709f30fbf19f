package summary

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/money"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
)

type Handler struct {
	svc *summary.Service
	f   *format.Formatter
	now func() time.Time
}

func NewHandler(svc *summary.Service, f *format.Formatter) *Handler {
	return &Handler{svc: svc, f: f, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/highlights", h.highlights)
	r.Get("/categories", h.categories)
}

type cardResponse struct {
	Amount          money.Amount `json:"amount"`
	AmountFormatted string       `json:"amount_formatted"`
	LastTransaction string       `json:"last_transaction"`
}

type highlightResponse struct {
	Entries  cardResponse `json:"entries"`
	Expenses cardResponse `json:"expenses"`
	Total    cardResponse `json:"total"`
}

type categoryTotalResponse struct {
	Key            category.Key `json:"key"`
	Name           string       `json:"name"`
	Color          string       `json:"color"`
	Total          money.Amount `json:"total"`
	TotalFormatted string       `json:"total_formatted"`
	Percent        string       `json:"percent"`
}

type categorySummaryResponse struct {
	Month         string                  `json:"month"`
	MonthLabel    string                  `json:"month_label"`
	Previous      string                  `json:"previous"`
	Next          string                  `json:"next"`
	ExpensesTotal money.Amount            `json:"expenses_total"`
	Categories    []categoryTotalResponse `json:"categories"`
}

func toCard(c summary.Card) cardResponse {
	return cardResponse{
		Amount:          c.Amount,
		AmountFormatted: c.AmountFormatted,
		LastTransaction: c.LastTransaction,
	}
}

func (h *Handler) highlights(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	hl := h.svc.Highlights(r.Context(), *user)

	w.Header().Set("Content-Type", "application/json")

	resp := highlightResponse{
		Entries:  toCard(hl.Entries),
		Expenses: toCard(hl.Expenses),
		Total:    toCard(hl.Total),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	month := summary.MonthOf(h.f.In(h.now()))

	if s := r.URL.Query().Get("month"); s != "" {
		m, err := summary.ParseMonth(s)
		if err != nil {
			http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
			return
		}

		month = m
	}

	s := h.svc.ByCategory(r.Context(), *user, month)

	resp := categorySummaryResponse{
		Month:         s.Month.String(),
		MonthLabel:    h.f.MonthYear(s.Month.Year, s.Month.Month),
		Previous:      s.Month.Prev().String(),
		Next:          s.Month.Next().String(),
		ExpensesTotal: s.ExpensesTotal,
		Categories:    make([]categoryTotalResponse, 0, len(s.Rows)),
	}

	for _, row := range s.Rows {
		resp.Categories = append(resp.Categories, categoryTotalResponse{
			Key:            row.Key,
			Name:           row.Name,
			Color:          row.Color,
			Total:          row.Total,
			TotalFormatted: row.TotalFormatted,
			Percent:        row.Percent,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
