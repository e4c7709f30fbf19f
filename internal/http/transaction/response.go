package transaction

import (
	"time"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/money"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

type categoryResponse struct {
	Key   category.Key `json:"key"`
	Name  string       `json:"name"`
	Color string       `json:"color"`
}

type transactionResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Amount          money.Amount     `json:"amount"`
	AmountFormatted string           `json:"amount_formatted"`
	Type            transaction.Type `json:"type"`
	Category        categoryResponse `json:"category"`
	Date            time.Time        `json:"date"`
	DateFormatted   string           `json:"date_formatted"`
}

func (h *Handler) toResponse(e transaction.Entry) transactionResponse {
	c, ok := category.Find(h.cats, e.Category)
	if !ok {
		c = category.Unknown
	}

	return transactionResponse{
		ID:              e.ID,
		Name:            e.Name,
		Amount:          e.Amount,
		AmountFormatted: e.AmountFormatted,
		Type:            e.Type,
		Category: categoryResponse{
			Key:   c.Key,
			Name:  c.Name,
			Color: c.Color,
		},
		Date:          e.Date,
		DateFormatted: e.DateFormatted,
	}
}

func (h *Handler) toResponseList(entries []transaction.Entry) []transactionResponse {
	resp := make([]transactionResponse, len(entries))
	for i, e := range entries {
		resp[i] = h.toResponse(e)
	}

	return resp
}
