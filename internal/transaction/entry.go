package transaction

import (
	"time"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/money"
)

// Entry is a record prepared for display.
type Entry struct {
	ID              string
	Name            string
	Amount          money.Amount
	AmountFormatted string
	Type            Type
	Category        category.Key
	Date            time.Time
	DateFormatted   string
}

// Format converts a stored record into a display entry. The amount is formatted the
// same way regardless of type.
func Format(r Record, f *format.Formatter) Entry {
	amount := money.Parse(r.Amount)

	return Entry{
		ID:              r.ID,
		Name:            r.Name,
		Amount:          amount,
		AmountFormatted: f.Currency(amount),
		Type:            r.Type,
		Category:        r.Category,
		Date:            r.Date,
		DateFormatted:   f.ShortDate(r.Date),
	}
}
