package summary

import (
	"slices"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/money"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

// CategoryTotal is one row of the monthly expense breakdown.
type CategoryTotal struct {
	Key            category.Key
	Name           string
	Color          string
	Total          money.Amount
	TotalFormatted string
	Percent        string
}

type CategorySummary struct {
	Month         Month
	ExpensesTotal money.Amount
	Rows          []CategoryTotal
}

// ByCategory breaks down the month's expenses per category, in the order of cats.
// Categories without spend are omitted; expenses with an unknown key end up in a
// trailing category.Unknown row. A record's month is read in f's location.
func ByCategory(records []transaction.Record, cats []category.Category, month Month, f *format.Formatter) CategorySummary {
	sums := make(map[category.Key]money.Amount, len(cats)+1)

	var total money.Amount

	for _, r := range records {
		if r.Type != transaction.TypeNegative || !month.Contains(f.In(r.Date)) {
			continue
		}

		amount := money.Parse(r.Amount)
		total = total.Add(amount)

		key := r.Category
		if _, listed := category.Find(cats, key); !listed {
			key = category.KeyUnknown
		}

		sums[key] = sums[key].Add(amount)
	}

	s := CategorySummary{
		Month:         month,
		ExpensesTotal: total,
		Rows:          []CategoryTotal{},
	}

	for _, c := range append(slices.Clip(cats), category.Unknown) {
		sum, ok := sums[c.Key]
		if !ok || !sum.IsPositive() {
			continue
		}

		s.Rows = append(s.Rows, CategoryTotal{
			Key:            c.Key,
			Name:           c.Name,
			Color:          c.Color,
			Total:          sum,
			TotalFormatted: f.Currency(sum),
			Percent:        percent(sum, total, f),
		})
	}

	return s
}

// percent guards the division itself: a row can only exist with a positive total,
// but a zero or NaN total must never reach the divide.
func percent(part, total money.Amount, f *format.Formatter) string {
	if total.IsNaN() {
		return "NaN%"
	}

	p, ok := part.Percent(total)
	if !ok {
		return f.Percent(0)
	}

	return f.Percent(p)
}
