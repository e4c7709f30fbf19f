package summary

import (
	"time"

	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/money"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

// NoTransactions replaces every date label when there is nothing to date.
const NoTransactions = "Não há transações"

type Card struct {
	Amount          money.Amount
	AmountFormatted string
	LastTransaction string
}

// Highlight holds the entries, expenses and net cards of the dashboard.
type Highlight struct {
	Entries  Card
	Expenses Card
	Total    Card
}

type partition struct {
	total money.Amount
	last  time.Time
	any   bool
}

func (p *partition) add(r transaction.Record) {
	p.total = p.total.Add(money.Parse(r.Amount))

	if !p.any || r.Date.After(p.last) {
		p.last = r.Date
	}

	p.any = true
}

// Highlights totals the records by type and labels each card with its latest date.
func Highlights(records []transaction.Record, f *format.Formatter) Highlight {
	var entries, expenses, all partition

	for _, r := range records {
		switch r.Type {
		case transaction.TypePositive:
			entries.add(r)
		case transaction.TypeNegative:
			expenses.add(r)
		default:
			continue
		}

		all.add(r)
	}

	net := entries.total.Sub(expenses.total)

	h := Highlight{
		Entries: Card{
			Amount:          entries.total,
			AmountFormatted: f.Currency(entries.total),
			LastTransaction: NoTransactions,
		},
		Expenses: Card{
			Amount:          expenses.total,
			AmountFormatted: f.Currency(expenses.total),
			LastTransaction: NoTransactions,
		},
		Total: Card{
			Amount:          net,
			AmountFormatted: f.Currency(net),
			LastTransaction: NoTransactions,
		},
	}

	if !all.any {
		return h
	}

	if entries.any {
		h.Entries.LastTransaction = "Última entrada dia " + f.LongDate(entries.last)
	}

	if expenses.any {
		h.Expenses.LastTransaction = "Última saída dia " + f.LongDate(expenses.last)
	}

	rangeEnd := all.last
	if expenses.any {
		rangeEnd = expenses.last
	}

	h.Total.LastTransaction = "01 a " + f.LongDate(rangeEnd)

	return h
}
