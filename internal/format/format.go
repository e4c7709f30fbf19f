// Package format renders amounts and dates the way the app displays them (pt-BR, BRL).
package format

import (
	"fmt"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/currency"
	"github.com/go-playground/locales/pt_BR"

	"github.com/MrJamesThe3rd/gofinances/internal/money"
)

type Formatter struct {
	tr       locales.Translator
	currency currency.Type
	loc      *time.Location
}

// New returns a formatter that renders dates in loc. A nil loc means time.Local.
func New(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}

	return &Formatter{
		tr:       pt_BR.New(),
		currency: currency.BRL,
		loc:      loc,
	}
}

// In returns t in the display location. Calendar questions (day, month) about a
// record must be asked of this value, not of the stored UTC instant.
func (f *Formatter) In(t time.Time) time.Time {
	return t.In(f.loc)
}

// Currency renders a as localized currency with two decimals. NaN renders as "NaN".
func (f *Formatter) Currency(a money.Amount) string {
	if a.IsNaN() {
		return "NaN"
	}

	return f.tr.FmtCurrency(a.Decimal().Round(2).InexactFloat64(), 2, f.currency)
}

// ShortDate renders t as dd/mm/yy.
func (f *Formatter) ShortDate(t time.Time) string {
	return f.In(t).Format("02/01/06")
}

// LongDate renders t as "<day> de <month> de <yy>".
func (f *Formatter) LongDate(t time.Time) string {
	t = f.In(t)

	return fmt.Sprintf("%d de %s de %s", t.Day(), f.tr.MonthWide(t.Month()), t.Format("06"))
}

// MonthYear renders a month selector header, e.g. "janeiro, 2021".
func (f *Formatter) MonthYear(year int, month time.Month) string {
	return fmt.Sprintf("%s, %d", f.tr.MonthWide(month), year)
}

// Percent renders an integer percentage.
func (f *Formatter) Percent(p int64) string {
	return fmt.Sprintf("%d%%", p)
}
