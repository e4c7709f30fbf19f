package summary

import (
	"fmt"
	"time"
)

// Month selects a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("parsing month %q: %w", s, err)
	}

	return MonthOf(t), nil
}

func (m Month) first() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) Next() Month { return MonthOf(m.first().AddDate(0, 1, 0)) }

func (m Month) Prev() Month { return MonthOf(m.first().AddDate(0, -1, 0)) }

// Contains reports whether t, read in its own location, falls in m.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

func (m Month) String() string {
	return m.first().Format("2006-01")
}
