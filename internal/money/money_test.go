package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/gofinances/internal/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantNaN bool
	}{
		{in: "1000", want: "1000"},
		{in: " 12.5 ", want: "12.5"},
		{in: "", want: "0"},
		{in: "1e3", want: "1000"},
		{in: "10,50", wantNaN: true},
		{in: "abc", wantNaN: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := money.Parse(tt.in)
			assert.Equal(t, tt.wantNaN, got.IsNaN())

			if !tt.wantNaN {
				assert.True(t, got.Equal(money.Parse(tt.want)), "got %s", got)
			}
		})
	}
}

func TestAmount_Arithmetic(t *testing.T) {
	a := money.Parse("0.1")
	b := money.Parse("0.2")

	assert.True(t, a.Add(b).Equal(money.Parse("0.3")))
	assert.True(t, money.FromInt(1000).Sub(money.FromInt(40)).Equal(money.FromInt(960)))
	assert.True(t, money.Sum().IsZero())
	assert.True(t, money.Sum(a, b, money.NaN).IsNaN())
	assert.False(t, money.NaN.Equal(money.NaN))
	assert.False(t, money.NaN.IsPositive())
	assert.Equal(t, "NaN", money.NaN.String())
}

func TestAmount_Percent(t *testing.T) {
	tests := []struct {
		name   string
		part   money.Amount
		total  money.Amount
		want   int64
		wantOK bool
	}{
		{name: "whole", part: money.FromInt(40), total: money.FromInt(40), want: 100, wantOK: true},
		{name: "third", part: money.FromInt(1), total: money.FromInt(3), want: 33, wantOK: true},
		{name: "half rounds up", part: money.FromInt(1), total: money.FromInt(8), want: 13, wantOK: true},
		{name: "zero total", part: money.FromInt(0), total: money.FromInt(0), wantOK: false},
		{name: "nan total", part: money.FromInt(1), total: money.NaN, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.part.Percent(tt.total)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
