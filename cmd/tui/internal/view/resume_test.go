package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/money"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
)

func newResume(month summary.Month) ResumeModel {
	svc := summary.NewService(nil, category.Default(), format.New(time.UTC))
	return NewResumeModel(svc, format.New(time.UTC), auth.User{ID: "123"}, month)
}

func update(t *testing.T, m ResumeModel, msg tea.Msg) ResumeModel {
	t.Helper()

	next, _ := m.Update(msg)

	rm, ok := next.(ResumeModel)
	require.True(t, ok)

	return rm
}

func TestResumeModel_StartsLoading(t *testing.T) {
	jan := summary.Month{Year: 2021, Month: time.January}

	m := newResume(jan)

	assert.Equal(t, summary.StateLoading, m.State().State)
	assert.Equal(t, jan, m.State().Month)
	assert.Contains(t, m.View(), "janeiro, 2021")
}

func TestResumeModel_NavigationDropsStaleLoads(t *testing.T) {
	jan := summary.Month{Year: 2021, Month: time.January}

	m := newResume(jan)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, jan.Next(), m.State().Month)

	m = update(t, m, resumeLoadedMsg{summary: summary.CategorySummary{Month: jan}})
	assert.Equal(t, summary.StateLoading, m.State().State)

	feb := summary.CategorySummary{
		Month:         jan.Next(),
		ExpensesTotal: money.FromInt(40),
		Rows: []summary.CategoryTotal{
			{Key: category.KeyFood, Name: "Alimentação", Color: "#FF872C", Total: money.FromInt(40), TotalFormatted: "R$ 40,00", Percent: "100%"},
		},
	}

	m = update(t, m, resumeLoadedMsg{summary: feb})
	require.Equal(t, summary.StateReady, m.State().State)
	assert.Contains(t, m.View(), "Alimentação")
	assert.Contains(t, m.View(), "100%")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, jan, m.State().Month)
	assert.Equal(t, summary.StateLoading, m.State().State)
}

func TestResumeModel_EmptyMonth(t *testing.T) {
	jan := summary.Month{Year: 2021, Month: time.January}

	m := update(t, newResume(jan), resumeLoadedMsg{summary: summary.CategorySummary{Month: jan}})

	assert.Contains(t, m.View(), "Nenhum gasto neste mês")
}

func TestResumeModel_OutOfRangeShares(t *testing.T) {
	jan := summary.Month{Year: 2021, Month: time.January}

	s := summary.CategorySummary{
		Month:         jan,
		ExpensesTotal: money.FromInt(15),
		Rows: []summary.CategoryTotal{
			{Key: category.KeyFood, Name: "Alimentação", Color: "#FF872C", Total: money.FromInt(20), TotalFormatted: "R$ 20,00", Percent: "133%"},
			{Key: category.KeyCar, Name: "Carro", Color: "#E83F5B", Total: money.FromInt(-5), TotalFormatted: "-R$ 5,00", Percent: "-33%"},
		},
	}

	m := update(t, newResume(jan), resumeLoadedMsg{summary: s})

	var out string

	require.NotPanics(t, func() { out = m.View() })
	assert.Contains(t, out, "133%")
}
