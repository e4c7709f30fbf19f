package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
)

const barWidth = 30

// ResumeModel shows the expense breakdown of one month. Loads run as tea
// commands; the CategoryView state drops results of superseded loads.
type ResumeModel struct {
	CommonModel
	summaryService *summary.Service
	f              *format.Formatter
	user           auth.User

	view    summary.CategoryView
	spinner spinner.Model
}

func NewResumeModel(summarySvc *summary.Service, f *format.Formatter, user auth.User, month summary.Month) ResumeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ResumeModel{
		summaryService: summarySvc,
		f:              f,
		user:           user,
		view:           summary.NewCategoryView(month).Apply(summary.EventLoad),
		spinner:        s,
	}
}

type resumeLoadedMsg struct {
	summary summary.CategorySummary
}

func (m ResumeModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(m.view.Month))
}

// State exposes the screen state, mainly for tests.
func (m ResumeModel) State() summary.CategoryView {
	return m.view
}

func (m ResumeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resumeLoadedMsg:
		m.view = m.view.Complete(msg.summary)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			return m.apply(summary.EventPrevMonth)
		case "right", "l":
			return m.apply(summary.EventNextMonth)
		case "r":
			return m.apply(summary.EventLoad)
		}
	}

	if m.view.State == summary.StateLoading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ResumeModel) apply(ev summary.Event) (ResumeModel, tea.Cmd) {
	m.view = m.view.Apply(ev)
	return m, tea.Batch(m.spinner.Tick, m.loadCmd(m.view.Month))
}

func (m ResumeModel) loadCmd(month summary.Month) tea.Cmd {
	user := m.user

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return resumeLoadedMsg{summary: m.summaryService.ByCategory(ctx, user, month)}
	}
}

func (m ResumeModel) View() string {
	month := m.view.Month

	selector := fmt.Sprintf("%s  %s  %s",
		activeStyle("<"),
		lipgloss.NewStyle().Bold(true).Render(m.f.MonthYear(month.Year, month.Month)),
		activeStyle(">"),
	)

	var body string

	switch {
	case m.view.State != summary.StateReady || m.view.Summary == nil:
		body = fmt.Sprintf("%s Carregando...", m.spinner.View())
	case len(m.view.Summary.Rows) == 0:
		body = faintStyle.Render("Nenhum gasto neste mês")
	default:
		body = m.renderRows(m.view.Summary)
	}

	help := faintStyle.Render("←/→: mês | r: atualizar | Esc: voltar")

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Resumo por categoria"),
		"",
		selector,
		"",
		body,
		"",
		help,
	))
}

func (m ResumeModel) renderRows(s *summary.CategorySummary) string {
	var b strings.Builder

	for _, row := range s.Rows {
		filled := 0
		if p, ok := row.Total.Percent(s.ExpensesTotal); ok {
			filled = min(max(int(p)*barWidth/100, 0), barWidth)
		}

		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color)).Render(strings.Repeat("█", filled)) +
			faintStyle.Render(strings.Repeat("░", barWidth-filled))

		accent := lipgloss.NewStyle().
			Width(16).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color(row.Color)).
			PaddingLeft(1).
			Render(row.Name)

		fmt.Fprintf(&b, "%s %s %4s  %s\n", accent, bar, row.Percent, row.TotalFormatted)
	}

	return strings.TrimRight(b.String(), "\n")
}
