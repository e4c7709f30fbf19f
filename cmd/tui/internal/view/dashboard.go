package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

type DashboardModel struct {
	CommonModel
	txService      *transaction.Service
	summaryService *summary.Service
	f              *format.Formatter
	user           auth.User

	table     table.Model
	entries   []transaction.Entry
	highlight summary.Highlight
	loading   bool
}

func NewDashboardModel(txSvc *transaction.Service, summarySvc *summary.Service, f *format.Formatter, user auth.User) DashboardModel {
	columns := []table.Column{
		{Title: "Data", Width: 10},
		{Title: "Nome", Width: 30},
		{Title: "Categoria", Width: 14},
		{Title: "Valor", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return DashboardModel{
		txService:      txSvc,
		summaryService: summarySvc,
		f:              f,
		user:           user,
		table:          t,
		loading:        true,
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

type dashboardLoadedMsg struct {
	entries   []transaction.Entry
	highlight summary.Highlight
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.entries = msg.entries
		m.highlight = msg.highlight
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-16, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m, func() tea.Msg { return RegisterMsg{} }
		case "c":
			return m, func() tea.Msg { return ResumeMsg{} }
		case "e":
			return m, func() tea.Msg { return BackupMsg{} }
		case "i":
			return m, func() tea.Msg { return RestoreMsg{} }
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *DashboardModel) refreshTable() {
	cats := m.summaryService.Categories()

	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		c, ok := category.Find(cats, e.Category)
		if !ok {
			c = category.Unknown
		}

		amount := e.AmountFormatted
		if e.Type == transaction.TypeNegative {
			amount = "- " + amount
		}

		rows = append(rows, table.Row{e.DateFormatted, e.Name, c.Name, amount})
	}

	m.table.SetRows(rows)
}

func (m DashboardModel) loadCmd() tea.Cmd {
	user := m.user

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return dashboardLoadedMsg{
			entries:   m.txService.List(ctx, user, m.f),
			highlight: m.summaryService.Highlights(ctx, user),
		}
	}
}

func card(title string, c summary.Card, accent lipgloss.Color) string {
	return lipgloss.NewStyle().
		Width(28).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Render(fmt.Sprintf("%s\n%s\n%s",
			title,
			lipgloss.NewStyle().Bold(true).Render(c.AmountFormatted),
			faintStyle.Render(c.LastTransaction),
		))
}

func (m DashboardModel) View() string {
	header := titleStyle.Render(fmt.Sprintf("Olá, %s", m.user.Name))

	if m.loading {
		return lipgloss.NewStyle().Padding(1).Render(header + "\n\nCarregando...")
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Entradas", m.highlight.Entries, lipgloss.Color("#12A454")),
		card("Saídas", m.highlight.Expenses, lipgloss.Color("#E83F5B")),
		card("Total", m.highlight.Total, lipgloss.Color("#FF872C")),
	)

	listing := "Nenhuma transação cadastrada"
	if len(m.entries) > 0 {
		listing = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())
	}

	help := faintStyle.Render("n: cadastrar | c: resumo | e: backup | i: restaurar | r: atualizar | q: sair")

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		cards,
		"",
		entryStyle.Render("Listagem"),
		listing,
		"",
		help,
	))
}
