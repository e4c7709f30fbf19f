package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/backup"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
)

const backupTimeout = 2 * time.Minute

type backupState int

const (
	backupStatePath backupState = iota
	backupStateExporting
	backupStateResult
)

type backupFields struct {
	path string
}

type BackupModel struct {
	CommonModel
	backupService *backup.Service
	cats          []category.Category
	f             *format.Formatter
	user          auth.User

	state   backupState
	err     error
	form    *huh.Form
	fields  *backupFields
	spinner spinner.Model
	result  *backup.Result
}

func NewBackupModel(svc *backup.Service, cats []category.Category, f *format.Formatter, user auth.User) BackupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := BackupModel{
		backupService: svc,
		cats:          cats,
		f:             f,
		user:          user,
		state:         backupStatePath,
		fields:        &backupFields{path: "./backups"},
		spinner:       s,
	}
	m.form = m.buildPathForm()

	return m
}

func (m BackupModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.state != backupStateExporting {
		return m, Back
	}

	switch m.state {
	case backupStatePath:
		return m.updatePath(msg)
	case backupStateExporting:
		return m.updateExporting(msg)
	}

	return m, nil
}

func (m BackupModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = backupStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.fields.path))
}

func (m BackupModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(backupResultMsg); ok {
		m.state = backupStateResult
		m.err = result.err
		m.result = result.result

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m BackupModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Diretório de destino").
				Description("Será criado se não existir").
				Placeholder("./backups").
				Value(&m.fields.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m BackupModel) View() string {
	switch m.state {
	case backupStatePath:
		return lipgloss.NewStyle().Padding(1).Render(titleStyle.Render("Backup") + "\n\n" + m.form.View())

	case backupStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Salvando transações...", m.spinner.View()),
		)

	case backupStateResult:
		return m.viewResult()
	}

	return ""
}

func (m BackupModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Erro: %v", m.err)))
	}

	header := entryStyle.Bold(true).Render(fmt.Sprintf("%d transações salvas em %s", len(m.result.Records), m.result.Path))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			backup.Summary(m.result.Records, m.cats, m.f),
			faintStyle.Render("(Esc para voltar)"),
		),
	)
}

type backupResultMsg struct {
	result *backup.Result
	err    error
}

func (m BackupModel) runExportCmd(path string) tea.Cmd {
	user := m.user

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
		defer cancel()

		result, err := m.backupService.Export(ctx, user, path)

		return backupResultMsg{result: result, err: err}
	}
}
