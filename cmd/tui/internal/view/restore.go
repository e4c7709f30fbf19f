package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/backup"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/money"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

const restoreTimeout = 2 * time.Minute

type restoreState int

const (
	restoreStateMode restoreState = iota
	restoreStateFilePick
	restoreStateRestoring
	restoreStateConflicts
	restoreStateResult
)

type restoreFields struct {
	replace bool
}

type RestoreModel struct {
	CommonModel
	backupService *backup.Service
	f             *format.Formatter
	user          auth.User

	state        restoreState
	form         *huh.Form
	fields       *restoreFields
	filePicker   filepicker.Model
	conflictList list.Model

	status string
	err    error
}

func NewRestoreModel(svc *backup.Service, f *format.Formatter, user auth.User) RestoreModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".json"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.Height = 15

	m := RestoreModel{
		backupService: svc,
		f:             f,
		user:          user,
		filePicker:    fp,
	}
	m.resetForm()

	return m
}

func (m *RestoreModel) resetForm() {
	m.fields = &restoreFields{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("replace").
				Title("Substituir as transações atuais?").
				Description("Não: mantém as atuais e ignora IDs repetidos").
				Affirmative("Sim").
				Negative("Não").
				Value(&m.fields.replace),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m RestoreModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m RestoreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == restoreStateConflicts {
			var cmd tea.Cmd
			m.conflictList, cmd = m.conflictList.Update(msg)

			return m, cmd
		}

	case restoreResultMsg:
		if msg.err != nil {
			m.state = restoreStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Erro: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("%d transações restauradas.", len(msg.result.Imported))

		if len(msg.result.Conflicts) == 0 {
			m.state = restoreStateResult
			return m, nil
		}

		items := make([]list.Item, len(msg.result.Conflicts))
		for i, c := range msg.result.Conflicts {
			items[i] = conflictItem{conflict: c, f: m.f}
		}

		m.conflictList = list.New(items, conflictDelegate{}, 80, 20)
		m.conflictList.Title = fmt.Sprintf("%d IDs já existentes foram ignorados", len(items))
		m.conflictList.SetShowStatusBar(false)
		m.conflictList.SetFilteringEnabled(false)
		m.conflictList.SetShowHelp(false)
		m.state = restoreStateConflicts

		return m, nil
	}

	switch m.state {
	case restoreStateMode:
		return m.updateMode(msg)
	case restoreStateFilePick:
		return m.updateFilePick(msg)
	}

	return m, nil
}

func (m RestoreModel) updateMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = restoreStateFilePick

	return m, m.filePicker.Init()
}

func (m RestoreModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = restoreStateRestoring
		m.status = fmt.Sprintf("Restaurando %s...", path)

		return m, m.restoreCmd(path, m.fields.replace)
	}

	return m, cmd
}

func (m RestoreModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case restoreStateFilePick, restoreStateResult, restoreStateConflicts:
		m.state = restoreStateMode
		m.err = nil
		m.status = ""
		m.resetForm()

		return m, m.form.Init()
	}

	return m, Back
}

func (m RestoreModel) View() string {
	switch m.state {
	case restoreStateMode:
		return lipgloss.NewStyle().Padding(1).Render(titleStyle.Render("Restaurar backup") + "\n\n" + m.form.View())
	case restoreStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Selecione o arquivo de backup:\n\n%s", m.filePicker.View()),
		)
	case restoreStateRestoring:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case restoreStateConflicts:
		return lipgloss.NewStyle().Padding(1).Render(
			entryStyle.Render(m.status) + "\n\n" + m.conflictList.View() + "\n" + faintStyle.Render("(Esc para voltar)"),
		)
	case restoreStateResult:
		return m.viewResult()
	}

	return ""
}

func (m RestoreModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n" + faintStyle.Render("(Esc para voltar)"))
	}

	return style.Render(entryStyle.Render(m.status) + "\n\n" + faintStyle.Render("(Esc para voltar)"))
}

type restoreResultMsg struct {
	result *transaction.RestoreResult
	err    error
}

func (m RestoreModel) restoreCmd(path string, replace bool) tea.Cmd {
	user := m.user

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
		defer cancel()

		result, err := m.backupService.Import(ctx, user, path, replace)

		return restoreResultMsg{result: result, err: err}
	}
}

type conflictItem struct {
	conflict transaction.Conflict
	f        *format.Formatter
}

func (i conflictItem) Title() string       { return i.conflict.Incoming.Name }
func (i conflictItem) Description() string { return i.conflict.Existing.Name }
func (i conflictItem) FilterValue() string { return i.conflict.Incoming.ID }

type conflictDelegate struct{}

func (d conflictDelegate) Height() int                             { return 2 }
func (d conflictDelegate) Spacing() int                            { return 1 }
func (d conflictDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d conflictDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(conflictItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	incoming := item.conflict.Incoming
	existing := item.conflict.Existing

	fmt.Fprintf(w, "%s%s  %s  %s\n      Atual: %s  %s  %s",
		cursor,
		item.f.ShortDate(incoming.Date),
		item.f.Currency(money.Parse(incoming.Amount)),
		incoming.Name,
		item.f.ShortDate(existing.Date),
		item.f.Currency(money.Parse(existing.Amount)),
		existing.Name,
	)
}
