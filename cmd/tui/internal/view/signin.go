package view

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
)

const signInFailed = "Não foi possível conectar a conta"

type signInFields struct {
	credential string
}

type SignInModel struct {
	CommonModel
	provider auth.Provider
	appName  string

	form    *huh.Form
	fields  *signInFields
	spinner spinner.Model
	loading bool
	alert   string
}

func NewSignInModel(provider auth.Provider, appName string) SignInModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := SignInModel{
		provider: provider,
		appName:  appName,
		spinner:  s,
	}
	m.resetForm()

	return m
}

func (m *SignInModel) resetForm() {
	m.fields = &signInFields{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("credential").
				Title("Credencial").
				Description("Faça seu login com a conta configurada").
				EchoMode(huh.EchoModePassword).
				Value(&m.fields.credential),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m SignInModel) Init() tea.Cmd {
	return m.form.Init()
}

type signInResultMsg struct {
	user *auth.User
	err  error
}

func (m SignInModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signInResultMsg:
		m.loading = false

		if msg.err != nil {
			if !errors.Is(msg.err, auth.ErrSignIn) {
				slog.Error("sign-in failed", "error", msg.err)
			}

			m.alert = signInFailed
			m.resetForm()

			return m, m.form.Init()
		}

		user := *msg.user

		return m, func() tea.Msg { return SignedInMsg{User: user} }

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	if m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.loading = true
	m.alert = ""

	return m, tea.Batch(m.spinner.Tick, m.signInCmd(m.fields.credential))
}

func (m SignInModel) signInCmd(credential string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		user, err := m.provider.SignIn(ctx, credential)

		return signInResultMsg{user: user, err: err}
	}
}

func (m SignInModel) View() string {
	header := titleStyle.Render(m.appName) + "\n\n" +
		"Controle suas\nfinanças de forma\nmuito simples\n"

	body := m.form.View()
	if m.loading {
		body = fmt.Sprintf("%s Entrando...", m.spinner.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, body)
	if m.alert != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, alert(m.alert))
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
