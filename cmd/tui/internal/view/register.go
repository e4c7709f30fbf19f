package view

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

// registerFields lives on the heap so the form keeps writing to the same values
// across the value-receiver copies of RegisterModel.
type registerFields struct {
	name     string
	amount   string
	typ      transaction.Type
	category category.Key
}

type RegisterModel struct {
	CommonModel
	txService *transaction.Service
	cats      []category.Category
	user      auth.User

	form   *huh.Form
	fields *registerFields
	saving bool
	alert  string
}

func NewRegisterModel(txSvc *transaction.Service, cats []category.Category, user auth.User) RegisterModel {
	m := RegisterModel{
		txService: txSvc,
		cats:      cats,
		user:      user,
		fields:    &registerFields{},
	}
	m.form = m.buildForm()

	return m
}

func (m RegisterModel) buildForm() *huh.Form {
	categoryOptions := make([]huh.Option[category.Key], 0, len(m.cats))
	for _, c := range m.cats {
		categoryOptions = append(categoryOptions, huh.NewOption(c.Name, c.Key))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Nome").
				Value(&m.fields.name),

			huh.NewInput().
				Key("amount").
				Title("Preço").
				Placeholder("0.00").
				Value(&m.fields.amount),

			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Tipo").
				Options(
					huh.NewOption("Income", transaction.TypePositive),
					huh.NewOption("Outcome", transaction.TypeNegative),
				).
				Value(&m.fields.typ),

			huh.NewSelect[category.Key]().
				Key("category").
				Title("Categoria").
				Options(categoryOptions...).
				Value(&m.fields.category),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m RegisterModel) Init() tea.Cmd {
	return m.form.Init()
}

type registerResultMsg struct {
	err error
}

func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		m.saving = false

		if msg.err != nil {
			m.alert = transaction.AlertMessage(msg.err)
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		m.fields = &registerFields{}
		m.form = m.buildForm()
		m.alert = ""

		return m, func() tea.Msg { return RegisteredMsg{} }

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.saving = true

	return m, m.saveCmd(transaction.RegisterParams{
		Name:     m.fields.name,
		Amount:   m.fields.amount,
		Type:     m.fields.typ,
		Category: m.fields.category,
	})
}

func (m RegisterModel) saveCmd(p transaction.RegisterParams) tea.Cmd {
	user := m.user

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.txService.Register(ctx, user, p); err != nil {
			slog.Warn("failed to register transaction", "user_id", user.ID, "error", err)
			return registerResultMsg{err: err}
		}

		return registerResultMsg{}
	}
}

func (m RegisterModel) View() string {
	content := titleStyle.Render("Cadastro") + "\n\n" + m.form.View()

	if m.saving {
		content += "\n" + faintStyle.Render("Salvando...")
	}

	if m.alert != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, alert(m.alert))
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n\n" + faintStyle.Render("Esc: voltar"))
}
