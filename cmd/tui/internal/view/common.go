package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
)

const dbTimeout = 5 * time.Second

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// SignedInMsg is emitted once the identity provider accepted the user.
type SignedInMsg struct {
	User auth.User
}

// RegisteredMsg is emitted after a transaction was saved.
type RegisteredMsg struct{}

// ResumeMsg asks the root model to open the monthly resume.
type ResumeMsg struct{}

// RegisterMsg asks the root model to open the register form.
type RegisterMsg struct{}

// BackupMsg asks the root model to open the backup export.
type BackupMsg struct{}

// RestoreMsg asks the root model to open the backup restore.
type RestoreMsg struct{}

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#5636D3")).Padding(0, 2)
	faintStyle = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E83F5B"))
	entryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#12A454"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func alert(msg string) string {
	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#E83F5B")).
		Render(errorStyle.Render(msg))
}
