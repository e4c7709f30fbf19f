package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/gofinances/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/backup"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/config"
	"github.com/MrJamesThe3rd/gofinances/internal/database"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
	txStore "github.com/MrJamesThe3rd/gofinances/internal/transaction/store"
)

type model struct {
	txService      *transaction.Service
	summaryService *summary.Service
	backupService  *backup.Service
	cats           []category.Category
	f              *format.Formatter

	user        auth.User
	currentView View

	signInView    view.SignInModel
	dashboardView view.DashboardModel
	registerView  view.RegisterModel
	resumeView    view.ResumeModel
	backupView    view.BackupModel
	restoreView   view.RestoreModel
}

type View int

const (
	ViewSignIn    View = 0
	ViewDashboard View = 1
	ViewRegister  View = 2
	ViewResume    View = 3
	ViewBackup    View = 4
	ViewRestore   View = 5
)

func initialModel(cfg *config.Config, db *sql.DB, driver string) (model, error) {
	loc, err := cfg.Location()
	if err != nil {
		return model{}, err
	}

	cats := category.Default()
	if cfg.Categories.File != "" {
		if cats, err = category.LoadFile(cfg.Categories.File); err != nil {
			return model{}, fmt.Errorf("loading categories: %w", err)
		}
	}

	var (
		f          = format.New(loc)
		txSvc      = transaction.NewService(txStore.New(db, driver, cfg.Storage.Namespace))
		summarySvc = summary.NewService(txSvc, cats, f)
		provider   = auth.NewStaticProvider(auth.User{
			ID:    cfg.Auth.UserID,
			Name:  cfg.Auth.UserName,
			Email: cfg.Auth.UserEmail,
			Photo: cfg.Auth.UserPhoto,
		}, cfg.Auth.Credential)
	)

	return model{
		txService:      txSvc,
		summaryService: summarySvc,
		backupService:  backup.NewService(txSvc),
		cats:           cats,
		f:              f,
		currentView:    ViewSignIn,
		signInView:     view.NewSignInModel(provider, cfg.App.Name),
	}, nil
}

func (m model) Init() tea.Cmd {
	return m.signInView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.SignedInMsg:
		m.user = msg.User
		m.currentView = ViewDashboard
		m.dashboardView = view.NewDashboardModel(m.txService, m.summaryService, m.f, m.user)

		return m, m.dashboardView.Init()
	case view.RegisterMsg:
		m.currentView = ViewRegister
		m.registerView = view.NewRegisterModel(m.txService, m.cats, m.user)

		return m, m.registerView.Init()
	case view.ResumeMsg:
		m.currentView = ViewResume
		m.resumeView = view.NewResumeModel(m.summaryService, m.f, m.user, summary.MonthOf(m.f.In(time.Now())))

		return m, m.resumeView.Init()
	case view.BackupMsg:
		m.currentView = ViewBackup
		m.backupView = view.NewBackupModel(m.backupService, m.cats, m.f, m.user)

		return m, m.backupView.Init()
	case view.RestoreMsg:
		m.currentView = ViewRestore
		m.restoreView = view.NewRestoreModel(m.backupService, m.f, m.user)

		return m, m.restoreView.Init()
	case view.RegisteredMsg, view.BackMsg:
		m.currentView = ViewDashboard
		m.dashboardView = view.NewDashboardModel(m.txService, m.summaryService, m.f, m.user)

		return m, m.dashboardView.Init()
	}

	switch m.currentView {
	case ViewSignIn:
		var newModel tea.Model
		newModel, cmd = m.signInView.Update(msg)
		m.signInView = newModel.(view.SignInModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewRegister:
		var newModel tea.Model
		newModel, cmd = m.registerView.Update(msg)
		m.registerView = newModel.(view.RegisterModel)
	case ViewResume:
		var newModel tea.Model
		newModel, cmd = m.resumeView.Update(msg)
		m.resumeView = newModel.(view.ResumeModel)
	case ViewBackup:
		var newModel tea.Model
		newModel, cmd = m.backupView.Update(msg)
		m.backupView = newModel.(view.BackupModel)
	case ViewRestore:
		var newModel tea.Model
		newModel, cmd = m.restoreView.Update(msg)
		m.restoreView = newModel.(view.RestoreModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewSignIn:
		return m.signInView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewRegister:
		return m.registerView.View()
	case ViewResume:
		return m.resumeView.View()
	case ViewBackup:
		return m.backupView.View()
	case ViewRestore:
		return m.restoreView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	logFile, err := tea.LogToFile("gofinances-tui.log", "tui")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	driver, dsn := cfg.DataSource()

	db, err := database.New(driver, dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	m, err := initialModel(cfg, db, driver)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
