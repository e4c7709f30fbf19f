package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/config"
	"github.com/MrJamesThe3rd/gofinances/internal/database"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	gofinHttp "github.com/MrJamesThe3rd/gofinances/internal/http"
	authHandler "github.com/MrJamesThe3rd/gofinances/internal/http/auth"
	backupHandler "github.com/MrJamesThe3rd/gofinances/internal/http/backup"
	categoryHandler "github.com/MrJamesThe3rd/gofinances/internal/http/category"
	summaryHandler "github.com/MrJamesThe3rd/gofinances/internal/http/summary"
	txHandler "github.com/MrJamesThe3rd/gofinances/internal/http/transaction"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
	txStore "github.com/MrJamesThe3rd/gofinances/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := cfg.RequireSecret(); err != nil {
		slog.Error("refusing to start without a token secret", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load location", "error", err)
		os.Exit(1)
	}

	driver, dsn := cfg.DataSource()

	db, err := database.New(driver, dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	cats := category.Default()
	if cfg.Categories.File != "" {
		if cats, err = category.LoadFile(cfg.Categories.File); err != nil {
			slog.Error("failed to load categories", "error", err)
			os.Exit(1)
		}
	}

	var (
		f = format.New(loc)

		provider = auth.NewStaticProvider(auth.User{
			ID:    cfg.Auth.UserID,
			Name:  cfg.Auth.UserName,
			Email: cfg.Auth.UserEmail,
			Photo: cfg.Auth.UserPhoto,
		}, cfg.Auth.Credential)
		tokens = auth.NewTokens(cfg.Auth.Secret, cfg.App.Name, cfg.Auth.TokenTTL)

		transactionService = transaction.NewService(txStore.New(db, driver, cfg.Storage.Namespace))
		summaryService     = summary.NewService(transactionService, cats, f)
	)

	var (
		authH        = authHandler.NewHandler(provider, tokens)
		categoryH    = categoryHandler.NewHandler(cats)
		transactionH = txHandler.NewHandler(transactionService, cats, f)
		summaryH     = summaryHandler.NewHandler(summaryService, f)
		backupH      = backupHandler.NewHandler(transactionService)
	)

	router := gofinHttp.New(cfg.Server.AllowedOrigins, authH, categoryH, transactionH, summaryH, backupH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "port", srv.Addr, "driver", driver)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
