package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/config"
	"github.com/tavolo/tavolo/internal/service"
	"github.com/tavolo/tavolo/internal/storage/sqlite"
	"github.com/tavolo/tavolo/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	// Each run gets an id so interleaved logs from two instances sharing a
	// database file can be told apart.
	runID := uuid.NewString()
	slog.Info("Tavolo starting", "run_id", runID, "database", cfg.DBPath)

	store := sqlite.New(cfg.DBPath)
	defer store.Close()

	authenticator := auth.NewPasswordAuthenticator(store)
	accounts := service.NewAccountService(authenticator, store, slog.Default())
	menu := service.NewMenuService(store)
	orders := service.NewOrderService(store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &app{
		cfg:      cfg,
		accounts: accounts,
		menu:     menu,
		orders:   orders,
		store:    store,
	}

	if err := app.run(ctx); err != nil {
		slog.Error("Tavolo exited with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Tavolo stopped", "run_id", runID)
}
