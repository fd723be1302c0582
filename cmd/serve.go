package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lista/internal/config"
	"github.com/thenoetrevino/lista/internal/database"
	"github.com/thenoetrevino/lista/internal/logging"
	"github.com/thenoetrevino/lista/internal/repository"
	"github.com/thenoetrevino/lista/internal/repository/memory"
	"github.com/thenoetrevino/lista/internal/server"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the todo HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logging.Init(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	todos, labels, cleanup, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(todos, labels).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Server.Addr, "driver", cfg.Storage.Driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}

// openStore builds the configured backend. The returned cleanup is a no-op
// for the memory store.
func openStore(ctx context.Context, cfg config.Storage) (repository.TodoRepository, repository.LabelRepository, func(), error) {
	if cfg.Driver == config.DriverMemory {
		store := memory.New()
		return store.Todos(), store.Labels(), func() {}, nil
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing db", "error", err)
		}
	}
	return database.NewTodoRepo(db), database.NewLabelRepo(db), cleanup, nil
}
