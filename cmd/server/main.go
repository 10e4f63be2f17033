package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hmis/internal/app/server/api"
	"hmis/internal/app/server/config"
	"hmis/internal/infrastructure/storage/sqlite"
	"hmis/internal/utils/logger"
)

var (
	addr   string
	dbPath string
	env    string
)

var rootCmd = &cobra.Command{
	Use:           "hmis-server",
	Short:         "HMIS - сервер клиники с синхронизацией офлайн-клиентов",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.MustLoad()
		applyFlags(cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, cfg)
	},
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", "", "адрес HTTP сервера (RUN_ADDRESS)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "путь к файлу базы SQLite (DATABASE_PATH)")
	rootCmd.Flags().StringVar(&env, "env", "", "окружение: local, dev, prod (APP_ENV)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func applyFlags(cfg *config.Config) {
	if addr != "" {
		cfg.Server.RunAddress = addr
	}
	if dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if env != "" {
		cfg.Env = env
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.New(cfg.Env)

	storage, err := sqlite.New(cfg, log)
	if err != nil {
		log.Error("failed to open storage", logger.Err(err))
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error("failed to close storage", logger.Err(err))
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Server.RunAddress,
		Handler:      api.New(storage, log, nil),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "address", cfg.Server.RunAddress, "env", cfg.Env, "db", cfg.DB.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", logger.Err(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", logger.Err(err))
		return err
	}
	log.Info("server stopped")
	return nil
}
