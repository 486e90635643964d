package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"productapi/internal/application"
	"productapi/internal/config"
	httpapi "productapi/internal/http"
	"productapi/internal/logger"
	"productapi/internal/metrics"
	"productapi/internal/repository"
	"productapi/internal/service"

	_ "productapi/docs"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			log, err := logger.Init(cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			if cfg.Environment != "dev" {
				gin.SetMode(gin.ReleaseMode)
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			return serve(cmd.Context(), cfg, log, quit)
		},
	}
}

// buildHandler assembles storage, service and transport for cfg.
func buildHandler(ctx context.Context, cfg *config.Config, log *slog.Logger) (http.Handler, func() error, error) {
	repo, closeRepo, err := repository.New(ctx, cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}
	svc, err := service.NewProductService(repo)
	if err != nil {
		_ = closeRepo()
		return nil, nil, err
	}
	uc, err := application.NewProductUseCase(svc)
	if err != nil {
		_ = closeRepo()
		return nil, nil, err
	}

	opts := httpapi.Options{
		Security: cfg.API.Security,
		Logger:   log,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = metrics.New()
		opts.MetricsPath = cfg.Metrics.Path
	}
	return httpapi.NewServer(uc, opts).Engine(), closeRepo, nil
}

// serve runs the HTTP server until a signal arrives on quit or the listener fails.
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger, quit <-chan os.Signal) error {
	handler, closeRepo, err := buildHandler(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			log.Error("failed to close repository", "error", err)
		}
	}()

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr, "service", cfg.ServiceName, "env", cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		log.Info("shutting down", "reason", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	log.Info("server stopped")
	return nil
}
