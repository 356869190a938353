package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	httpadapter "curriculo-generator/internal/adapter/http"
	repo "curriculo-generator/internal/adapter/repository"
	"curriculo-generator/internal/config"
	"curriculo-generator/internal/domain"
	"curriculo-generator/internal/infrastructure/migration"
	"curriculo-generator/internal/logging"
	"curriculo-generator/internal/normalize"
	"curriculo-generator/internal/templates"
	"curriculo-generator/internal/usecase"
	infra "curriculo-generator/pkg/infrastructure"

	"go.uber.org/zap"
)

// renderBackend is a Renderer that can report its state and be shut down.
type renderBackend interface {
	usecase.Renderer
	httpadapter.StateReporter
	Close() error
}

type wkhtmltopdfBackend struct {
	infra.WKHTMLToPDFRenderer
}

func (wkhtmltopdfBackend) Close() error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// infra setup
	jobsPool, err := infra.NewJobsPool(ctx, cfg.JobsDatabaseURL)
	if err != nil {
		logger.Warn("jobs DB not available, audit log disabled", zap.Error(err))
		jobsPool = nil
	}
	if jobsPool != nil {
		defer jobsPool.Close()
		if err := migration.RunMigrations(ctx, jobsPool, logger); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	renderer := newRenderer(cfg, logger)
	defer renderer.Close() //nolint:errcheck

	renderOpts := domain.DefaultRenderOptions()
	renderOpts.Scale = cfg.RenderScale
	opts := usecase.DefaultOptions()
	opts.Render = renderOpts
	opts.Attempts = cfg.RenderAttempts

	var (
		jobsRepo usecase.JobsRepo
		stats    httpadapter.JobStats
	)
	if jobsPool != nil {
		r := repo.NewJobsRepo(jobsPool)
		jobsRepo, stats = r, r
	}

	processor := usecase.NewProcessor(
		normalize.New(normalize.Options{
			ValidateEmail:      cfg.ValidateEmail,
			ValidateNationalID: cfg.ValidateNationalID,
			FormatPhones:       cfg.FormatPhones,
		}),
		templates.MustNew(),
		renderer,
		jobsRepo,
		logger,
		opts,
	)

	h := httpadapter.NewHandler(processor, renderer, logger)
	if stats != nil {
		h.WithJobStats(stats)
	}
	app := httpadapter.NewApp(h, httpadapter.AppConfig{
		BodyLimit:        cfg.MaxBodyBytes,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port), zap.String("renderer", cfg.Renderer))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	return nil
}

func newRenderer(cfg *config.Config, logger *zap.Logger) renderBackend {
	if cfg.Renderer == config.RendererWKHTMLToPDF {
		return wkhtmltopdfBackend{infra.WKHTMLToPDFRenderer{
			Command: cfg.WKHTMLToPDFPath,
			Timeout: cfg.RenderTimeout,
		}}
	}
	r := infra.NewChromedpRenderer(infra.ChromedpConfig{
		ExecPath:       cfg.ChromePath,
		PoolSize:       cfg.RenderPoolSize,
		Timeout:        cfg.RenderTimeout,
		StartupTimeout: cfg.RenderStartupTimeout,
	}, logger.Named("chromedp"))
	// launch in the background; requests wait on readiness instead of polling
	r.Start()
	return r
}
