// @title			Lab Report Simplifier API
// @version		1.0
// @description	Turns medical lab reports into plain-language summaries.
// @BasePath		/api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"labsimplify/internal/config"
	"labsimplify/internal/extractor"
	"labsimplify/internal/handler"
	"labsimplify/internal/llm"
	_ "labsimplify/internal/llm/all" // registers every generation provider
	"labsimplify/internal/logging"
	"labsimplify/internal/observability/metrics"
	"labsimplify/internal/router"
	"labsimplify/internal/service"
	"labsimplify/internal/simplifier"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logging.New(cfg.Log)

	if err := cfg.Generator.Validate(); err != nil {
		return fmt.Errorf("invalid generator config: %w", err)
	}

	ctx := context.Background()
	m := metrics.NewSimplifierMetrics(nil)

	// Initialize generation backend
	backend, err := llm.NewBackend(ctx, &cfg.Generator, llm.WithLogger(log), llm.WithRetryObserver(m))
	if err != nil {
		return fmt.Errorf("failed to initialize %s backend: %w", cfg.Generator.Provider, err)
	}
	if closer, ok := backend.(io.Closer); ok {
		defer closer.Close()
	}

	// Initialize services
	simp := simplifier.New(backend,
		simplifier.WithGeneratorConfig(&cfg.Generator),
		simplifier.WithLogger(log),
		simplifier.WithMetrics(m),
	)
	reportSvc := service.NewReportService(extractor.NewPDFExtractor(), simp, cfg.Upload.MaxBytes(), m, log)

	// Initialize handlers
	simplifyH := handler.NewSimplifyHandler(reportSvc, cfg.Upload.MaxBytes())
	healthH := handler.NewHealthHandler(cfg.Generator)

	r := router.Setup(cfg, log, simplifyH, healthH, promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":     cfg.Server.Port,
			"provider": cfg.Generator.Provider,
		}).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
