package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/protview/internal/config"
	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/handler"
	"github.com/yumyai/protview/pkg/middle"
	"github.com/yumyai/protview/pkg/source"
)

const VERSION = "0.1.0"

func main() {

	// Establish logger
	if err := logger.InitLogger(zapcore.InfoLevel); err != nil {
		panic(err)
	}
	defer logger.Sync() // Make sure that the buffered is flushed.

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Error reading configuration", zap.Error(err))
	}
	if level := logger.ParseLevel(cfg.LogLevel); level != zapcore.InfoLevel {
		if err := logger.InitLogger(level); err != nil {
			panic(err)
		}
	}
	if err := cfg.ValidateViewer(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	src, err := source.New(source.Options{
		MockMode:       cfg.MockMode,
		FixtureDir:     cfg.FixtureDir,
		RegistryURL:    cfg.RegistryURL,
		CorrelationURL: cfg.CorrelationURL,
		RequestTimeout: cfg.RequestTimeout,
		MaxRetries:     cfg.MaxRetries,
	})
	if err != nil {
		logger.Fatal("Error creating data source", zap.Error(err))
	}

	app := &handler.AppContext{
		Source:      src,
		Sessions:    handler.NewSessionStore(src, cfg.Concurrency, cfg.SessionCapacity, cfg.SessionTTL),
		Metrics:     middle.NewMetrics("protview"),
		Concurrency: cfg.Concurrency,
		FixtureDir:  cfg.FixtureDir,
	}

	logger.Info("Start:", zap.String("Version", VERSION), zap.String("mode", src.Mode()))
	if cfg.MockMode {
		logger.Info("Serving fixtures from", zap.String("dir", cfg.FixtureDir))
	} else {
		logger.Info("Using services",
			zap.String("registry", cfg.RegistryURL),
			zap.String("correlation", cfg.CorrelationURL),
		)
	}

	mux := NewRouter(app)

	// Apply middleware
	base := logger.L()
	h := middle.Chain(mux,
		middle.RequestIDMiddleware(base),
		middle.LoggingMiddleware(base),
		app.Metrics.InstrumentHandler,
	)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting on", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Error starting server:", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", zap.Error(err))
	}
}
