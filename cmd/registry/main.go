// Registry backend: serves the protein registry and the correlation store from one
// SQLite database.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/protview/internal/config"
	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/db"
	"github.com/yumyai/protview/pkg/handler"
	"github.com/yumyai/protview/pkg/loader"
	"github.com/yumyai/protview/pkg/middle"
)

const VERSION = "0.1.0"

const importFileName = "uniprot-import.tsv.gz"

func main() {
	if err := logger.InitLogger(zapcore.InfoLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Error reading configuration", zap.Error(err))
	}
	if level := logger.ParseLevel(cfg.LogLevel); level != zapcore.InfoLevel {
		if err := logger.InitLogger(level); err != nil {
			panic(err)
		}
	}
	if err := cfg.ValidateRegistry(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		logger.Fatal("Error creating data directory", zap.Error(err))
	}
	conn, err := db.New(cfg.DBPath)
	if err != nil {
		logger.Fatal("Error opening database", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	repo := db.NewRepository(conn)
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := importProteins(ctx, cfg, repo); err != nil {
		logger.Fatal("Error importing proteins", zap.Error(err))
	}

	metrics := middle.NewMetrics("protview_registry")
	reg := &handler.RegistryContext{Repo: repo, MinJaccard: cfg.MinJaccard}

	base := logger.L()
	h := middle.Chain(NewRouter(reg, metrics),
		middle.RequestIDMiddleware(base),
		middle.LoggingMiddleware(base),
		metrics.InstrumentHandler,
	)

	srv := &http.Server{
		Addr:              cfg.RegistryListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Start:", zap.String("Version", VERSION), zap.String("db", cfg.DBPath),
		zap.Float64("min_jaccard", cfg.MinJaccard))

	go func() {
		logger.Info("Server starting on", zap.String("addr", cfg.RegistryListenAddr))
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

// importProteins loads a UniProt TSV export into the registry. With an import URL the
// export is downloaded first, to the import path or next to the database.
func importProteins(ctx context.Context, cfg *config.Config, repo *db.Repository) error {
	path := cfg.ImportPath
	if cfg.ImportURL != "" {
		if path == "" {
			path = filepath.Join(filepath.Dir(cfg.DBPath), importFileName)
		}
		client := &http.Client{Timeout: 10 * time.Minute}
		if err := loader.Download(ctx, client, cfg.ImportURL, path); err != nil {
			return err
		}
	}
	if path == "" {
		return nil
	}

	start := time.Now()
	proteins, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	if err := repo.InsertProteins(proteins); err != nil {
		return err
	}

	total, err := repo.CountProteins()
	if err != nil {
		return err
	}
	logger.Info("Imported proteins",
		zap.String("imported", humanize.Comma(int64(len(proteins)))),
		zap.String("total", humanize.Comma(int64(total))),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
