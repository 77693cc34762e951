package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/kuronje-indexer/internal/config"
	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/logger"
	"github.com/feral-file/kuronje-indexer/internal/projection"
	"github.com/feral-file/kuronje-indexer/internal/store"
)

var (
	configFile  = flag.String("config", "", "Path to configuration file")
	envPath     = flag.String("env", "config/", "Path to environment files")
	rewindBlock = flag.Int64("rewind-block", -1, "Discard journal records from this block on before rebuilding; -1 replays the whole journal")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadRebuildConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Stop on SIGINT/SIGTERM, the running transaction is rolled back
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = logger.Initialize(logger.Config{
		Debug:       cfg.Debug,
		SentryDSN:   cfg.SentryDSN,
		Environment: cfg.Environment,
		Tags: map[string]string{
			"service": "kuronje-rebuild",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	db, err := store.Open(store.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN(),
		Debug:  cfg.Debug,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}

	dataStore := store.NewStore(db)
	defer func() {
		_ = dataStore.Close()
	}()

	cursorKey := domain.CursorKey(cfg.Ethereum.ChainID, cfg.Ethereum.ContractAddress)
	engine := projection.NewEngine(dataStore, cursorKey)

	start := time.Now()
	if *rewindBlock >= 0 {
		from := domain.Position{BlockNumber: uint64(*rewindBlock)}
		logger.InfoCtx(ctx, "Rewinding projection", zap.Stringer("from", from))

		cursor, err := engine.Rewind(ctx, from)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Rewind failed"))
			logger.Flush(2 * time.Second)
			os.Exit(1)
		}

		fields := []zap.Field{zap.Duration("duration", time.Since(start))}
		if cursor != nil {
			fields = append(fields, zap.Stringer("cursor", cursor))
		}
		logger.InfoCtx(ctx, "Projection rewound", fields...)
		return
	}

	logger.InfoCtx(ctx, "Rebuilding projection from journal", zap.String("cursor_key", cursorKey))
	result, err := engine.Rebuild(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Rebuild failed"))
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}

	logger.InfoCtx(ctx, "Projection rebuilt",
		zap.Int("replayed", result.Replayed),
		zap.Duration("duration", time.Since(start)))
}
