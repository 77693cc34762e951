package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/kuronje-indexer/internal/adapter"
	"github.com/feral-file/kuronje-indexer/internal/config"
	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/indexer"
	"github.com/feral-file/kuronje-indexer/internal/logger"
	"github.com/feral-file/kuronje-indexer/internal/messaging"
	"github.com/feral-file/kuronje-indexer/internal/projection"
	"github.com/feral-file/kuronje-indexer/internal/providers/ethereum"
	"github.com/feral-file/kuronje-indexer/internal/providers/jetstream"
	"github.com/feral-file/kuronje-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadIndexerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		Environment:     cfg.Environment,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service":  "kuronje-indexer",
			"contract": domain.NormalizeAddress(cfg.Ethereum.ContractAddress),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Kuronje Indexer",
		zap.String("chain", string(cfg.Ethereum.ChainID)),
		zap.String("contract", cfg.Ethereum.ContractAddress))

	// Connect to database
	db, err := store.Open(store.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		Debug:           cfg.Debug,
	})
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to connect to database"))
		return 1
	}
	if err := store.Migrate(db); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to migrate database"))
		return 1
	}
	logger.InfoCtx(ctx, "Connected to database", zap.String("driver", cfg.Database.Driver))

	// Initialize store
	dataStore := store.NewStore(db)
	defer func() {
		_ = dataStore.Close()
	}()

	// Initialize adapters
	clockAdapter := adapter.NewClock()

	// Initialize ethereum client
	ethDialer := adapter.NewEthClientDialer()
	ethClient, err := ethDialer.Dial(ctx, cfg.Ethereum.WebSocketURL)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to dial Ethereum RPC"))
		return 1
	}

	decoder, err := ethereum.NewDecoder(cfg.Ethereum.ContractAddress)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to create event decoder"))
		return 1
	}

	logSource, err := ethereum.NewLogSource(ethereum.Config{
		WebSocketURL:       cfg.Ethereum.WebSocketURL,
		ChainID:            cfg.Ethereum.ChainID,
		ContractAddress:    cfg.Ethereum.ContractAddress,
		BackfillStepSize:   cfg.Ethereum.BackfillStepSize,
		BlockTimeCacheSize: cfg.Ethereum.BlockTimeCacheSize,
		BlockFetchWorkers:  cfg.Worker.WorkerPoolSize,
	}, ethClient, decoder)
	if err != nil {
		ethClient.Close()
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to create log source"))
		return 1
	}
	logger.InfoCtx(ctx, "Connected to Ethereum WebSocket")

	// Initialize NATS publisher, optional
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:             cfg.NATS.URL,
			StreamName:      cfg.NATS.StreamName,
			Collection:      cfg.NATS.Collection,
			MaxReconnects:   cfg.NATS.MaxReconnects,
			ReconnectWait:   cfg.NATS.ReconnectWait,
			ConnectionName:  cfg.NATS.ConnectionName,
			DuplicateWindow: cfg.NATS.DuplicateWindow,
		}, adapter.NewNatsJetStream())
		if err != nil {
			logSource.Close()
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to create NATS publisher"))
			return 1
		}
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, applied events will not be published")
	}

	cursorKey := domain.CursorKey(cfg.Ethereum.ChainID, cfg.Ethereum.ContractAddress)
	engine := projection.NewEngine(dataStore, cursorKey)

	idx := indexer.NewIndexer(
		logSource,
		decoder,
		engine,
		dataStore,
		publisher,
		indexer.Config{
			ChainID:              cfg.Ethereum.ChainID,
			ContractAddress:      cfg.Ethereum.ContractAddress,
			StartBlock:           cfg.Ethereum.StartBlock,
			RetryInitialInterval: cfg.Retry.InitialInterval,
			RetryMaxInterval:     cfg.Retry.MaxInterval,
			RetryMaxElapsedTime:  cfg.Retry.MaxElapsedTime,
		},
		clockAdapter,
	)
	defer idx.Close()

	// Expose prometheus metrics
	var metricsServer *http.Server
	if cfg.Metrics.Address != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(err, zap.String("component", "metrics"))
			}
		}()
		logger.InfoCtx(ctx, "Serving metrics", zap.String("address", cfg.Metrics.Address))
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel for indexer errors
	errCh := make(chan error, 1)

	// Start the indexer
	go func() {
		errCh <- idx.Run(ctx)
	}()

	exitCode := 0

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err, zap.String("component", "indexer"))
			exitCode = 1
		}
		cancel()
	}

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Kuronje Indexer stopped")
	return exitCode
}
