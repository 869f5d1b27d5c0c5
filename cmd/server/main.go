// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cedars-leadgen/internal/accounts"
	"cedars-leadgen/internal/catalog"
	"cedars-leadgen/internal/common/aws"
	"cedars-leadgen/internal/common/config"
	"cedars-leadgen/internal/common/database"
	"cedars-leadgen/internal/common/logger"
	"cedars-leadgen/internal/common/observability"
	"cedars-leadgen/internal/history"
	"cedars-leadgen/internal/outreach"
	"cedars-leadgen/internal/places"
	"cedars-leadgen/internal/scan"
	"cedars-leadgen/internal/server"
	"cedars-leadgen/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting lead generation server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional) ---
	var indexer *history.Indexer
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		indexer = history.NewIndexer(esClient.Client, cfg.Database.Elasticsearch.Index, log)
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Init AWS messaging clients (optional) ---
	var sesClient *aws.SESClient
	if cfg.Integrations.AWS.SES.Enabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
	}

	var snsClient *aws.SNSClient
	if cfg.Integrations.AWS.SNS.Enabled {
		snsClient, err = aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
	}

	// --- History schema ---
	historyStore := history.NewStore(pg.DB, log)
	if err := historyStore.Init(ctx); err != nil {
		zapLog.Fatal("history schema init failed", zap.Error(err))
	}

	// --- Category catalog, extended from the registry file when present ---
	cat := catalog.Default()
	if cfg.Catalog.RegistryPath != "" {
		reg, err := registry.LoadRegistry(cfg.Catalog.RegistryPath)
		if err != nil {
			zapLog.Fatal("category registry load failed", zap.Error(err))
		}
		cat, err = registry.MergeIntoCatalog(cat, reg)
		if err != nil {
			zapLog.Fatal("category registry merge failed", zap.Error(err))
		}
		zapLog.Info("category registry merged",
			zap.String("path", cfg.Catalog.RegistryPath),
			zap.Int("categories", len(cat.Names())),
		)
	}

	// --- Wire handlers ---
	placesClient := places.NewClient(cfg.Places, log)
	enumerator := scan.NewEnumerator(placesClient, placesClient, log)
	scanHandler := scan.NewHandler(cat, enumerator,
		scan.Config{EmitErrorEvent: cfg.Stream.EmitErrorEvent}, obs, log)

	accountStore := accounts.NewStore(rdb.Client, log)
	notifier := outreach.NewNotifier(sesClient, snsClient,
		cfg.Integrations.AWS.SES.FromEmail,
		cfg.Integrations.AWS.SNS.SenderID, log)

	handlers := server.Handlers{
		Scan:     scanHandler,
		Catalog:  catalog.NewHandler(cat),
		History:  history.NewHandler(historyStore, indexer, log),
		Accounts: accounts.NewHandler(accountStore, log),
		Outreach: outreach.NewHandler(notifier, historyStore, cfg.Integrations.WhatsApp.DefaultMessage, log),
	}

	srv := server.New(cfg.Server, handlers, log)
	errCh := make(chan error, 2)
	srv.Start(errCh)

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		zapLog.Error("Server failed", zap.Error(err))
	}

	if err := srv.Shutdown(); err != nil {
		zapLog.Error("Error during shutdown", zap.Error(err))
	}
	zapLog.Info("Server stopped gracefully")
}
