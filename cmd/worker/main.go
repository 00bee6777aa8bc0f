package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopify-summary-sync/internal/application"
	"shopify-summary-sync/internal/config"
	"shopify-summary-sync/internal/domain"
	"shopify-summary-sync/internal/infrastructure/ai"
	"shopify-summary-sync/internal/infrastructure/queue"
	"shopify-summary-sync/internal/infrastructure/repository"
	shopifyinfra "shopify-summary-sync/internal/infrastructure/shopify"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "worker").Logger()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.Database)
	if err := repository.EnsureIndexes(context.Background(), db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create indexes")
	}

	// Connect to Redis
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Initialize repositories
	productRepo := repository.NewMongoProductRepository(db)
	summaryRepo := repository.NewMongoSummaryRepository(db)
	syncLogRepo := repository.NewMongoSyncLogRepository(db)
	jobRepo := repository.NewMongoJobRepository(db)

	// Initialize infrastructure
	graphqlClient := shopifyinfra.NewGraphQLClient(cfg.Shopify.APIVersion)
	fetcher := shopifyinfra.NewCatalogFetcher(graphqlClient, cfg.Sync.MaxCatalogProducts, logger)
	generator := ai.NewGroqGenerator(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.BaseURL)
	taskQueue := queue.NewRedisTaskQueue(redisClient, logger)

	syncService := application.NewSyncServiceWithOptions(
		productRepo, summaryRepo, syncLogRepo, jobRepo,
		fetcher, generator, logger,
		time.Duration(cfg.Sync.GenerationDelayMS)*time.Millisecond,
	)

	logger.Info().Msg("Worker started, consuming sync tasks")

	err = taskQueue.Consume(ctx, func(ctx context.Context, task *domain.SyncTask) error {
		return syncService.RunFullSync(ctx, task)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("Worker stopped with error")
	}

	logger.Info().Msg("Worker shut down")
}
