package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"shopify-summary-sync/internal/application"
	"shopify-summary-sync/internal/application/webhook_handlers"
	"shopify-summary-sync/internal/config"
	"shopify-summary-sync/internal/domain"
	"shopify-summary-sync/internal/infrastructure/ai"
	"shopify-summary-sync/internal/infrastructure/queue"
	"shopify-summary-sync/internal/infrastructure/repository"
	shopifyinfra "shopify-summary-sync/internal/infrastructure/shopify"
	"shopify-summary-sync/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()

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
	shopRepo := repository.NewMongoShopRepository(db)

	// Initialize infrastructure
	taskQueue := queue.NewRedisTaskQueue(redisClient, logger)
	verifier := shopifyinfra.NewWebhookVerifier(cfg.Shopify.APISecret)

	// Initialize application services
	graphqlClient := shopifyinfra.NewGraphQLClient(cfg.Shopify.APIVersion)
	fetcher := shopifyinfra.NewCatalogFetcher(graphqlClient, cfg.Sync.MaxCatalogProducts, logger)
	generator := ai.NewGroqGenerator(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.BaseURL)

	statusService := application.NewStatusService(shopRepo, jobRepo, productRepo, summaryRepo, syncLogRepo, taskQueue, logger)

	// The API process handles single-product webhook paths inline; full
	// passes go through the queue to the worker.
	syncService := application.NewSyncService(
		productRepo, summaryRepo, syncLogRepo, jobRepo,
		fetcher, generator, logger,
	)

	// Initialize webhook dispatcher and register handlers
	webhookDispatcher := application.NewWebhookDispatcher(logger)
	webhookDispatcher.RegisterHandler(webhook_handlers.NewProductHandler(syncService, logger))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewAppLifecycleHandler(shopRepo, summaryRepo, jobRepo, taskQueue, logger))

	// Setup router
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	r.Get("/api/installation-status", latestStatusHandler(statusService, logger))
	r.Get("/api/installation-status/{jobID}", jobStatusHandler(statusService, logger))
	r.Get("/api/products", productsHandler(statusService, logger))
	r.Get("/api/product-summary", productSummaryHandler(statusService, logger))
	r.Get("/api/sync-logs", syncLogsHandler(statusService, logger))
	r.Post("/api/sync-products", triggerSyncHandler(statusService, logger))

	r.Post("/webhooks/shopify", webhookHandler(verifier, shopRepo, webhookDispatcher, logger))

	logger.Info().Str("port", cfg.Server.Port).Msg("Starting API server")
	if err := http.ListenAndServe(":"+cfg.Server.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func latestStatusHandler(svc *application.StatusService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := r.URL.Query().Get("shop")
		if shop == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "shop query parameter is required"})
			return
		}

		job, err := svc.GetLatestInstallationJob(r.Context(), shop)
		if err != nil {
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to get latest job")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get installation status"})
			return
		}
		if job == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "no_job"})
			return
		}
		writeJSON(w, http.StatusOK, job)
	}
}

func jobStatusHandler(svc *application.StatusService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "jobID")

		job, err := svc.GetInstallationStatus(r.Context(), jobID)
		if err != nil {
			logger.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get installation status"})
			return
		}
		if job == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
			return
		}
		writeJSON(w, http.StatusOK, job)
	}
}

func productsHandler(svc *application.StatusService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := r.URL.Query().Get("shop")
		if shop == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "shop query parameter is required"})
			return
		}

		products, err := svc.GetProducts(r.Context(), shop)
		if err != nil {
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to list products")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list products"})
			return
		}
		if products == nil {
			products = []*domain.Product{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"products": products, "count": len(products)})
	}
}

func productSummaryHandler(svc *application.StatusService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := r.URL.Query().Get("shop")
		id := r.URL.Query().Get("id")
		if shop == "" || id == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "shop and id query parameters are required"})
			return
		}

		summary, err := svc.GetProductSummary(r.Context(), shop, id)
		if err != nil {
			logger.Error().Err(err).Str("shop", shop).Str("id", id).Msg("Failed to get summary")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get summary"})
			return
		}
		if summary == nil {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"productSummary": nil,
				"enhancedTitle":  nil,
				"originalTitle":  nil,
				"productId":      id,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"productSummary": summary.EnhancedDescription,
			"enhancedTitle":  summary.EnhancedTitle,
			"originalTitle":  summary.OriginalTitle,
			"productId":      summary.ShopifyProductID,
		})
	}
}

func syncLogsHandler(svc *application.StatusService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := r.URL.Query().Get("shop")
		if shop == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "shop query parameter is required"})
			return
		}

		logs, err := svc.GetSyncLogs(r.Context(), shop)
		if err != nil {
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to list sync logs")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list sync logs"})
			return
		}
		if logs == nil {
			logs = []*domain.SyncLog{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
	}
}

func triggerSyncHandler(svc *application.StatusService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := r.URL.Query().Get("shop")
		if shop == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "shop query parameter is required"})
			return
		}

		job, err := svc.TriggerFullSync(r.Context(), shop)
		if err != nil {
			var valErr *domain.ValidationError
			if errors.As(err, &valErr) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": valErr.Error()})
				return
			}
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to trigger sync")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to trigger sync"})
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{
			"jobId":  job.JobID,
			"status": string(job.Status),
		})
	}
}

// webhookHandler verifies, logs and dispatches inbound Shopify webhooks.
// Handler failures after verification still return 200 so Shopify does not
// retry endlessly; the failure is logged for investigation.
func webhookHandler(
	verifier *shopifyinfra.WebhookVerifier,
	shopRepo ports.ShopRepository,
	dispatcher *application.WebhookDispatcher,
	logger zerolog.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		topic := r.Header.Get("X-Shopify-Topic")
		if topic == "" {
			http.Error(w, "Missing X-Shopify-Topic header", http.StatusBadRequest)
			return
		}

		if err := verifier.Verify(r); err != nil {
			logger.Warn().Err(err).Str("topic", topic).Msg("Webhook signature verification failed")
			http.Error(w, "Invalid signature", http.StatusUnauthorized)
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		shop := r.Header.Get("X-Shopify-Shop-Domain")
		if shop == "" {
			var body struct {
				Domain     string `json:"domain"`
				ShopDomain string `json:"shop_domain"`
			}
			if err := json.Unmarshal(payload, &body); err == nil {
				shop = body.Domain
				if shop == "" {
					shop = body.ShopDomain
				}
			}
		}

		event := &domain.WebhookEvent{
			Topic:    topic,
			Shop:     shop,
			Payload:  payload,
			Verified: true,
		}

		if err := shopRepo.LogWebhook(ctx, event); err != nil {
			logger.Error().Err(err).Str("topic", topic).Msg("Failed to log webhook")
			// Keep processing; the audit log is best effort.
		}

		if err := dispatcher.Dispatch(ctx, event); err != nil {
			logger.Error().Err(err).
				Str("topic", topic).
				Str("shop", shop).
				Msg("Failed to dispatch webhook event")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to process webhook"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
	}
}
