package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parkpal/parkpal-backend/config"
	"github.com/parkpal/parkpal-backend/db"
	_ "github.com/parkpal/parkpal-backend/docs"
	"github.com/parkpal/parkpal-backend/handlers"
	"github.com/parkpal/parkpal-backend/internal/llm"
	"github.com/parkpal/parkpal-backend/internal/store"
	"github.com/parkpal/parkpal-backend/internal/store/fixture"
	"github.com/parkpal/parkpal-backend/internal/store/postgres"
	"github.com/parkpal/parkpal-backend/logger"
	"github.com/parkpal/parkpal-backend/pkg/commerce"
	"github.com/parkpal/parkpal-backend/router"
	"github.com/parkpal/parkpal-backend/services"
)

// @title Parkpal API
// @version 1.0
// @description Conversational parking-space discovery and booking.
// @BasePath /v1
func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		if err := logger.Close(); err != nil {
			log.Warnw("Failed to flush logger", "error", err)
		}
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := db.Connect(ctx, cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisClient := newRedisClient(cfg)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("Redis unreachable, chat rate limiting disabled", "error", err)
		redisClient = nil
	}

	spaceStore := postgres.NewSpaceStore(pool)
	bookingStore := postgres.NewBookingStore(pool)
	userStore := postgres.NewUserStore(pool)
	vehicleStore := postgres.NewVehicleStore(pool)

	// The search pipeline reads inventory through a provider so development
	// can run against the embedded snapshot instead of live data.
	var inventoryProvider store.InventoryProvider = spaceStore
	if cfg.Server.InventorySource == "fixture" {
		log.Info("Using embedded fixture inventory")
		inv, err := fixture.NewInventory()
		if err != nil {
			log.Fatalf("Failed to load fixture inventory: %v", err)
		}
		inventoryProvider = inv
	}
	inventoryService := services.NewInventoryService(inventoryProvider)

	var llmClient llm.ClientInterface
	if cfg.LLM.APIKey != "" {
		llmClient = llm.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
	} else {
		log.Warn("No LLM API key configured, chat replies will be templated")
	}
	chatService := services.NewChatService(inventoryService, llmClient)

	commerceClient := commerce.NewClient(cfg.Commerce.BaseURL, cfg.Commerce.StoreID, cfg.Commerce.SecretKey)
	paymentService := services.NewPaymentService(cfg.Payment.StripeSecretKey, cfg.Payment.Currency)
	emailService := services.NewEmailService(&cfg.Email)
	bookingService := services.NewBookingService(
		bookingStore, spaceStore, userStore, vehicleStore,
		commerceClient, paymentService, emailService,
	)
	userService := services.NewUserService(userStore, commerceClient)
	vehicleService := services.NewVehicleService(vehicleStore, userStore)
	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)

	var rateLimiter services.RateLimiterInterface
	if redisClient != nil {
		rateLimiter = services.NewRateLimitService(redisClient, cfg.RateLimit)
	}

	srv := &http.Server{
		Addr: ":" + cfg.Server.Port,
		Handler: router.SetupRouter(router.Dependencies{
			Config:         cfg,
			ChatHandler:    handlers.NewChatHandler(chatService),
			SpaceHandler:   handlers.NewSpaceHandler(inventoryService, spaceStore),
			BookingHandler: handlers.NewBookingHandler(bookingService),
			UserHandler:    handlers.NewUserHandler(userService),
			VehicleHandler: handlers.NewVehicleHandler(vehicleService),
			HealthHandler:  handlers.NewHealthHandler(healthService),
			RateLimiter:    rateLimiter,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Starting server", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Graceful shutdown failed", "error", err)
	}
}

func newRedisClient(cfg *config.Config) *redis.Client {
	opts := &redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opts)
}
