package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/efe-storefront/backend/config"
	httpDelivery "github.com/efe-storefront/backend/internal/delivery/http"
	"github.com/efe-storefront/backend/internal/infrastructure/cache"
	"github.com/efe-storefront/backend/internal/infrastructure/medusa"
	"github.com/efe-storefront/backend/internal/usecase"
	"github.com/efe-storefront/backend/pkg/logger"
)

const (
	serviceName    = "storefront-backend"
	serviceVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Server.Environment, cfg.Log.Level)
	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("cache_type", cfg.Cache.Type).
		Dur("cache_ttl", cfg.Cache.TTL).
		Str("visual_option", cfg.Variants.VisualOption).
		Msg("Starting storefront backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	productCache, err := cache.New(cfg.Cache.Type, cfg.Cache.RedisURL, cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize cache")
	}
	if redisCache, ok := productCache.(*cache.RedisCache); ok {
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Redis not reachable, product cache will miss until it is")
		}
		defer redisCache.Close()
	}

	commerceClient := medusa.NewClient(medusa.Config{
		BaseURL:           cfg.Commerce.BaseURL,
		PublishableKey:    cfg.Commerce.PublishableKey,
		RegionID:          cfg.Commerce.RegionID,
		Timeout:           cfg.Commerce.Timeout,
		RequestsPerSecond: cfg.Commerce.RequestsPerSecond,
		Burst:             cfg.Commerce.Burst,
		MaxRetries:        cfg.Commerce.MaxRetries,
	})
	if cfg.Commerce.Debug || cfg.Server.Environment == "development" {
		commerceClient.SetDebug(true)
		logger.Info().Msg("Medusa client debug mode enabled")
	}
	logger.Info().Str("base_url", cfg.Commerce.BaseURL).Str("region_id", cfg.Commerce.RegionID).Msg("Medusa store API configured")

	// Initialize usecase layer
	productService := usecase.NewProductService(
		productCache,
		commerceClient,
		usecase.ProductServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			VisualOptionName:   cfg.Variants.VisualOption,
			EnableDebugLogging: cfg.Variants.DebugLogging,
			MaxFavorites:       cfg.Variants.MaxFavorites,
		},
	)

	handler := httpDelivery.NewHandler(productService)

	var limiter *httpDelivery.IPRateLimiter
	if cfg.RateLimit.PerIP > 0 {
		limiter = httpDelivery.NewIPRateLimiter(ctx, cfg.RateLimit.PerIP, cfg.RateLimit.Burst)
		defer limiter.Stop()
	}

	router := httpDelivery.SetupRouter(cfg, handler, limiter)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.ServiceStart(serviceName, serviceVersion, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.ServiceStop(serviceName)
}
