package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/config"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/geocode"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/handler"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/limiter"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/logger"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/metrics"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/province"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/router"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/service"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/store"
)

// @title           Confesercenti Vallo Stores API
// @version         1.0
// @description     Search the associated stores by text, category and location
// @BasePath        /
func main() {
	appConfig := config.Load()

	appLogger := setupLogger(appConfig)
	metricsCollector := metrics.New()

	dataStore, redisClient := setupDataStore(appConfig, appLogger)
	lookup := setupProvinces(appConfig, appLogger)

	rateLimiter := setupRateLimiter(appConfig, redisClient, appLogger)
	defer rateLimiter.Close()

	storeService := service.NewStoreService(dataStore, lookup, setupGeocoder(appConfig, appLogger), metricsCollector, appLogger)
	defer storeService.Close()

	appRouter := router.SetupRouter(router.Deps{
		Stores:      handler.NewStoreHandler(storeService),
		RateLimiter: rateLimiter,
		Metrics:     metricsCollector,
		Logger:      appLogger,
	})

	startServer(appConfig, appRouter, appLogger)
}

func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:      appConfig.LogLevel,
		Pretty:     appConfig.LogPretty,
		OutputFile: appConfig.LogFile,
	})

	appLogger.Info().
		Str("port", appConfig.Port).
		Str("datastore_type", appConfig.DatastoreType).
		Str("stores_path", appConfig.StoresPath).
		Str("promotions_path", appConfig.PromotionsPath).
		Str("rate_limiter_type", appConfig.RateLimitType).
		Int("rate_limit", appConfig.RateLimit).
		Int("rate_limit_window", appConfig.RateLimitWindow).
		Bool("geocoder_enabled", appConfig.GeocoderEnabled).
		Msg("Configuration loaded")

	return appLogger
}

// setupDataStore opens the configured backend. For Redis it also returns the
// client so the rate limiter can share the connection.
func setupDataStore(appConfig *config.Config, log *logger.Logger) (store.Store, *redis.Client) {
	switch appConfig.DatastoreType {
	case "csv":
		csvStore, err := store.NewCSVStore(appConfig.StoresPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize CSV store")
		}
		log.Info().Str("path", appConfig.StoresPath).Msg("CSV store initialized")
		if err := csvStore.LoadPromotions(appConfig.PromotionsPath); err != nil {
			log.Warn().Err(err).Str("path", appConfig.PromotionsPath).Msg("Promotions not loaded, serving none")
		}
		return csvStore, nil

	case "mysql":
		mysqlStore, err := store.NewMySQLStore(appConfig.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize MySQL store")
		}
		log.Info().Msg("MySQL store initialized")
		return mysqlStore, nil

	case "redis":
		redisStore, err := store.NewRedisStore(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis store")
		}
		log.Info().Str("addr", appConfig.RedisAddr).Msg("Redis store initialized")
		seedRedisIfEmpty(redisStore, appConfig.StoresPath, appConfig.PromotionsPath, log)
		return redisStore, redisStore.Client()

	default:
		log.Fatal().Str("type", appConfig.DatastoreType).Msg("Unknown datastore type")
		return nil, nil
	}
}

// seedRedisIfEmpty loads the stores and promotions CSV files into an empty
// Redis datastore
func seedRedisIfEmpty(redisStore *store.RedisStore, csvPath, promotionsPath string, log *logger.Logger) {
	isEmpty, err := redisStore.IsEmpty()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to check if Redis is empty")
		return
	}
	if !isEmpty {
		return
	}

	count, err := redisStore.LoadFromCSV(csvPath)
	if err != nil {
		log.Warn().Err(err).Str("path", csvPath).Msg("Failed to seed Redis from CSV")
		return
	}
	log.Info().Int("stores", count).Msg("Redis was empty, seeded from CSV")

	promotions, err := redisStore.LoadPromotionsFromCSV(promotionsPath)
	if err != nil {
		log.Warn().Err(err).Str("path", promotionsPath).Msg("Failed to seed Redis promotions from CSV")
		return
	}
	log.Info().Int("promotions", promotions).Msg("Promotions seeded from CSV")
}

// setupProvinces loads the province reference table once for the process
func setupProvinces(appConfig *config.Config, log *logger.Logger) *province.Lookup {
	var (
		records []models.Province
		err     error
	)
	if appConfig.ProvincesPath != "" {
		records, err = province.LoadCSV(appConfig.ProvincesPath)
	} else {
		records, err = province.Default()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load province reference table")
	}

	log.Info().Int("provinces", len(records)).Msg("Province reference table loaded")
	return province.BuildLookup(records)
}

func setupGeocoder(appConfig *config.Config, log *logger.Logger) geocode.Geocoder {
	if !appConfig.GeocoderEnabled {
		log.Info().Msg("Reverse geocoding disabled")
		return nil
	}
	return geocode.NewNominatimClient(appConfig.GeocoderURL, appConfig.GeocoderUserAgent, appConfig.GeocoderTimeout)
}

func setupRateLimiter(appConfig *config.Config, redisClient *redis.Client, log *logger.Logger) limiter.Limiter {
	requestsPerSecond, err := appConfig.RequestsPerSecond()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid rate limit configuration")
	}

	rateLimiter, err := limiter.New(limiter.Config{
		Type:              appConfig.RateLimitType,
		RequestsPerSecond: requestsPerSecond,
		Client:            redisClient,
		RedisAddr:         appConfig.RedisAddr,
		RedisPassword:     appConfig.RedisPassword,
		RedisDB:           appConfig.RedisDB,
		Logger:            log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize rate limiter")
	}

	log.Info().
		Str("type", appConfig.RateLimitType).
		Float64("requests_per_second", requestsPerSecond).
		Msg("Rate limiter initialized")

	return rateLimiter
}

// startServer serves until SIGINT/SIGTERM, then drains in-flight requests
func startServer(appConfig *config.Config, appRouter http.Handler, log *logger.Logger) {
	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           appRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("search", "http://localhost:"+appConfig.Port+"/v1/stores?q=<text>").
			Str("metrics", "http://localhost:"+appConfig.Port+"/metrics").
			Msg("Server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
