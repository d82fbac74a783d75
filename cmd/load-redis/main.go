package main

import (
	flag "github.com/spf13/pflag"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/config"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/logger"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/store"
)

// Loads the stores and promotions CSV files into the Redis hashes used by
// DATASTORE_TYPE=redis.
// Usage: go run ./cmd/load-redis [--file ./data/stores.csv] [--promotions ./data/promotions.csv]
func main() {
	appConfig := config.Load()

	csvPath := flag.StringP("file", "f", appConfig.StoresPath, "stores CSV to load")
	promotionsPath := flag.StringP("promotions", "p", appConfig.PromotionsPath, "promotions CSV to load (empty to skip)")
	flag.Parse()

	log := logger.New(logger.Config{Level: appConfig.LogLevel, Pretty: true}).WithComponent("load-redis")

	redisStore, err := store.NewRedisStore(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Str("addr", appConfig.RedisAddr).Msg("Failed to connect to Redis")
	}
	defer redisStore.Close()

	count, err := redisStore.LoadFromCSV(*csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *csvPath).Msg("Failed to load CSV data")
	}

	promotions := 0
	if *promotionsPath != "" {
		promotions, err = redisStore.LoadPromotionsFromCSV(*promotionsPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *promotionsPath).Msg("Failed to load promotions")
		}
	}

	log.Info().
		Int("stores", count).
		Int("promotions", promotions).
		Str("addr", appConfig.RedisAddr).
		Msg("Data loaded, start the server with DATASTORE_TYPE=redis")
}
