package config

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	getEnvDefault := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	interval, err := time.ParseDuration(getEnvDefault("AGGREGATE_INTERVAL", "10s"))
	if err != nil {
		log.Fatalf("Error: AGGREGATE_INTERVAL is not a valid duration: %s", err)
	}

	cfg := Config{
		Port:        getEnv("PORT"),
		DataDir:     getEnvDefault("DATA_DIR", "./data"),
		CurrentGame: getEnvDefault("CURRENT_GAME", "builderday"),
		Aggregate: AggregateConfig{
			Interval: interval,
		},
		Namer: NamerConfig{
			AccountID:  getEnvDefault("CF_ACCOUNT_ID", ""),
			APIToken:   getEnvDefault("CF_API_TOKEN", ""),
			Moderation: getEnvDefault("NAMER_MODERATION", "false") == "true",
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvDefault("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvDefault("TURSO_AUTH_TOKEN", ""),
		},
	}
	return cfg
}
