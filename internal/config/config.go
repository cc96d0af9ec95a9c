// internal/config/config.go
package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr            = ":8080"
	DefaultModelPath       = "model/customer_churn_logreg.json"
	DefaultPredictionQueue = "churn_predictions"
)

// Config holds the process settings read from the environment.
type Config struct {
	Addr            string
	ModelPath       string
	AMQPURL         string
	PredictionQueue string
	LogLevel        string
}

// Load reads .env when present and then the environment. The returned bool
// is false when no .env file was found.
func Load() (Config, bool) {
	found := godotenv.Load() == nil
	return FromEnv(), found
}

// FromEnv builds a Config from environment variables only.
func FromEnv() Config {
	return Config{
		Addr:            getenv("ADDR", DefaultAddr),
		ModelPath:       getenv("MODEL_PATH", DefaultModelPath),
		AMQPURL:         os.Getenv("AMQP_URL"),
		PredictionQueue: getenv("PREDICTION_QUEUE", DefaultPredictionQueue),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
