package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds process-level settings, distinct from the runtime tunables in
// the store's config table.
type Config struct {
	DBPath        string
	DashboardAddr string
}

// Load reads an optional .env file and then the environment, falling back to
// defaults. A missing .env is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:        getEnv("QUEUECTL_DB", "queue.db"),
		DashboardAddr: getEnv("QUEUECTL_DASHBOARD_ADDR", ":8080"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
