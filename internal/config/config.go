package config

import (
	"fmt"
	"os"
)

// Store backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config sitedesk runtime configuration, read from the environment.
type Config struct {
	HTTP struct {
		Addr string
	}
	Store struct {
		Backend string // file | memory | redis | postgres
		DataDir string // file backend
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		Database string
		SSLMode  string
	}
	Log struct {
		Level  string
		Format string
	}
	// SeedSample loads the bundled sample data when the store is empty.
	SeedSample bool
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// Default to the file backend: a local tool should come up with plain
	// `go run` and no external services.
	cfg.Store.Backend = getEnv("STORE_BACKEND", BackendFile)
	cfg.Store.DataDir = getEnv("DATA_DIR", "./data")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "sitedesk")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.SeedSample = getEnv("SEED_SAMPLE", "true") == "true"
	return cfg
}

// PostgresDSN assembles the lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Database, c.Database.SSLMode)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
