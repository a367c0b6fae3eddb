package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Bot       BotConfig
	CredStore CredStoreConfig
}

type ServerConfig struct {
	Port          string
	SessionSecret string
}

type DatabaseConfig struct {
	URL string
}

type BotConfig struct {
	Token string
}

type CredStoreConfig struct {
	AdminFile         string
	AuditFile         string
	BootstrapUser     string
	BootstrapPassword string
	SeedDefaultStaff  bool
}

// DefaultSessionSecret is the fallback signing key used when SESSION_SECRET
// is not supplied. main logs a warning when it is in effect.
const DefaultSessionSecret = "dev-secret-key-change-in-production"

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnv("SERVER_PORT", "8080"),
			SessionSecret: getEnv("SESSION_SECRET", DefaultSessionSecret),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Bot: BotConfig{
			Token: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
		CredStore: CredStoreConfig{
			AdminFile:         getEnv("ADMIN_FILE", "admins.json"),
			AuditFile:         getEnv("ADMIN_LOG_FILE", "admin_logs.json"),
			BootstrapUser:     os.Getenv("ADMIN_BOOTSTRAP_USER"),
			BootstrapPassword: os.Getenv("ADMIN_BOOTSTRAP_PASSWORD"),
			SeedDefaultStaff:  os.Getenv("SEED_DEFAULT_STAFF") == "true",
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
