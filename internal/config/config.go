package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ConsoleConfig is the environment configuration for the console binary.
type ConsoleConfig struct {
	StatePath string `env:"STATE_PATH" envDefault:"data/console.db"`
	BaseURL   string `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	APIKey    string `env:"API_KEY"`
}

// ServerConfig is the environment configuration for the backend binary.
type ServerConfig struct {
	Port        string        `env:"PORT" envDefault:"8000"`
	DBPath      string        `env:"DB_PATH" envDefault:"data/server.db"`
	DatabaseURL string        `env:"DATABASE_URL"`
	JWTSecret   string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	SeedPath    string        `env:"SEED_PATH"`
}

// LoadConsole parses console configuration from the environment.
func LoadConsole() (ConsoleConfig, error) {
	var cfg ConsoleConfig
	if err := env.Parse(&cfg); err != nil {
		return ConsoleConfig{}, fmt.Errorf("load console config: %w", err)
	}
	return cfg, nil
}

// LoadServer parses server configuration from the environment.
func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("load server config: %w", err)
	}
	return cfg, nil
}
