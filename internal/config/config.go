package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centralizes client configuration loaded from the environment.
type Config struct {
	APIBaseURL   string        `env:"API_BASE_URL" envDefault:"https://recharge-earn-be.vercel.app/api/v1"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	StorageDir   string        `env:"STORAGE_DIR"`
	CallbackAddr string        `env:"CALLBACK_ADDR" envDefault:"127.0.0.1:8743"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables. When STORAGE_DIR is
// unset, durable client state lives under ~/.rechargeearn.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if cfg.StorageDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.StorageDir = filepath.Join(home, ".rechargeearn")
	}
	return &cfg, nil
}
