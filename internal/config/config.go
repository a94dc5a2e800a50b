package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`
	DBUser     string `env:"DB_USER" envDefault:"planuser"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"planpassword"`
	DBName     string `env:"DB_NAME" envDefault:"planfreeze"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"default-secret-key-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	GinMode    string `env:"GIN_MODE" envDefault:"debug"`
	ServerPort string `env:"PORT" envDefault:"8080"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
