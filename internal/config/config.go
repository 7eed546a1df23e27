package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	Environment  string        `yaml:"environment"`
}

// StoreConfig selects the profile store backend.
type StoreConfig struct {
	// Backend is "sqlite" or "postgres".
	Backend     string `yaml:"backend"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// AuthConfig holds the login gate and session settings.
type AuthConfig struct {
	Username  string        `yaml:"username"`
	Password  string        `yaml:"password"`
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// AppConfig is the full application configuration.
type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Auth   AuthConfig   `yaml:"auth"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         "8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  2 * time.Minute,
			Environment:  "development",
		},
		Store: StoreConfig{
			Backend:    "sqlite",
			SQLitePath: "data/xcribe.db",
		},
		Auth: AuthConfig{
			Username: "1111",
			Password: "1111",
			TokenTTL: 12 * time.Hour,
		},
	}
}

// LoadConfig builds the configuration from defaults, an optional yaml file
// and environment overrides, in that order.
func LoadConfig(path string) (AppConfig, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.Store.Backend != "sqlite" && cfg.Store.Backend != "postgres" {
		return cfg, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
	if cfg.Store.Backend == "postgres" && cfg.Store.PostgresDSN == "" {
		return cfg, fmt.Errorf("postgres backend requires a DSN")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("XCRIBE_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("XCRIBE_PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("XCRIBE_ENV"); v != "" {
		cfg.Server.Environment = v
	}
	if v := os.Getenv("XCRIBE_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("XCRIBE_SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("XCRIBE_POSTGRES_DSN"); v != "" {
		cfg.Store.PostgresDSN = v
	}
	if v := os.Getenv("XCRIBE_USERNAME"); v != "" {
		cfg.Auth.Username = v
	}
	if v := os.Getenv("XCRIBE_PASSWORD"); v != "" {
		cfg.Auth.Password = v
	}
	if v := os.Getenv("XCRIBE_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
}
