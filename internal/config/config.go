package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      string `yaml:"port"`
	Env       string `yaml:"env"` // development | production
	DBDSN     string `yaml:"dbDsn"`
	JWTSecret string `yaml:"jwtSecret"`
	// TokenTTLRaw is a duration string ("720h"); TokenTTL is the parsed value.
	TokenTTLRaw string `yaml:"tokenTtl"`
	LogFile     string `yaml:"logFile"`

	TokenTTL time.Duration `yaml:"-"`
}

// Load reads an optional YAML config file (CONFIG_FILE), then lets
// environment variables override, then fills defaults.
func Load() Config {
	var cfg Config

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[config] could not read %s: %v", path, err)
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Printf("[config] could not parse %s: %v", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		cfg.TokenTTLRaw = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	if cfg.TokenTTLRaw != "" {
		d, err := time.ParseDuration(cfg.TokenTTLRaw)
		if err != nil {
			log.Printf("[config] bad TOKEN_TTL %q: %v", cfg.TokenTTLRaw, err)
		} else {
			cfg.TokenTTL = d
		}
	}

	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.DBDSN == "" {
		cfg.DBDSN = "bookhaven.db" // sqlite file in project root
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-me"
		if cfg.Env == "production" {
			log.Fatal("[config] JWT_SECRET is required in production")
		}
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 30 * 24 * time.Hour
	}

	log.Printf("[config] PORT=%s ENV=%s DB_DSN=%s LOG_FILE=%s TOKEN_TTL=%s",
		cfg.Port, cfg.Env, cfg.DBDSN, cfg.LogFile, cfg.TokenTTL)
	return cfg
}

func (c Config) Production() bool { return c.Env == "production" }
