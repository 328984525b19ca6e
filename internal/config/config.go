// Package config loads portal settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/matheustorresii/vitrine-sorocabana/internal/apiclient"
	"github.com/matheustorresii/vitrine-sorocabana/internal/db"
)

const EnvDevelopment = "development"

type Config struct {
	Addr string `env:"PORTAL_ADDR,default=:3000"`
	Env  string `env:"PORTAL_ENV,default=production"`

	// Base URL of the backend API; VITE_API_BASE_URL wins over API_BASE_URL.
	APIBaseURL         string `env:"VITE_API_BASE_URL"`
	APIBaseURLFallback string `env:"API_BASE_URL"`
	Origin             string `env:"PORTAL_ORIGIN"`

	StorageDriver string `env:"STORAGE_DRIVER,default=sqlite"`
	SQLiteDSN     string `env:"SQLITE_DSN,default=file:vitrine.db"`
	StorageDir    string `env:"STORAGE_DIR,default=data"`
	RedisAddr     string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPrefix   string `env:"REDIS_PREFIX,default=vitrine:"`
	SeedFile      string `env:"SERVICES_SEED_FILE"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	AdminRateLimit  float64       `env:"ADMIN_RATE_LIMIT,default=5"`
	AdminRateBurst  int           `env:"ADMIN_RATE_BURST,default=10"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Load reads the given .env files (".env" when none are given) and decodes the
// environment into a Config. Missing .env files are not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Development() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// BaseURLOptions feeds apiclient.ResolveBaseURL.
func (c *Config) BaseURLOptions() apiclient.BaseURLOptions {
	configured := c.APIBaseURL
	if strings.TrimSpace(configured) == "" {
		configured = c.APIBaseURLFallback
	}
	return apiclient.BaseURLOptions{
		Configured:  configured,
		Development: c.Development(),
		Origin:      c.Origin,
	}
}

func (c *Config) StorageOptions() db.Options {
	return db.Options{
		Driver:      c.StorageDriver,
		SQLiteDSN:   c.SQLiteDSN,
		Dir:         c.StorageDir,
		RedisAddr:   c.RedisAddr,
		RedisPrefix: c.RedisPrefix,
	}
}

// Logger builds the root logger. Format is "text" or "json".
func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(level)
	switch strings.ToLower(c.LogFormat) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("log format %q: want text or json", c.LogFormat)
	}
	return log, nil
}
