// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// DefaultPublicDomain is the CDN host objects are served from.
const DefaultPublicDomain = "static.k1r.in"

// DefaultMaxUploadMB caps the size of a single uploaded file.
const DefaultMaxUploadMB = 16

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverMinio  = "minio"
	DriverS3     = "s3"
	DriverMemory = "memory"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port      string `env:"PORT" envDefault:"5005"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Object storage (S3-compatible: Cloudflare R2 in production, MinIO locally)
	StorageDriver       string        `env:"STORAGE_DRIVER" envDefault:"minio"`
	StorageEndpoint     string        `env:"R2_ENDPOINT"`
	StorageAccessKey    string        `env:"R2_ACCESS_KEY_ID"`
	StorageSecretKey    string        `env:"R2_SECRET_ACCESS_KEY"`
	StorageBucket       string        `env:"R2_BUCKET_NAME"`
	StorageRegion       string        `env:"R2_REGION" envDefault:"auto"`
	StorageEnsureBucket bool          `env:"STORAGE_ENSURE_BUCKET" envDefault:"false"`
	StorageTimeout      time.Duration `env:"STORAGE_TIMEOUT" envDefault:"30s"`

	PublicDomain string `env:"PUBLIC_DOMAIN" envDefault:"static.k1r.in"`
	MaxUploadMB  int    `env:"MAX_UPLOAD_MB" envDefault:"16"`
}

// MissingError reports every required variable absent from the environment.
type MissingError struct {
	Vars []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Vars, ", "))
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}
	return Parse()
}

// Parse reads configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.StorageEndpoint = strings.TrimSpace(cfg.StorageEndpoint)
	cfg.StorageAccessKey = strings.TrimSpace(cfg.StorageAccessKey)
	cfg.StorageSecretKey = strings.TrimSpace(cfg.StorageSecretKey)
	cfg.StorageBucket = strings.TrimSpace(cfg.StorageBucket)
	if cfg.PublicDomain == "" {
		cfg.PublicDomain = DefaultPublicDomain
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = DefaultMaxUploadMB
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the storage settings required by the selected driver are present.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMinio, DriverS3:
	case DriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	required := []struct {
		name  string
		value string
	}{
		{"R2_ENDPOINT", c.StorageEndpoint},
		{"R2_ACCESS_KEY_ID", c.StorageAccessKey},
		{"R2_SECRET_ACCESS_KEY", c.StorageSecretKey},
		{"R2_BUCKET_NAME", c.StorageBucket},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return &MissingError{Vars: missing}
	}
	return nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MaxUploadBytes returns the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
