package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	BotToken string  `envconfig:"BOT_TOKEN" required:"true"`
	AdminIDs []int64 `envconfig:"ADMIN_IDS" required:"true"`

	Database DatabaseConfig

	// BroadcastDelay is the pause between consecutive broadcast sends,
	// kept to stay under the transport rate limit.
	BroadcastDelay time.Duration `envconfig:"BROADCAST_DELAY" default:"50ms"`

	// IndexDigitThreshold separates short numerals (treated as 1-based
	// list indexes) from raw user ids when an admin picks a chat target.
	IndexDigitThreshold int `envconfig:"RELAY_INDEX_DIGIT_THRESHOLD" default:"4"`

	BackupDir string `envconfig:"BACKUP_DIR" default:"backups"`

	// MaxArtifactBytes caps backup uploads below the 50 MiB transport
	// hard limit.
	MaxArtifactBytes int64 `envconfig:"MAX_ARTIFACT_BYTES" default:"50331648"`

	// BackupSchedule is a daily HH:MM time for the automatic backup
	// job; empty disables it.
	BackupSchedule string `envconfig:"BACKUP_SCHEDULE" default:""`

	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9091"`

	// LogFile enables a rotated file sink next to stderr when set.
	LogFile string `envconfig:"LOG_FILE" default:""`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"selenazoo"`
	User     string `envconfig:"DB_USER" default:"selenazoo"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
}

// Load reads configuration from .env and environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if len(cfg.AdminIDs) == 0 {
		return nil, fmt.Errorf("ADMIN_IDS must list at least one admin")
	}

	return &cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
