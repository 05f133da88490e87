package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	Version     string

	// Local store
	DBPath string

	// Event system
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// Sync engine
	SyncAPIURL         string
	SyncInterval       time.Duration
	SyncMaxRetries     int
	AlertSweepInterval time.Duration
	ProbeInterval      time.Duration

	// Remote authority (cmd/syncserver)
	AuthorityPort int
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),
		DBPath:      getEnv("DB_PATH", "fieldbook.db"),
		SyncAPIURL:  getEnv("SYNC_API_URL", "http://localhost:9090"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "fieldbook"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.AuthorityPort, err = getEnvInt("AUTHORITY_PORT", 9090); err != nil {
		return nil, err
	}
	if cfg.SyncMaxRetries, err = getEnvInt("SYNC_MAX_RETRIES", 5); err != nil {
		return nil, err
	}

	syncSecs, err := getEnvInt("SYNC_INTERVAL_SECONDS", DefaultSyncIntervalSeconds)
	if err != nil {
		return nil, err
	}
	cfg.SyncInterval = time.Duration(syncSecs) * time.Second

	sweepSecs, err := getEnvInt("ALERT_SWEEP_INTERVAL_SECONDS", DefaultAlertSweepIntervalSeconds)
	if err != nil {
		return nil, err
	}
	cfg.AlertSweepInterval = time.Duration(sweepSecs) * time.Second

	probeSecs, err := getEnvInt("CONNECTIVITY_PROBE_SECONDS", DefaultProbeIntervalSeconds)
	if err != nil {
		return nil, err
	}
	cfg.ProbeInterval = time.Duration(probeSecs) * time.Second

	if cfg.EventMaxRetries, err = getEnvInt("EVENT_MAX_RETRIES", 5); err != nil {
		return nil, err
	}
	retryMillis, err := getEnvInt("EVENT_RETRY_DELAY_MS", 2000)
	if err != nil {
		return nil, err
	}
	cfg.EventRetryDelay = time.Duration(retryMillis) * time.Millisecond
	cfg.EventDeadLetterPath = getEnv("EVENT_DEADLETTER_PATH", "logs/event_deadletter.jsonl")

	if cfg.SyncMaxRetries < 1 {
		return nil, fmt.Errorf("SYNC_MAX_RETRIES must be at least 1, got %d", cfg.SyncMaxRetries)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string for the
// authority server
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
