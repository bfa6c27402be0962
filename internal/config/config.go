package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string `validate:"required"`
	ServiceName string `validate:"required"`
	Version     string

	// Database is optional; without DB_HOST the file catalog and outcomes are used
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int           `validate:"min=1"`
	DBMaxIdle  time.Duration `validate:"gte=0"`
	DBMaxLife  time.Duration `validate:"gte=0"`

	CatalogPath string
	OutcomesDir string
	TuningPath  string
	// CatalogSync copies the catalog file into the database at startup
	CatalogSync bool
	// LogDir also writes logs to a rotating file set when non-empty
	LogDir string

	WorkerCount      int           `validate:"min=1"`
	QueueSize        int           `validate:"min=1"`
	CatalogCacheSize int           `validate:"min=1"`
	CatalogCacheTTL  time.Duration `validate:"gt=0"`
	FrameInterval    time.Duration `validate:"gt=0"`
	SessionTTL       time.Duration `validate:"gt=0"`
	ReapInterval     time.Duration `validate:"gt=0"`
	PollInterval     time.Duration `validate:"gt=0"`
	PollTimeout      time.Duration `validate:"gt=0"`

	// APIKey guards the playback control routes; empty disables the check
	APIKey         string
	TrustedProxies []string

	DeadLetterPath  string        `validate:"required"`
	EventMaxRetries int           `validate:"min=1"`
	EventRetryDelay time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "brandishreveal"),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxIdle:  getEnvAsDuration("DB_MAX_IDLE", DefaultDBMaxIdle),
		DBMaxLife:  getEnvAsDuration("DB_MAX_LIFE", DefaultDBMaxLife),

		CatalogPath: getEnv("CATALOG_PATH", DefaultCatalogPath),
		OutcomesDir: getEnv("OUTCOMES_DIR", DefaultOutcomesDir),
		TuningPath:  getEnv("TUNING_PATH", DefaultTuningPath),
		CatalogSync: getEnvAsBool("CATALOG_SYNC", false),
		LogDir:      getEnv("LOG_DIR", ""),

		WorkerCount:      getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		QueueSize:        getEnvAsInt("QUEUE_SIZE", DefaultQueueSize),
		CatalogCacheSize: getEnvAsInt("CATALOG_CACHE_SIZE", DefaultCatalogCacheSize),
		CatalogCacheTTL:  getEnvAsDuration("CATALOG_CACHE_TTL", DefaultCatalogCacheTTL),
		FrameInterval:    getEnvAsDuration("FRAME_INTERVAL", DefaultFrameInterval),
		SessionTTL:       getEnvAsDuration("SESSION_TTL", DefaultSessionTTL),
		ReapInterval:     getEnvAsDuration("REAP_INTERVAL", DefaultReapInterval),
		PollInterval:     getEnvAsDuration("POLL_INTERVAL", DefaultPollInterval),
		PollTimeout:      getEnvAsDuration("POLL_TIMEOUT", DefaultPollTimeout),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		DeadLetterPath:  getEnv("EVENT_DEADLETTER_PATH", DefaultDeadLetterPath),
		EventMaxRetries: getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay: getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextInvalidPort, err)
	}
	cfg.Port = port

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextInvalidConfig, err)
	}
	return cfg, nil
}

// HasDatabase reports whether a database host is configured
func (c *Config) HasDatabase() bool {
	return c.DBHost != ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsBool parses a boolean variable such as "true" or "1"
func getEnvAsBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsInt parses an integer variable, falling back on a bad or missing value
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration parses a duration variable such as "500ms"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
