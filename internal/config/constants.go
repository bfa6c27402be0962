package config

import "time"

// Default paths
const (
	DefaultCatalogPath    = "configs/catalog.json"
	DefaultOutcomesDir    = "configs/outcomes"
	DefaultTuningPath     = "configs/tuning.yaml"
	DefaultDeadLetterPath = "data/events_deadletter.jsonl"
)

// Defaults for env settings
const (
	DefaultPort             = 8080
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultEnvironment      = "dev"
	DefaultServiceName      = "brandish-reveal"
	DefaultVersion          = "dev"
	DefaultWorkerCount      = 4
	DefaultQueueSize        = 32
	DefaultCatalogCacheSize = 64
	DefaultCatalogCacheTTL  = 5 * time.Minute
	DefaultFrameInterval    = 16 * time.Millisecond
	DefaultSessionTTL       = 10 * time.Minute
	DefaultReapInterval     = time.Minute
	DefaultPollInterval     = 800 * time.Millisecond
	DefaultPollTimeout      = 30 * time.Second
	DefaultDBMaxConns       = 10
	DefaultDBMaxIdle        = 5 * time.Minute
	DefaultDBMaxLife        = 30 * time.Minute
	DefaultEventMaxRetries  = 5
	DefaultEventRetryDelay  = 2 * time.Second
	DefaultShutdownTimeout  = 10 * time.Second
)

// Error contexts
const (
	ErrContextInvalidPort   = "invalid PORT value"
	ErrContextInvalidConfig = "invalid configuration"
	ErrContextReadTuning    = "failed to read tuning file"
	ErrContextParseTuning   = "failed to parse tuning file"
)
