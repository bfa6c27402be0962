package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "reveal_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionLimit is the number of log files that triggers cleanup
	LogFileRetentionLimit = 10

	// LogFileRetentionCount is the number of log files to retain after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting reveal service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"

	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgStreamSubscriberRegistered = "Stream subscriber registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Sources
// =============================================================================

const (
	LogMsgUsingDatabaseSources = "Using database catalog and outcomes"
	LogMsgUsingFileSources     = "Using file catalog and outcomes"

	ErrMsgFailedConnectDatabase = "failed to connect to database"
	ErrMsgFailedMigrateDatabase = "failed to migrate database"
	ErrMsgFailedLoadCatalog     = "failed to load catalog file"
	ErrMsgInvalidCatalog        = "invalid catalog file"
)

// =============================================================================
// Catalog Sync Messages
// =============================================================================

const (
	LogMsgSyncingCatalog   = "Syncing catalog from JSON file..."
	LogMsgCatalogSynced    = "Catalog synced successfully"
	LogMsgCatalogUnchanged = "Catalog file is empty, sync skipped"

	ErrMsgFailedLoadCatalogSync = "failed to load catalog for sync"
	ErrMsgFailedSyncCatalog     = "failed to sync catalog to database"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownSessions       = "Stopping playback sessions..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
