package event

import "time"

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Metadata keys set on every playback event
const (
	MetadataKeySessionID = "session_id"
	MetadataKeyAt        = "at_ms"
)

// Retry configuration constants
const (
	// RetryQueueBufferSize is the buffer size for the retry queue
	RetryQueueBufferSize = 1000

	// RetryInitialDelay is the delay before the first retry
	RetryInitialDelay = 2 * time.Second

	// RetryMaxAttempts is the default maximum number of retry attempts
	RetryMaxAttempts = 5
)

// Dead letter file configuration
const (
	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0644

	// DeadLetterSchemaVersion is the current version of the dead-letter log format
	DeadLetterSchemaVersion = "1.0"
)

// Log message constants
const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// Error context
const (
	ErrContextOpenDeadLetter = "failed to open dead-letter file"
	ErrContextDecodePayload  = "failed to decode event payload"
)

// CalculateRetryDelay calculates the exponential backoff delay for retry attempts.
// Formula: baseDelay * 2^(attempt-1)
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
