package outcome

import "time"

// Poller defaults
const (
	DefaultPollInterval = 800 * time.Millisecond
	DefaultPollTimeout  = 30 * time.Second
)

// File provider naming
const (
	battleFilePattern = "battle-%d.json"
	spinFilePattern   = "spin-%d.json"
)

// Error contexts
const (
	ErrContextReadOutcome   = "failed to read outcome"
	ErrContextParseOutcome  = "failed to parse outcome"
	ErrContextQueryHistory  = "failed to query battle history"
	ErrContextQuerySpin     = "failed to query spin"
	ErrContextPollCancelled = "stopped waiting for outcome"
)

// Log messages
const (
	LogMsgOutcomePending = "Outcome not available yet, polling"
	LogMsgOutcomeReady   = "Outcome available"
)
