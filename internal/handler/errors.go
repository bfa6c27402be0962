package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingPathParam  = "Missing %s path parameter"

	// Playback error messages
	ErrMsgBattleIDOrOutcome = "Provide either battle_id or outcome"
	ErrMsgSpinIDsOrOutcomes = "Provide either spin_ids or spins"
	ErrMsgStartPlayback     = "Failed to start playback"
	ErrMsgGetPlayback       = "Failed to read playback"
	ErrMsgStopPlayback      = "Failed to stop playback"

	// Catalog error messages
	ErrMsgListBoxesFailed = "Failed to list boxes"
	ErrMsgGetPoolFailed   = "Failed to load box pool"
)

// Success messages for API responses
const (
	MsgPlaybackStopped = "Playback stopped"
)

// Log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgValidationFailed  = "Request validation failed"
	LogMsgMissingQueryParam = "Missing query parameter"
	LogMsgServiceError      = "Service error"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgPlaybackQueued    = "Playback queued"
)

// Route parameters
const (
	ParamSessionID = "id"
	ParamBoxName   = "name"
)
