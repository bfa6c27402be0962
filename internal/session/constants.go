package session

import "time"

// Kind is the type of playback a session runs
type Kind string

const (
	KindBattle Kind = "battle"
	KindSolo   Kind = "solo"
)

// Status is where a session is in its lifecycle
type Status string

const (
	StatusQueued   Status = "queued"
	StatusLoading  Status = "loading"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
	StatusStopped  Status = "stopped"
	StatusFailed   Status = "failed"
)

// Terminal reports whether the session will never play again
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusStopped || s == StatusFailed
}

// Reasons carried by the session_closed event
const (
	CloseReasonFinished = "finished"
	CloseReasonStopped  = "stopped"
)

// Defaults
const (
	DefaultTTL = 10 * time.Minute
)

// Log messages
const (
	LogMsgSessionQueued   = "Playback session queued"
	LogMsgSessionStarted  = "Playback session started"
	LogMsgSessionFinished = "Playback session finished"
	LogMsgSessionStopped  = "Playback session stopped"
	LogMsgSessionFailed   = "Playback session failed to load"
	LogMsgSessionsReaped  = "Reaped expired playback sessions"
	LogMsgPublishFailed   = "Failed to publish playback event"
)

// Error context
const (
	ErrContextLoadBattle = "failed to load battle outcome"
	ErrContextLoadSpin   = "failed to load spin outcome"
	ErrContextStart      = "failed to start playback session"
	ErrContextSnapshot   = "failed to read playback snapshot"
)
