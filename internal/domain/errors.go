package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Playback data errors
	ErrMsgMissingData      = "round or outcome data is missing"
	ErrMsgStalledAnimation = "animation stalled"
	ErrMsgInvalidPool      = "item pool is empty"

	// Lane errors
	ErrMsgTeaseInProgress = "lane is mid-tease"

	// Resolver errors
	ErrMsgWinnerNotInWheel = "winning team has no wheel segment"
	ErrMsgNoTeams          = "no teams to resolve"

	// Lookup errors
	ErrMsgBattleNotFound  = "battle not found"
	ErrMsgSpinNotFound    = "spin not found"
	ErrMsgBoxNotFound     = "box not found"
	ErrMsgSessionNotFound = "playback session not found"

	// Capacity errors
	ErrMsgQueueFull = "playback queue is full"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// MissingData: a round or outcome is absent or malformed. Playback skips to FINISHED.
	ErrMissingData = errors.New(ErrMsgMissingData)
	// StalledAnimation: the reel watchdog fired. The lane is forced to DONE.
	ErrStalledAnimation = errors.New(ErrMsgStalledAnimation)
	// InvalidPool: empty item pool. The strip falls back to a single Mystery item.
	ErrInvalidPool = errors.New(ErrMsgInvalidPool)

	ErrTeaseInProgress = errors.New(ErrMsgTeaseInProgress)

	ErrWinnerNotInWheel = errors.New(ErrMsgWinnerNotInWheel)
	ErrNoTeams          = errors.New(ErrMsgNoTeams)

	ErrBattleNotFound  = errors.New(ErrMsgBattleNotFound)
	ErrSpinNotFound    = errors.New(ErrMsgSpinNotFound)
	ErrBoxNotFound     = errors.New(ErrMsgBoxNotFound)
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)

	ErrQueueFull = errors.New(ErrMsgQueueFull)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
