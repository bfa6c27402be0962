package tiebreak

import "time"

const (
	RevealDelay = 500 * time.Millisecond
	SettleDelay = 3 * time.Second

	// TrophyIcon marks every team cell of the tiebreak strip
	TrophyIcon = "🏆"
	poolWeight = 100
)

// Log messages
const (
	LogMsgTiebreakStarted = "Tiebreak started"
	LogMsgTiebreakSettled = "Tiebreak settled"
	LogMsgLandFailed      = "Tiebreak reel refused landing"
)
