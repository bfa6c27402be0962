package audio

import "time"

// Minimum spacing between two cues of the same kind
const (
	MinTickInterval  = 45 * time.Millisecond
	MinWinInterval   = 400 * time.Millisecond
	MinTeaseInterval = 800 * time.Millisecond
)
