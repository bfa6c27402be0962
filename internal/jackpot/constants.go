package jackpot

import "time"

const (
	FullRotations  = 10
	JitterFraction = 0.8 // of the winner's width, centred, so ±40%
	SpinDuration   = 6500 * time.Millisecond
	StartDelay     = 500 * time.Millisecond
)

// Log messages
const (
	LogMsgWheelStarted  = "Jackpot wheel spinning"
	LogMsgWheelComplete = "Jackpot wheel landed"
)

// Error context
const (
	ErrContextPlanWheel = "failed to plan jackpot wheel"
)
