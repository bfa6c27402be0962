package frame

import "time"

// DefaultFrameInterval approximates a 60Hz display refresh
const DefaultFrameInterval = 16 * time.Millisecond

// Unit is the nominal frame length that per-frame physics constants are tuned
// against. Elapsed time is divided by Unit to get a frame-rate independent delta.
const Unit = 16670 * time.Microsecond

// CommandBufferSize is the buffer of the runner's command channel
const CommandBufferSize = 64

// Error messages
const (
	ErrMsgRunnerStopped = "frame runner stopped"
)

// Millis converts a duration to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
