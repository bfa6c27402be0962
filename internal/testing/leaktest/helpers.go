package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// GoroutineChecker detects goroutines left behind by frame runners, SSE clients
// and worker pools once a test has torn them down.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test when more than tolerance goroutines are still running.
// It polls for a while first so goroutines that are already exiting can finish.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(checkTimeout)
	after := runtime.NumGoroutine()
	for after-g.before > tolerance && time.Now().Before(deadline) {
		runtime.Gosched()
		time.Sleep(pollInterval)
		after = runtime.NumGoroutine()
	}

	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and verifies it leaves no goroutines behind
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 10 * time.Millisecond
	checkTimeout = 500 * time.Millisecond
)
