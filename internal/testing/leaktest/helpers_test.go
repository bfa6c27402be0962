package leaktest

import (
	"testing"
	"time"
)

func TestCheckNoGoroutineLeak_Clean(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			time.Sleep(5 * time.Millisecond)
		}()
		<-done
	})
}

func TestGoroutineChecker_WaitsForExitingGoroutines(t *testing.T) {
	checker := NewGoroutineChecker(t)

	stop := make(chan struct{})
	go func() {
		<-stop
	}()
	close(stop)

	checker.Check(0)
}

func TestGoroutineChecker_ReportsLeak(t *testing.T) {
	stop := make(chan struct{})
	defer close(stop)

	fake := &recordingTB{TB: t}
	checker := NewGoroutineChecker(fake)
	go func() {
		<-stop
	}()
	checker.Check(0)

	if !fake.failed {
		t.Error("expected the checker to report the blocked goroutine")
	}
}

// recordingTB captures Errorf instead of failing the real test
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(string, ...any) {
	r.failed = true
}
