package frame

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishReveal_Go/internal/testing/leaktest"
)

func TestLoop_FramesRunOnNextStep(t *testing.T) {
	l := NewLoop()
	var seen []time.Duration

	var tick Callback
	tick = func(now time.Duration) {
		seen = append(seen, now)
		if len(seen) < 3 {
			l.RequestFrame(tick)
		}
	}
	l.RequestFrame(tick)

	l.Step(10 * time.Millisecond)
	require.Len(t, seen, 1, "a frame requested inside a callback must wait for the next step")
	l.Step(10 * time.Millisecond)
	l.Step(10 * time.Millisecond)
	l.Step(10 * time.Millisecond)

	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}, seen)
	assert.True(t, l.Idle())
}

func TestLoop_CancelFrame(t *testing.T) {
	l := NewLoop()
	ran := false
	h := l.RequestFrame(func(time.Duration) { ran = true })
	l.CancelFrame(h)
	l.CancelFrame(h) // second cancel is a no-op

	l.Step(DefaultFrameInterval)
	assert.False(t, ran)
	assert.Equal(t, 0, l.Pending())
}

func TestLoop_CancelSiblingInSameBatch(t *testing.T) {
	l := NewLoop()
	var second Handle
	secondRan := false
	l.RequestFrame(func(time.Duration) { l.CancelFrame(second) })
	second = l.RequestFrame(func(time.Duration) { secondRan = true })

	l.Step(DefaultFrameInterval)
	assert.False(t, secondRan)
}

func TestLoop_TimersFireInDueOrderAtTheirDueTime(t *testing.T) {
	l := NewLoop()
	var order []string
	var at []time.Duration

	l.AfterFunc(30*time.Millisecond, func() { order = append(order, "c"); at = append(at, l.Now()) })
	l.AfterFunc(10*time.Millisecond, func() { order = append(order, "a"); at = append(at, l.Now()) })
	l.AfterFunc(10*time.Millisecond, func() { order = append(order, "b"); at = append(at, l.Now()) })
	cancelled := l.AfterFunc(20*time.Millisecond, func() { order = append(order, "x") })
	l.CancelTimer(cancelled)

	l.Step(50 * time.Millisecond)

	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond, 30 * time.Millisecond}, at)
	assert.Equal(t, 50*time.Millisecond, l.Now())
}

func TestLoop_TimerScheduledFromTimerFiresWithinSameStep(t *testing.T) {
	l := NewLoop()
	fired := 0
	l.AfterFunc(5*time.Millisecond, func() {
		fired++
		l.AfterFunc(5*time.Millisecond, func() { fired++ })
	})

	l.Step(20 * time.Millisecond)
	assert.Equal(t, 2, fired)
}

func TestDrain(t *testing.T) {
	t.Run("goes idle", func(t *testing.T) {
		l := NewLoop()
		l.AfterFunc(time.Second, func() {})
		assert.True(t, Drain(l, DefaultFrameInterval, time.Minute))
	})

	t.Run("stops at limit", func(t *testing.T) {
		l := NewLoop()
		var forever Callback
		forever = func(time.Duration) { l.RequestFrame(forever) }
		l.RequestFrame(forever)
		assert.False(t, Drain(l, DefaultFrameInterval, time.Second))
		assert.GreaterOrEqual(t, l.Now(), time.Second)
	})
}

func TestRunner_CallExecutesOnLoopGoroutine(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(NewLoop(), time.Millisecond)
	go r.Run(ctx)

	fired := make(chan struct{})
	err := r.Call(ctx, func() {
		r.Loop().AfterFunc(5*time.Millisecond, func() { close(fired) })
	})
	require.NoError(t, err)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer scheduled through the runner never fired")
	}

	cancel()
	<-r.Done()

	assert.ErrorIs(t, r.Do(context.Background(), func() {}), ErrRunnerStopped)
	checker.Check(0)
}
