package frame

import (
	"time"
)

// Handle identifies a pending frame callback or timer
type Handle uint64

// Callback is invoked once per frame with the loop time of that frame
type Callback func(now time.Duration)

// Scheduler is the cooperative scheduling surface the playback core runs on.
// Every callback runs on the goroutine that advances the loop, so state owned
// by callbacks needs no locking.
type Scheduler interface {
	Now() time.Duration
	RequestFrame(cb Callback) Handle
	CancelFrame(h Handle)
	AfterFunc(d time.Duration, fn func()) Handle
	CancelTimer(h Handle)
}

type frameRequest struct {
	id Handle
	cb Callback
}

type timer struct {
	id  Handle
	due time.Duration
	fn  func()
}

// Loop is a virtual-clock frame scheduler. It is not safe for concurrent use;
// wrap it in a Runner to drive it from real time.
type Loop struct {
	now    time.Duration
	seq    Handle
	frames []frameRequest
	live   map[Handle]struct{}
	timers map[Handle]*timer
}

// NewLoop creates a loop starting at time zero
func NewLoop() *Loop {
	return &Loop{
		live:   make(map[Handle]struct{}),
		timers: make(map[Handle]*timer),
	}
}

// Now returns the current loop time
func (l *Loop) Now() time.Duration {
	return l.now
}

func (l *Loop) nextHandle() Handle {
	l.seq++
	return l.seq
}

// RequestFrame schedules cb for the next frame.
func (l *Loop) RequestFrame(cb Callback) Handle {
	id := l.nextHandle()
	l.frames = append(l.frames, frameRequest{id: id, cb: cb})
	l.live[id] = struct{}{}
	return id
}

// CancelFrame drops a pending frame callback. Unknown handles are ignored.
func (l *Loop) CancelFrame(h Handle) {
	if _, ok := l.live[h]; !ok {
		return
	}
	delete(l.live, h)
	for i, f := range l.frames {
		if f.id == h {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			break
		}
	}
}

// AfterFunc runs fn once the loop clock has advanced by d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	id := l.nextHandle()
	l.timers[id] = &timer{id: id, due: l.now + d, fn: fn}
	return id
}

// CancelTimer stops a pending timer. Unknown handles are ignored.
func (l *Loop) CancelTimer(h Handle) {
	delete(l.timers, h)
}

// Pending returns the number of queued frames and timers
func (l *Loop) Pending() int {
	return len(l.live) + len(l.timers)
}

// Idle reports whether nothing is scheduled
func (l *Loop) Idle() bool {
	return l.Pending() == 0
}

// Step advances the clock by dt. Timers due within the step fire first, in due
// order, each observing its own due time; then every frame requested before this
// step runs once at the new time. Frames requested from inside a frame callback
// run on the following step.
func (l *Loop) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := l.now + dt

	for {
		t := l.earliestTimer(target)
		if t == nil {
			break
		}
		delete(l.timers, t.id)
		if t.due > l.now {
			l.now = t.due
		}
		t.fn()
	}
	l.now = target

	batch := l.frames
	l.frames = nil
	for _, f := range batch {
		if _, ok := l.live[f.id]; !ok {
			continue
		}
		delete(l.live, f.id)
		f.cb(l.now)
	}
}

func (l *Loop) earliestTimer(limit time.Duration) *timer {
	var best *timer
	for _, t := range l.timers {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

// Drain steps the loop by step until nothing is scheduled or the loop clock
// passes limit. It reports whether the loop went idle.
func Drain(l *Loop, step, limit time.Duration) bool {
	if step <= 0 {
		step = DefaultFrameInterval
	}
	for !l.Idle() {
		if l.now >= limit {
			return false
		}
		l.Step(step)
	}
	return true
}
