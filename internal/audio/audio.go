package audio

import "time"

// Cue names a sound the front end plays
type Cue string

const (
	CueTick  Cue = "tick"
	CueWin   Cue = "win"
	CueTease Cue = "tease"
)

// Feedback receives fire-and-forget sound cues from the playback engine.
// One instance is injected per playback session.
type Feedback interface {
	PlayTick()
	PlayWin()
	PlayTease()
}

// Nop discards every cue
type Nop struct{}

func (Nop) PlayTick()  {}
func (Nop) PlayWin()   {}
func (Nop) PlayTease() {}

// Func adapts a single cue handler to Feedback
type Func func(Cue)

func (f Func) PlayTick()  { f(CueTick) }
func (f Func) PlayWin()   { f(CueWin) }
func (f Func) PlayTease() { f(CueTease) }

// Clock supplies the time debouncing is measured against
type Clock interface {
	Now() time.Duration
}

// Debounced forwards cues to next, dropping any cue that repeats within its
// minimum interval. Many lanes ticking in the same frame collapse into one cue.
// Not safe for concurrent use; it lives on the session's loop goroutine.
type Debounced struct {
	next      Feedback
	clock     Clock
	intervals map[Cue]time.Duration
	last      map[Cue]time.Duration
}

// NewDebounced wraps next with the default cue intervals
func NewDebounced(next Feedback, clock Clock) *Debounced {
	return &Debounced{
		next:  next,
		clock: clock,
		intervals: map[Cue]time.Duration{
			CueTick:  MinTickInterval,
			CueWin:   MinWinInterval,
			CueTease: MinTeaseInterval,
		},
		last: make(map[Cue]time.Duration),
	}
}

// WithInterval overrides the minimum interval of one cue
func (d *Debounced) WithInterval(cue Cue, interval time.Duration) *Debounced {
	d.intervals[cue] = interval
	return d
}

func (d *Debounced) allow(cue Cue) bool {
	now := d.clock.Now()
	if last, ok := d.last[cue]; ok && now-last < d.intervals[cue] {
		return false
	}
	d.last[cue] = now
	return true
}

func (d *Debounced) PlayTick() {
	if d.allow(CueTick) {
		d.next.PlayTick()
	}
}

func (d *Debounced) PlayWin() {
	if d.allow(CueWin) {
		d.next.PlayWin()
	}
}

func (d *Debounced) PlayTease() {
	if d.allow(CueTease) {
		d.next.PlayTease()
	}
}
