// Package reel animates one lane: a strip of items that accelerates, spins and
// decelerates onto an outcome supplied from outside.
package reel

import (
	"log/slog"
	"math"
	"time"

	"github.com/osse101/BrandishReveal_Go/internal/audio"
	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/frame"
	"github.com/osse101/BrandishReveal_Go/internal/strip"
)

// State is the phase of a reel
type State string

const (
	StateIdle         State = "IDLE"
	StateAccelerating State = "ACCELERATING"
	StateSpinning     State = "SPINNING"
	StateStopping     State = "STOPPING"
	StateDone         State = "DONE"
)

// Hooks are optional notifications for lane events that are not part of the
// stop contract
type Hooks struct {
	OnTease   func(lane int)
	OnStalled func(lane int)
}

// Engine is the state machine of one lane. All methods must be called on the
// goroutine that drives its scheduler.
type Engine struct {
	lane     int
	cfg      Config
	sched    frame.Scheduler
	gen      *strip.Generator
	feedback audio.Feedback
	log      *slog.Logger
	hooks    Hooks

	pool       []domain.PoolItem
	activePool []domain.PoolItem
	items      []domain.StripItem

	state         State
	position      float64
	speed         float64
	target        float64
	startPosition float64
	stopStarted   bool
	stopStart     time.Duration
	stopDuration  time.Duration
	lastFrame     time.Duration
	lastTick      int

	frameH    frame.Handle
	watchdogH frame.Handle
	timers    []frame.Handle

	outcome       *domain.SpinOutcome
	teased        bool
	teasing       bool
	onPlaceholder bool
	stopListeners []func(domain.SpinOutcome)
	closed        bool
}

// NewEngine creates an idle reel for a lane with an empty pool
func NewEngine(lane int, sched frame.Scheduler, gen *strip.Generator, feedback audio.Feedback, cfg Config) *Engine {
	if feedback == nil {
		feedback = audio.Nop{}
	}
	if gen == nil {
		gen = strip.NewGenerator(nil, false)
	}
	e := &Engine{
		lane:     lane,
		cfg:      cfg.withDefaults(),
		sched:    sched,
		gen:      gen,
		feedback: feedback,
		log:      slog.Default().With("lane", lane),
	}
	e.Reset(nil)
	return e
}

// WithLogger replaces the engine's logger
func (e *Engine) WithLogger(log *slog.Logger) *Engine {
	e.log = log.With("lane", e.lane)
	return e
}

// WithHooks installs lane notifications
func (e *Engine) WithHooks(h Hooks) *Engine {
	e.hooks = h
	return e
}

// OnStopped registers fn to run each time the reel comes to rest on a real
// outcome. A placeholder landing during a tease does not count.
func (e *Engine) OnStopped(fn func(domain.SpinOutcome)) {
	e.stopListeners = append(e.stopListeners, fn)
}

// Reset cancels everything in flight and rebuilds the strip from pool.
func (e *Engine) Reset(pool []domain.PoolItem) {
	e.cancelAll()
	if len(pool) == 0 {
		e.log.Debug(LogMsgInvalidPool, "error", domain.ErrInvalidPool)
	}
	e.pool = pool
	e.activePool = pool
	e.state = StateIdle
	e.position = 0
	e.speed = 0
	e.target = 0
	e.stopStarted = false
	e.lastTick = 0
	e.outcome = nil
	e.teased = false
	e.teasing = false
	e.onPlaceholder = false
	e.items = e.gen.Generate(e.activePool, strip.InitialLength, false)
}

// Start spins the reel up. It is a no-op while the reel is already moving.
func (e *Engine) Start() {
	if e.closed {
		return
	}
	switch e.state {
	case StateAccelerating, StateSpinning, StateStopping:
		e.log.Debug(LogMsgStartIgnored, "state", e.state)
		return
	}

	e.cancelWatchdog()
	e.cancelFrame()

	if e.state == StateDone || len(e.items) > MaxStripItems {
		e.position = 0
		e.lastTick = 0
		e.items = e.gen.Generate(e.activePool, strip.RestartLength, e.teased)
	}

	e.state = StateAccelerating
	e.speed = 0
	e.stopStarted = false
	e.lastFrame = e.sched.Now()
	e.frameH = e.sched.RequestFrame(e.step)
}

// LandOn begins the stop sequence onto outcome. An idle or finished reel is
// started first and begins stopping shortly after. Repeated calls while the
// reel is stopping are ignored.
func (e *Engine) LandOn(outcome domain.SpinOutcome) error {
	if e.closed {
		return nil
	}
	if e.teasing {
		return domain.ErrTeaseInProgress
	}
	if e.state == StateStopping {
		e.log.Debug(LogMsgLandIgnored)
		return nil
	}

	if e.outcome == nil || *e.outcome != outcome {
		e.teased = false
	}
	o := outcome
	e.outcome = &o

	switch e.state {
	case StateIdle, StateDone:
		e.Start()
		e.after(e.cfg.LandDelay, e.beginStop)
	default:
		e.beginStop()
	}
	return nil
}

// Close cancels all scheduled work. A closed engine ignores further calls.
func (e *Engine) Close() {
	e.cancelAll()
	e.closed = true
}

func (e *Engine) beginStop() {
	if e.closed || e.outcome == nil || e.state == StateStopping {
		return
	}
	e.state = StateStopping
	e.stopStarted = false

	var target domain.StripItem
	if !e.gen.TeaseDisabled() && e.outcome.Tier.IsRare() && !e.teased {
		target = strip.Placeholder()
		e.onPlaceholder = true
	} else {
		target = e.gen.Winner(*e.outcome)
		e.onPlaceholder = false
	}

	decel := e.gen.Generate(e.activePool, strip.DecelLength, e.teased)
	buffer := e.gen.Generate(e.activePool, strip.BufferLength, e.teased)

	winnerIndex := len(e.items) + len(decel)
	e.items = append(e.items, decel...)
	e.items = append(e.items, target)
	e.items = append(e.items, buffer...)

	size := e.cfg.ItemSize
	e.target = float64(winnerIndex)*size + size/2 - e.cfg.Viewport.Size()/2

	if e.frameH == 0 {
		e.lastFrame = e.sched.Now()
		e.frameH = e.sched.RequestFrame(e.step)
	}

	e.cancelWatchdog()
	e.watchdogH = e.sched.AfterFunc(e.cfg.Watchdog, e.stall)
}

func (e *Engine) step(now time.Duration) {
	e.frameH = 0

	dt := math.Min(float64(now-e.lastFrame)/float64(frame.Unit), MaxFrameDelta)
	e.lastFrame = now

	switch e.state {
	case StateAccelerating:
		e.speed += e.cfg.Accel * dt
		if e.speed >= e.cfg.MaxSpeed {
			e.speed = e.cfg.MaxSpeed
			e.state = StateSpinning
		}
		e.ensureTrack()
		e.position += e.speed * dt

	case StateSpinning:
		e.speed = e.cfg.MaxSpeed
		e.ensureTrack()
		e.position += e.speed * dt

	case StateStopping:
		if !e.stopStarted {
			e.stopStarted = true
			e.stopStart = now
			e.startPosition = e.position
			e.stopDuration = e.cfg.StopDuration(e.target-e.startPosition, e.speed)
		}

		progress := math.Min(1, float64(now-e.stopStart)/float64(e.stopDuration))
		pos := e.startPosition + (e.target-e.startPosition)*EaseOutQuint(progress)
		e.speed = pos - e.position
		e.position = pos

		if progress >= 1 {
			e.finish()
			return
		}

	default:
		return
	}

	e.tick()
	e.frameH = e.sched.RequestFrame(e.step)
}

// tick plays one cue per item boundary crossed since the last frame
func (e *Engine) tick() {
	current := int(math.Floor(e.position / e.cfg.ItemSize))
	for ; e.lastTick < current; e.lastTick++ {
		e.feedback.PlayTick()
	}
}

func (e *Engine) ensureTrack() {
	viewEnd := e.position + LookAheadPx
	stripLen := float64(len(e.items)) * e.cfg.ItemSize
	if stripLen-viewEnd < MinTrackAheadPx {
		e.items = append(e.items, e.gen.Generate(e.activePool, strip.ExtendLength, e.teased)...)
	}
}

func (e *Engine) stall() {
	e.watchdogH = 0
	if e.state == StateDone {
		return
	}
	e.log.Warn(LogMsgWatchdogFired, "error", domain.ErrStalledAnimation, "state", e.state, "position", e.position)
	if e.hooks.OnStalled != nil {
		e.hooks.OnStalled(e.lane)
	}
	e.finish()
}

func (e *Engine) finish() {
	e.cancelWatchdog()
	e.cancelFrame()
	e.position = e.target
	e.tick()
	e.speed = 0
	e.state = StateDone

	if e.onPlaceholder {
		e.onPlaceholder = false
		e.teased = true
		e.teasing = true
		if rare := strip.RarePool(e.pool); len(rare) > 0 {
			e.activePool = rare
		}
		e.log.Debug(LogMsgTeaseStarted)
		e.feedback.PlayTease()
		if e.hooks.OnTease != nil {
			e.hooks.OnTease(e.lane)
		}
		e.after(e.cfg.TeasePause, func() {
			e.Start()
			e.after(e.cfg.TeasePause, func() {
				e.teasing = false
				e.beginStop()
			})
		})
		return
	}

	e.feedback.PlayWin()
	if e.outcome == nil {
		return
	}
	e.log.Debug(LogMsgLaneStopped, "item", e.outcome.ItemName, "tier", e.outcome.Tier)
	for _, fn := range e.stopListeners {
		fn(*e.outcome)
	}
}

// after schedules fn and tracks the timer so Reset can cancel it
func (e *Engine) after(d time.Duration, fn func()) {
	var h frame.Handle
	h = e.sched.AfterFunc(d, func() {
		e.forgetTimer(h)
		fn()
	})
	e.timers = append(e.timers, h)
}

func (e *Engine) forgetTimer(h frame.Handle) {
	for i, t := range e.timers {
		if t == h {
			e.timers = append(e.timers[:i], e.timers[i+1:]...)
			return
		}
	}
}

func (e *Engine) cancelFrame() {
	if e.frameH != 0 {
		e.sched.CancelFrame(e.frameH)
		e.frameH = 0
	}
}

func (e *Engine) cancelWatchdog() {
	if e.watchdogH != 0 {
		e.sched.CancelTimer(e.watchdogH)
		e.watchdogH = 0
	}
}

func (e *Engine) cancelAll() {
	e.cancelFrame()
	e.cancelWatchdog()
	for _, h := range e.timers {
		e.sched.CancelTimer(h)
	}
	e.timers = nil
}
