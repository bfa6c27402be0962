package tiebreak

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/osse101/BrandishReveal_Go/internal/audio"
	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/frame"
	"github.com/osse101/BrandishReveal_Go/internal/reel"
	"github.com/osse101/BrandishReveal_Go/internal/strip"
)

// Snapshot is the tiebreak as a spectator sees it
type Snapshot struct {
	Teams   []int         `json:"teams"`
	Winner  *int          `json:"winner,omitempty"`
	Settled bool          `json:"settled"`
	Reel    reel.Snapshot `json:"reel"`
}

// Resolver draws and reveals a tiebreak winner
type Resolver struct {
	sched  frame.Scheduler
	engine *reel.Engine
	rnd    *rand.Rand
	log    *slog.Logger

	teams    []int
	winner   int
	revealed bool
	settled  bool
	timers   []frame.Handle
	onDone   func(team int)
}

// NewResolver creates a resolver with its own tease-free reel
func NewResolver(sched frame.Scheduler, feedback audio.Feedback, rnd *rand.Rand, cfg reel.Config) *Resolver {
	if rnd == nil {
		//nolint:gosec // G404: matches the client-side draw, not security critical
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	r := &Resolver{
		sched: sched,
		rnd:   rnd,
		log:   slog.Default(),
	}
	r.engine = reel.NewEngine(0, sched, strip.NewGenerator(rnd, true), feedback, cfg)
	r.engine.OnStopped(r.stopped)
	return r
}

// WithLogger replaces the resolver's logger
func (r *Resolver) WithLogger(log *slog.Logger) *Resolver {
	r.log = log
	r.engine.WithLogger(log)
	return r
}

// Run draws a winner uniformly among teams and reveals it. onDone runs after
// the settle delay with the winning team.
func (r *Resolver) Run(teams []int, onDone func(team int)) (int, error) {
	winner, err := PickWinner(teams, r.rnd)
	if err != nil {
		return 0, err
	}
	r.Reveal(teams, winner, onDone)
	return winner, nil
}

// Reveal animates a winner chosen by the caller.
func (r *Resolver) Reveal(teams []int, winner int, onDone func(team int)) {
	r.Close()
	r.teams = append([]int(nil), teams...)
	r.winner = winner
	r.revealed = false
	r.settled = false
	r.onDone = onDone

	r.log.Debug(LogMsgTiebreakStarted, "teams", teams, "winner_team", winner)
	r.engine.Reset(Pool(teams))
	r.engine.Start()
	r.after(RevealDelay, func() {
		r.revealed = true
		if err := r.engine.LandOn(Outcome(winner)); err != nil {
			r.log.Warn(LogMsgLandFailed, "error", err)
		}
	})
}

func (r *Resolver) stopped(domain.SpinOutcome) {
	r.after(SettleDelay, func() {
		r.settled = true
		r.log.Debug(LogMsgTiebreakSettled, "winner_team", r.winner)
		if r.onDone != nil {
			r.onDone(r.winner)
		}
	})
}

func (r *Resolver) after(d time.Duration, fn func()) {
	var h frame.Handle
	h = r.sched.AfterFunc(d, func() {
		for i, t := range r.timers {
			if t == h {
				r.timers = append(r.timers[:i], r.timers[i+1:]...)
				break
			}
		}
		fn()
	})
	r.timers = append(r.timers, h)
}

// Close cancels the reel and any pending reveal
func (r *Resolver) Close() {
	for _, h := range r.timers {
		r.sched.CancelTimer(h)
	}
	r.timers = nil
	r.engine.Reset(nil)
}

// Snapshot returns the current tiebreak state
func (r *Resolver) Snapshot() Snapshot {
	s := Snapshot{
		Teams:   append([]int(nil), r.teams...),
		Settled: r.settled,
		Reel:    r.engine.Snapshot(),
	}
	if r.revealed {
		w := r.winner
		s.Winner = &w
	}
	return s
}
