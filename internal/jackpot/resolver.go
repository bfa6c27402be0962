package jackpot

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/osse101/BrandishReveal_Go/internal/audio"
	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/frame"
)

// Snapshot is the wheel as a spectator draws it
type Snapshot struct {
	Segments     []domain.JackpotSegment `json:"segments"`
	Rotation     float64                 `json:"rotation"`
	PointerAngle float64                 `json:"pointer_angle"`
	Current      int                     `json:"current_segment"`
	Spinning     bool                    `json:"spinning"`
	Done         bool                    `json:"done"`
	WinnerTeamID int                     `json:"winner_team_id"`
}

// Resolver spins the jackpot wheel on a frame scheduler
type Resolver struct {
	sched    frame.Scheduler
	feedback audio.Feedback
	rnd      *rand.Rand
	log      *slog.Logger

	segments []domain.JackpotSegment
	winner   int
	final    float64
	rotation float64
	start    time.Duration
	started  bool
	spinning bool
	done     bool
	lastSeg  int

	frameH frame.Handle
	delayH frame.Handle
	onDone func(teamID int)
}

// NewResolver creates an idle wheel
func NewResolver(sched frame.Scheduler, feedback audio.Feedback, rnd *rand.Rand) *Resolver {
	if feedback == nil {
		feedback = audio.Nop{}
	}
	if rnd == nil {
		//nolint:gosec // G404: wheel jitter is cosmetic
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Resolver{
		sched:    sched,
		feedback: feedback,
		rnd:      rnd,
		log:      slog.Default(),
	}
}

// WithLogger replaces the resolver's logger
func (r *Resolver) WithLogger(log *slog.Logger) *Resolver {
	r.log = log
	return r
}

// Spin plans the landing on winnerTeamID and starts the wheel after a short
// delay. onDone runs once when the wheel has landed.
func (r *Resolver) Spin(segments []domain.JackpotSegment, winnerTeamID int, onDone func(teamID int)) error {
	final, err := Plan(segments, winnerTeamID, r.rnd)
	if err != nil {
		return err
	}
	r.Close()

	r.segments = segments
	r.winner = winnerTeamID
	r.final = final
	r.rotation = 0
	r.started = false
	r.spinning = true
	r.done = false
	r.onDone = onDone
	r.lastSeg = SegmentAt(segments, 0)

	r.delayH = r.sched.AfterFunc(StartDelay, func() {
		r.delayH = 0
		r.log.Debug(LogMsgWheelStarted, "winner_team", winnerTeamID, "final_rotation", final)
		r.frameH = r.sched.RequestFrame(r.step)
	})
	return nil
}

func (r *Resolver) step(now time.Duration) {
	r.frameH = 0
	if !r.started {
		r.started = true
		r.start = now
	}

	progress := math.Min(float64(now-r.start)/float64(SpinDuration), 1)
	r.rotation = r.final * EaseOutQuart(progress)

	if progress < 1 {
		if seg := SegmentAt(r.segments, r.rotation); seg != r.lastSeg {
			r.lastSeg = seg
			r.feedback.PlayTick()
		}
		r.frameH = r.sched.RequestFrame(r.step)
		return
	}

	r.rotation = r.final
	r.lastSeg = SegmentAt(r.segments, r.rotation)
	r.spinning = false
	r.done = true
	r.log.Debug(LogMsgWheelComplete, "winner_team", r.winner, "pointer_angle", PointerAngle(r.rotation))
	r.feedback.PlayWin()
	if r.onDone != nil {
		r.onDone(r.winner)
	}
}

// Close cancels a spin in progress
func (r *Resolver) Close() {
	if r.frameH != 0 {
		r.sched.CancelFrame(r.frameH)
		r.frameH = 0
	}
	if r.delayH != 0 {
		r.sched.CancelTimer(r.delayH)
		r.delayH = 0
	}
	r.spinning = false
}

// Snapshot returns a copy of the wheel state
func (r *Resolver) Snapshot() Snapshot {
	segs := make([]domain.JackpotSegment, len(r.segments))
	copy(segs, r.segments)
	return Snapshot{
		Segments:     segs,
		Rotation:     r.rotation,
		PointerAngle: PointerAngle(r.rotation),
		Current:      r.lastSeg,
		Spinning:     r.spinning,
		Done:         r.done,
		WinnerTeamID: r.winner,
	}
}
