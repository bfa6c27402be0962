// Package session runs playbacks for spectators. Every session owns a frame
// runner and executes as a job on the playback worker pool; its progress is
// published on the event bus.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/osse101/BrandishReveal_Go/internal/audio"
	"github.com/osse101/BrandishReveal_Go/internal/battle"
	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/event"
	"github.com/osse101/BrandishReveal_Go/internal/frame"
	"github.com/osse101/BrandishReveal_Go/internal/logger"
)

// Info describes a session without touching its playback state
type Info struct {
	ID         string     `json:"id"`
	Kind       Kind       `json:"kind"`
	Status     Status     `json:"status"`
	BattleID   int64      `json:"battle_id,omitempty"`
	SpinIDs    []int64    `json:"spin_ids,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// View is a session together with its latest playback snapshot
type View struct {
	Info
	Snapshot *battle.Snapshot `json:"snapshot,omitempty"`
}

type loader func(ctx context.Context, s *Session) error

// Session is one playback. Exported methods are safe for concurrent use;
// everything else runs on the runner goroutine.
type Session struct {
	id        string
	kind      Kind
	createdAt time.Time

	cfg       Config
	catalog   battle.Catalog
	publisher event.Publisher
	load      loader
	log       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	runner *frame.Runner
	orch   *battle.Orchestrator

	// outcome data, written before the runner starts
	battle *domain.BattleOutcome
	spins  []domain.SpinOutcome

	mu         sync.Mutex
	status     Status
	battleID   int64
	spinIDs    []int64
	finishedAt time.Time
	err        error
	final      *battle.Snapshot
	done       chan struct{}
}

func newSession(id string, kind Kind, cfg Config, catalog battle.Catalog, pub event.Publisher, now time.Time) *Session {
	ctx, cancel := context.WithCancel(logger.WithSessionID(context.Background(), id))
	return &Session{
		id:        id,
		kind:      kind,
		createdAt: now,
		cfg:       cfg,
		catalog:   catalog,
		publisher: pub,
		log:       logger.FromContext(ctx),
		ctx:       ctx,
		cancel:    cancel,
		status:    StatusQueued,
		done:      make(chan struct{}),
	}
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// Done is closed once the session has stopped playing for good
func (s *Session) Done() <-chan struct{} { return s.done }

// Info returns the session's lifecycle state
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := Info{
		ID:        s.id,
		Kind:      s.kind,
		Status:    s.status,
		BattleID:  s.battleID,
		SpinIDs:   append([]int64(nil), s.spinIDs...),
		CreatedAt: s.createdAt,
	}
	if !s.finishedAt.IsZero() {
		at := s.finishedAt
		info.FinishedAt = &at
	}
	if s.err != nil {
		info.Error = s.err.Error()
	}
	return info
}

// View returns the session with a snapshot taken on the runner goroutine.
// Finished sessions return the snapshot captured when they ended.
func (s *Session) View(ctx context.Context) (View, error) {
	info := s.Info()
	switch {
	case info.Status == StatusQueued || info.Status == StatusLoading:
		return View{Info: info}, nil
	case info.Status.Terminal():
		return View{Info: info, Snapshot: s.finalSnapshot()}, nil
	}

	var snap battle.Snapshot
	err := s.runner.Call(ctx, func() { snap = s.orch.Snapshot() })
	if errors.Is(err, frame.ErrRunnerStopped) {
		// the playback ended between reading the status and the call
		select {
		case <-s.done:
			return View{Info: s.Info(), Snapshot: s.finalSnapshot()}, nil
		case <-ctx.Done():
			return View{}, fmt.Errorf("%s: %w", ErrContextSnapshot, ctx.Err())
		}
	}
	if err != nil {
		return View{}, fmt.Errorf("%s: %w", ErrContextSnapshot, err)
	}
	return View{Info: s.Info(), Snapshot: &snap}, nil
}

func (s *Session) finalSnapshot() *battle.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.final
}

func (s *Session) setStatus(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
}

// Stop ends the playback. A session that has not started yet never will.
func (s *Session) Stop() {
	s.cancel()
}

// expired reports whether a terminal session has outlived ttl
func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status.Terminal() && !s.finishedAt.IsZero() && now.Sub(s.finishedAt) >= ttl
}

// Process runs the playback to completion. It implements worker.Job.
func (s *Session) Process(ctx context.Context) error {
	defer close(s.done)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopWatch := context.AfterFunc(s.ctx, cancel)
	defer stopWatch()

	if s.ctx.Err() != nil || ctx.Err() != nil {
		s.end(StatusStopped, nil)
		return nil
	}

	if s.load != nil {
		s.setStatus(StatusLoading)
		if err := s.load(logger.WithSessionID(runCtx, s.id), s); err != nil {
			if runCtx.Err() != nil {
				s.end(StatusStopped, nil)
				return nil
			}
			s.log.Error(LogMsgSessionFailed, "error", err)
			s.end(StatusFailed, err)
			return fmt.Errorf("%s: %w", ErrContextStart, err)
		}
	}

	loop := frame.NewLoop()
	s.runner = frame.NewRunner(loop, s.cfg.FrameInterval)
	s.orch = s.newOrchestrator(loop, cancel)

	if err := s.start(loop); err != nil {
		s.log.Error(LogMsgSessionFailed, "error", err)
		s.end(StatusFailed, err)
		return fmt.Errorf("%s: %w", ErrContextStart, err)
	}

	s.setStatus(StatusPlaying)
	s.log.Info(LogMsgSessionStarted, "kind", s.kind)

	s.runner.Run(runCtx)

	// Run has returned, so nothing else touches the orchestrator
	snap := s.orch.Snapshot()
	_, finished := s.orch.Summary()
	s.orch.Close()

	s.mu.Lock()
	s.final = &snap
	s.mu.Unlock()

	reason := CloseReasonStopped
	if finished {
		reason = CloseReasonFinished
		s.end(StatusFinished, nil)
		s.log.Info(LogMsgSessionFinished)
	} else {
		s.end(StatusStopped, nil)
		s.log.Info(LogMsgSessionStopped)
	}
	s.publish(event.NewClosedEvent(s.id, loop.Now(), reason))
	return nil
}

func (s *Session) end(st Status, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
	s.err = err
	s.finishedAt = s.cfg.Now()
}

func (s *Session) newOrchestrator(loop *frame.Loop, stopRunner context.CancelFunc) *battle.Orchestrator {
	feedback := CueFeedback(s.ctx, s.id, loop, s.publisher)
	if s.cfg.Cues != nil {
		s.cfg.Cues(feedback)
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	//nolint:gosec // G404: cosmetic strip filler and the client-side tiebreak
	rnd := rand.New(rand.NewSource(seed))

	orch := battle.New(loop, s.catalog, feedback, rnd, s.cfg.Battle).WithLogger(s.log)
	listener := NewEventListener(s.ctx, s.id, loop, s.publisher, orch).WithLogger(s.log)
	listener.OnFinished = func(battle.Summary) { stopRunner() }
	orch.WithListener(listener)
	return orch
}

// start announces the session and begins playback. It runs before the runner
// so the first frame already sees the reels moving.
func (s *Session) start(loop *frame.Loop) error {
	started := event.StartedPayloadV1{Kind: string(s.kind)}
	var err error
	switch s.kind {
	case KindBattle:
		b := s.battle
		if b != nil {
			started.BattleID = b.BattleID
			started.Lanes = b.Lanes()
			started.RoundCount = b.RoundCount()
			started.Rule = string(b.EffectiveRule())
			started.Jackpot = b.JackpotEnabled
		}
		s.publish(event.NewStartedEvent(s.id, loop.Now(), started))
		err = s.orch.Play(s.ctx, b)
	default:
		started.Lanes = len(s.spins)
		started.RoundCount = 1
		s.publish(event.NewStartedEvent(s.id, loop.Now(), started))
		err = s.orch.PlaySpins(s.ctx, s.spins)
	}
	if err != nil {
		s.publish(event.NewClosedEvent(s.id, loop.Now(), string(StatusFailed)))
	}
	return err
}

func (s *Session) publish(e event.Event) {
	if err := s.publisher.Publish(s.ctx, e); err != nil {
		s.log.Warn(LogMsgPublishFailed, "type", e.Type, "error", err)
	}
}

var _ audio.Clock = (*frame.Loop)(nil)
