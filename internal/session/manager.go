package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/BrandishReveal_Go/internal/audio"
	"github.com/osse101/BrandishReveal_Go/internal/battle"
	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/event"
	"github.com/osse101/BrandishReveal_Go/internal/logger"
	"github.com/osse101/BrandishReveal_Go/internal/outcome"
	"github.com/osse101/BrandishReveal_Go/internal/worker"
)

// Config tunes every session a manager creates
type Config struct {
	Battle        battle.Config
	FrameInterval time.Duration
	// TTL is how long a finished session stays readable
	TTL time.Duration
	// Seed fixes the cosmetic random source; zero seeds from the clock
	Seed int64
	// Cues adjusts the debounce of each session's sound cues
	Cues func(*audio.Debounced) *audio.Debounced
	Now  func() time.Time
}

func (c Config) withDefaults() Config {
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Manager creates playback sessions and keeps them addressable by id
type Manager struct {
	pool      *worker.Pool
	catalog   battle.Catalog
	outcomes  outcome.Provider
	publisher event.Publisher
	cfg       Config

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager running sessions on pool. outcomes may be nil
// when only inline outcomes are played.
func NewManager(pool *worker.Pool, catalog battle.Catalog, outcomes outcome.Provider, publisher event.Publisher, cfg Config) *Manager {
	return &Manager{
		pool:      pool,
		catalog:   catalog,
		outcomes:  outcomes,
		publisher: publisher,
		cfg:       cfg.withDefaults(),
		sessions:  make(map[string]*Session),
	}
}

// StartBattle queues playback of an inline battle outcome
func (m *Manager) StartBattle(ctx context.Context, b *domain.BattleOutcome) (Info, error) {
	if b == nil || b.Lanes() == 0 {
		return Info{}, fmt.Errorf("%s: %w", ErrContextStart, domain.ErrMissingData)
	}
	s := m.newSession(KindBattle)
	s.battle = b
	s.battleID = b.BattleID
	return m.submit(ctx, s)
}

// StartBattleByID queues playback of a stored battle. The outcome is fetched
// when the session starts, so a live battle may still be settling.
func (m *Manager) StartBattleByID(ctx context.Context, battleID int64) (Info, error) {
	if m.outcomes == nil {
		return Info{}, fmt.Errorf("%s: %w", ErrContextLoadBattle, domain.ErrBattleNotFound)
	}
	s := m.newSession(KindBattle)
	s.battleID = battleID
	s.load = func(ctx context.Context, s *Session) error {
		b, err := m.outcomes.Battle(ctx, battleID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextLoadBattle, err)
		}
		s.battle = b
		return nil
	}
	return m.submit(ctx, s)
}

// StartSpins queues side by side playback of inline spin outcomes
func (m *Manager) StartSpins(ctx context.Context, spins []domain.SpinOutcome) (Info, error) {
	if len(spins) == 0 {
		return Info{}, fmt.Errorf("%s: %w", ErrContextStart, domain.ErrMissingData)
	}
	s := m.newSession(KindSolo)
	s.spins = append([]domain.SpinOutcome(nil), spins...)
	for _, sp := range spins {
		if sp.ID != 0 {
			s.spinIDs = append(s.spinIDs, sp.ID)
		}
	}
	return m.submit(ctx, s)
}

// StartSpinsByID queues playback of stored spins, fetched when the session
// starts
func (m *Manager) StartSpinsByID(ctx context.Context, spinIDs []int64) (Info, error) {
	if len(spinIDs) == 0 {
		return Info{}, fmt.Errorf("%s: %w", ErrContextStart, domain.ErrMissingData)
	}
	if m.outcomes == nil {
		return Info{}, fmt.Errorf("%s: %w", ErrContextLoadSpin, domain.ErrSpinNotFound)
	}
	s := m.newSession(KindSolo)
	s.spinIDs = append([]int64(nil), spinIDs...)
	ids := s.spinIDs
	s.load = func(ctx context.Context, s *Session) error {
		spins := make([]domain.SpinOutcome, 0, len(ids))
		for _, id := range ids {
			sp, err := m.outcomes.Spin(ctx, id)
			if err != nil {
				return fmt.Errorf("%s %d: %w", ErrContextLoadSpin, id, err)
			}
			spins = append(spins, *sp)
		}
		s.spins = spins
		return nil
	}
	return m.submit(ctx, s)
}

func (m *Manager) newSession(kind Kind) *Session {
	return newSession(uuid.New().String(), kind, m.cfg, m.catalog, m.publisher, m.cfg.Now())
}

func (m *Manager) submit(ctx context.Context, s *Session) (Info, error) {
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	if !m.pool.TryEnqueue(s) {
		m.mu.Lock()
		delete(m.sessions, s.id)
		m.mu.Unlock()
		s.cancel()
		return Info{}, fmt.Errorf("%s: %w", ErrContextStart, domain.ErrQueueFull)
	}

	logger.FromContext(ctx).Info(LogMsgSessionQueued, "session_id", s.id, "kind", s.kind)
	return s.Info(), nil
}

// Get returns a session by id
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return s, nil
}

// View returns a session with its current snapshot
func (m *Manager) View(ctx context.Context, id string) (View, error) {
	s, err := m.Get(id)
	if err != nil {
		return View{}, err
	}
	return s.View(ctx)
}

// List returns every known session, newest first
func (m *Manager) List() []Info {
	m.mu.RLock()
	out := make([]Info, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Info())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Stop ends a session and forgets it
func (m *Manager) Stop(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	s.Stop()
	logger.FromContext(ctx).Info(LogMsgSessionStopped, "session_id", id)
	return nil
}

// Reap forgets terminal sessions older than the TTL and returns how many it
// removed
func (m *Manager) Reap(ctx context.Context) int {
	now := m.cfg.Now()
	m.mu.Lock()
	reaped := 0
	for id, s := range m.sessions {
		if s.expired(now, m.cfg.TTL) {
			delete(m.sessions, id)
			reaped++
		}
	}
	m.mu.Unlock()

	if reaped > 0 {
		logger.FromContext(ctx).Info(LogMsgSessionsReaped, "count", reaped)
	}
	return reaped
}

// ReapJob returns a job that reaps expired sessions, for the scheduler
func (m *Manager) ReapJob() worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		m.Reap(ctx)
		return nil
	})
}

// Count returns the number of known sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops every session. The pool is owned by the caller.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		s.Stop()
	}
}
