package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishReveal_Go/internal/battle"
	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/event"
	"github.com/osse101/BrandishReveal_Go/internal/reel"
	"github.com/osse101/BrandishReveal_Go/internal/worker"
)

// MockProvider is a mock implementation of outcome.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Battle(ctx context.Context, id int64) (*domain.BattleOutcome, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BattleOutcome), args.Error(1)
}

func (m *MockProvider) Spin(ctx context.Context, id int64) (*domain.SpinOutcome, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinOutcome), args.Error(1)
}

// recorder keeps every event published on the bus
type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func newRecorder(bus event.Bus) *recorder {
	r := &recorder{}
	event.SubscribeAll(bus, r.handle)
	return r
}

func (r *recorder) handle(_ context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// types lists the event types of one session, cues left out
func (r *recorder) types(sessionID string) []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Type
	for _, e := range r.events {
		if e.SessionID() != sessionID || e.Type == event.PlaybackCue {
			continue
		}
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) last(sessionID string, typ event.Type) (event.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if e := r.events[i]; e.SessionID() == sessionID && e.Type == typ {
			return e, true
		}
	}
	return event.Event{}, false
}

// fakeClock is a settable wall clock for TTL checks
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fastConfig plays a one round battle in well under a second of wall time
func fastConfig(clock *fakeClock) Config {
	return Config{
		Battle: battle.Config{
			RevealDelay:      10 * time.Millisecond,
			SettleDelay:      10 * time.Millisecond,
			FinalSettleDelay: 10 * time.Millisecond,
			Reel: reel.Config{
				MinStop:    30 * time.Millisecond,
				MaxStop:    60 * time.Millisecond,
				TeasePause: 10 * time.Millisecond,
				LandDelay:  5 * time.Millisecond,
				Watchdog:   2 * time.Second,
				Accel:      20,
			},
		},
		FrameInterval: 2 * time.Millisecond,
		TTL:           time.Minute,
		Seed:          21,
		Now:           clock.Now,
	}
}

// slowConfig keeps the reels spinning for seconds so a test can act mid-play
func slowConfig(clock *fakeClock) Config {
	cfg := fastConfig(clock)
	cfg.Battle = battle.DefaultConfig()
	return cfg
}

type fixture struct {
	pool     *worker.Pool
	bus      *event.MemoryBus
	rec      *recorder
	clock    *fakeClock
	provider *MockProvider
	manager  *Manager
}

func newFixture(t *testing.T, cfg func(*fakeClock) Config) *fixture {
	t.Helper()
	f := &fixture{
		pool:     worker.NewPool(2, 8),
		bus:      event.NewMemoryBus(),
		clock:    &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		provider: new(MockProvider),
	}
	f.rec = newRecorder(f.bus)
	f.manager = NewManager(f.pool, nil, f.provider, f.bus, cfg(f.clock))
	f.pool.Start()
	t.Cleanup(func() {
		f.manager.Close()
		f.pool.Stop()
	})
	return f
}

func (f *fixture) waitDone(t *testing.T, id string) *Session {
	t.Helper()
	s, err := f.manager.Get(id)
	require.NoError(t, err)
	f.waitDoneSession(t, s)
	return s
}

func (f *fixture) waitDoneSession(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("session %s never finished", s.ID())
	}
}

func twoLaneBattle() *domain.BattleOutcome {
	return &domain.BattleOutcome{
		BattleID:     7,
		WinnerTeamID: 0,
		TotalPot:     800,
		Rule:         domain.RuleClassic,
		PlayerTeams:  []int{0, 1},
		Rounds: []domain.Round{{Rolls: []domain.Roll{
			{PlayerIndex: 0, ItemName: "Rock", ItemValue: 500, Tier: domain.TierGray},
			{PlayerIndex: 1, ItemName: "Pebble", ItemValue: 300, Tier: domain.TierGreen},
		}}},
	}
}
