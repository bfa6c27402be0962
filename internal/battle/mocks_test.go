package battle

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/frame"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Pool(ctx context.Context, boxName string) ([]domain.PoolItem, error) {
	args := m.Called(ctx, boxName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PoolItem), args.Error(1)
}

type stopRecord struct {
	round   int
	deltas  []int64
	stopped int // lane stops seen when the barrier released
	at      time.Duration
}

type advanceRecord struct {
	round int
	at    time.Duration
}

// recordingListener captures every callback with the loop time it ran at
type recordingListener struct {
	loop      *frame.Loop
	laneStops map[int]int // per round
	stops     []stopRecord
	advances  []advanceRecord
	finished  []Summary
	phases    []Phase
	teases    []int
	stalls    []int
}

func newRecordingListener(loop *frame.Loop) *recordingListener {
	return &recordingListener{loop: loop, laneStops: map[int]int{}}
}

func (r *recordingListener) OnRoundAdvance(roundIndex int) {
	r.advances = append(r.advances, advanceRecord{round: roundIndex, at: r.loop.Now()})
}

func (r *recordingListener) OnAllLanesStopped(roundIndex int, deltas []int64) {
	r.stops = append(r.stops, stopRecord{
		round:   roundIndex,
		deltas:  append([]int64(nil), deltas...),
		stopped: r.laneStops[roundIndex],
		at:      r.loop.Now(),
	})
}

func (r *recordingListener) OnBattleFinished(summary Summary) {
	r.finished = append(r.finished, summary)
}

func (r *recordingListener) OnLaneStopped(roundIndex, _ int, _ domain.SpinOutcome) {
	r.laneStops[roundIndex]++
}

func (r *recordingListener) OnLaneTease(lane int)   { r.teases = append(r.teases, lane) }
func (r *recordingListener) OnLaneStalled(lane int) { r.stalls = append(r.stalls, lane) }

func (r *recordingListener) OnPhaseChange(p Phase) { r.phases = append(r.phases, p) }
