package battle

import "github.com/osse101/BrandishReveal_Go/internal/domain"

// Listener receives the orchestrator's progress. Callbacks run on the loop
// goroutine and must not block.
type Listener interface {
	// OnRoundAdvance fires after a round's settle delay with the new index
	OnRoundAdvance(roundIndex int)
	// OnAllLanesStopped fires once per round with each slot's roll value
	OnAllLanesStopped(roundIndex int, deltas []int64)
	// OnBattleFinished fires exactly once per playback
	OnBattleFinished(summary Summary)
}

// LaneListener is implemented by listeners that also want per-lane signals
type LaneListener interface {
	OnLaneStopped(roundIndex, lane int, outcome domain.SpinOutcome)
	OnLaneTease(lane int)
	OnLaneStalled(lane int)
}

// PhaseListener is implemented by listeners that track phase changes
type PhaseListener interface {
	OnPhaseChange(phase Phase)
}

// NopListener ignores everything
type NopListener struct{}

func (NopListener) OnRoundAdvance(int)             {}
func (NopListener) OnAllLanesStopped(int, []int64) {}
func (NopListener) OnBattleFinished(Summary)       {}
