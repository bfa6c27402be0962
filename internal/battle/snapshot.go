package battle

import (
	"github.com/osse101/BrandishReveal_Go/internal/jackpot"
	"github.com/osse101/BrandishReveal_Go/internal/odds"
	"github.com/osse101/BrandishReveal_Go/internal/reel"
	"github.com/osse101/BrandishReveal_Go/internal/tiebreak"
)

// Snapshot is the whole playback as a spectator renders it
type Snapshot struct {
	Phase      Phase              `json:"phase"`
	RoundIndex int                `json:"round_index"`
	RoundCount int                `json:"round_count"`
	BoxName    string             `json:"box_name,omitempty"`
	Pot        int64              `json:"pot"`
	Scores     []int64            `json:"scores"`
	TeamScores []TeamScore        `json:"team_scores,omitempty"`
	Odds       odds.Distribution  `json:"odds,omitempty"`
	LaneOdds   []string           `json:"lane_odds,omitempty"`
	Lanes      []reel.Snapshot    `json:"lanes"`
	Jackpot    *jackpot.Snapshot  `json:"jackpot,omitempty"`
	Tiebreak   *tiebreak.Snapshot `json:"tiebreak,omitempty"`
	Summary    *Summary           `json:"summary,omitempty"`
}

// Phase returns the current phase
func (o *Orchestrator) Phase() Phase { return o.phase }

// RoundIndex returns the index of the round being played
func (o *Orchestrator) RoundIndex() int { return o.roundIndex }

// Pot returns the pot accumulated so far
func (o *Orchestrator) Pot() int64 { return o.pot }

// Scores returns a copy of the running scores per player slot
func (o *Orchestrator) Scores() []int64 {
	return append([]int64(nil), o.scores...)
}

// Summary returns the final summary once the playback has finished
func (o *Orchestrator) Summary() (Summary, bool) {
	if o.summary == nil {
		return Summary{}, false
	}
	return *o.summary, true
}

// Lane returns the engine of a lane
func (o *Orchestrator) Lane(i int) (*reel.Engine, bool) {
	if i < 0 || i >= len(o.lanes) {
		return nil, false
	}
	return o.lanes[i], true
}

// Odds returns the live odds for jackpot battles. It reports false when the
// battle has no jackpot or the rule hides odds for now.
func (o *Orchestrator) Odds() (odds.Distribution, bool) {
	if o.outcome == nil || !o.outcome.JackpotEnabled {
		return nil, false
	}
	return odds.Calculate(o.oddsInput())
}

// Snapshot captures the playback state
func (o *Orchestrator) Snapshot() Snapshot {
	s := Snapshot{
		Phase:      o.phase,
		RoundIndex: o.roundIndex,
		RoundCount: o.roundCount,
		BoxName:    o.boxName,
		Pot:        o.pot,
		Scores:     o.Scores(),
		Lanes:      make([]reel.Snapshot, 0, len(o.lanes)),
	}
	for _, l := range o.lanes {
		s.Lanes = append(s.Lanes, l.Snapshot())
	}
	if o.outcome != nil {
		s.TeamScores = TeamScores(o.outcome.PlayerTeams, o.scores)
	}
	if dist, ok := o.Odds(); ok {
		s.Odds = dist
		if lanes, ok := odds.PlayerOdds(o.oddsInput()); ok {
			for _, pct := range lanes {
				s.LaneOdds = append(s.LaneOdds, odds.Format(pct))
			}
		}
	}
	switch o.phase {
	case PhaseJackpot:
		j := o.jackpot.Snapshot()
		s.Jackpot = &j
	case PhaseTiebreak:
		t := o.tiebreak.Snapshot()
		s.Tiebreak = &t
	case PhaseFinished:
		if o.summary != nil {
			sum := *o.summary
			s.Summary = &sum
		}
		if o.summary != nil && o.summary.Resolution == ResolutionJackpot {
			j := o.jackpot.Snapshot()
			s.Jackpot = &j
		}
		if o.summary != nil && o.summary.Resolution == ResolutionTiebreak {
			t := o.tiebreak.Snapshot()
			s.Tiebreak = &t
		}
	}
	return s
}
