// Package battle sequences the playback of a battle outcome: rounds of reels,
// a barrier per round, running scores, and the jackpot or tiebreak finale.
package battle

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/osse101/BrandishReveal_Go/internal/audio"
	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/frame"
	"github.com/osse101/BrandishReveal_Go/internal/jackpot"
	"github.com/osse101/BrandishReveal_Go/internal/odds"
	"github.com/osse101/BrandishReveal_Go/internal/reel"
	"github.com/osse101/BrandishReveal_Go/internal/strip"
	"github.com/osse101/BrandishReveal_Go/internal/tiebreak"
)

// Catalog supplies the decorative pool of a box
type Catalog interface {
	Pool(ctx context.Context, boxName string) ([]domain.PoolItem, error)
}

// Config holds orchestrator timing and the reel preset used for every lane
type Config struct {
	RevealDelay      time.Duration
	SettleDelay      time.Duration
	FinalSettleDelay time.Duration
	Reel             reel.Config
}

// DefaultConfig returns the standard timings with horizontal reels
func DefaultConfig() Config {
	return Config{
		RevealDelay:      DefaultRevealDelay,
		SettleDelay:      DefaultSettleDelay,
		FinalSettleDelay: DefaultFinalSettleDelay,
		Reel:             reel.DefaultConfig(reel.DensityHorizontal),
	}
}

func (c Config) withDefaults() Config {
	if c.RevealDelay <= 0 {
		c.RevealDelay = DefaultRevealDelay
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	if c.FinalSettleDelay <= 0 {
		c.FinalSettleDelay = DefaultFinalSettleDelay
	}
	return c
}

// Orchestrator plays one outcome at a time. All methods must run on the
// goroutine driving the scheduler.
type Orchestrator struct {
	cfg      Config
	sched    frame.Scheduler
	catalog  Catalog
	feedback audio.Feedback
	rnd      *rand.Rand
	listener Listener
	log      *slog.Logger

	// ctx scopes catalog lookups made from scheduled callbacks
	ctx context.Context

	lanes    []*reel.Engine
	jackpot  *jackpot.Resolver
	tiebreak *tiebreak.Resolver

	outcome    *domain.BattleOutcome
	spins      []domain.SpinOutcome
	phase      Phase
	roundIndex int
	roundCount int
	boxName    string
	pot        int64
	scores     []int64
	lastRolls  []domain.Roll
	occupied   map[int]domain.Roll
	barrier    *Barrier
	finalDone  bool
	summary    *Summary
	timers     []frame.Handle
}

// New creates an idle orchestrator
func New(sched frame.Scheduler, catalog Catalog, feedback audio.Feedback, rnd *rand.Rand, cfg Config) *Orchestrator {
	if feedback == nil {
		feedback = audio.Nop{}
	}
	if rnd == nil {
		//nolint:gosec // G404: cosmetic draws and the client-side tiebreak
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	o := &Orchestrator{
		cfg:      cfg.withDefaults(),
		sched:    sched,
		catalog:  catalog,
		feedback: feedback,
		rnd:      rnd,
		listener: NopListener{},
		log:      slog.Default(),
		ctx:      context.Background(),
		phase:    PhaseIdle,
	}
	o.jackpot = jackpot.NewResolver(sched, feedback, rnd)
	o.tiebreak = tiebreak.NewResolver(sched, feedback, rnd, o.cfg.Reel)
	return o
}

// WithListener installs the progress listener
func (o *Orchestrator) WithListener(l Listener) *Orchestrator {
	if l == nil {
		l = NopListener{}
	}
	o.listener = l
	return o
}

// WithLogger replaces the orchestrator's logger
func (o *Orchestrator) WithLogger(log *slog.Logger) *Orchestrator {
	o.log = log
	o.jackpot.WithLogger(log)
	o.tiebreak.WithLogger(log)
	return o
}

// Play starts playback of a battle outcome. Malformed outcomes still reach
// FINISHED; only a nil outcome or one without players is rejected.
func (o *Orchestrator) Play(ctx context.Context, outcome *domain.BattleOutcome) error {
	if outcome == nil || outcome.Lanes() == 0 {
		return fmt.Errorf("%s: %w", ErrContextPlay, domain.ErrMissingData)
	}
	o.Close()
	o.begin(ctx, outcome.Lanes())
	o.outcome = outcome
	o.roundCount = outcome.RoundCount()

	o.log.Info(LogMsgPlaybackStarted,
		"battle_id", outcome.BattleID,
		"lanes", outcome.Lanes(),
		"rounds", o.roundCount,
		"rule", outcome.EffectiveRule(),
		"jackpot", outcome.JackpotEnabled)

	o.startRound()
	return nil
}

// PlaySpins plays single-player spins side by side, one lane each, as a
// single round.
func (o *Orchestrator) PlaySpins(ctx context.Context, spins []domain.SpinOutcome) error {
	if len(spins) == 0 {
		return fmt.Errorf("%s: %w", ErrContextPlay, domain.ErrMissingData)
	}
	o.Close()
	o.begin(ctx, len(spins))
	o.spins = append([]domain.SpinOutcome(nil), spins...)
	o.roundCount = 1

	o.log.Info(LogMsgSoloStarted, "spins", len(spins), "box", spins[0].BoxName)
	o.startSolo()
	return nil
}

func (o *Orchestrator) begin(ctx context.Context, lanes int) {
	o.ctx = ctx
	o.outcome = nil
	o.spins = nil
	o.roundIndex = 0
	o.pot = 0
	o.scores = make([]int64, lanes)
	o.lastRolls = nil
	o.finalDone = false
	o.summary = nil
	o.barrier = nil

	for _, l := range o.lanes {
		l.Close()
	}
	o.lanes = make([]*reel.Engine, lanes)
	for i := range o.lanes {
		lane := i
		e := reel.NewEngine(lane, o.sched, strip.NewGenerator(o.rnd, false), o.feedback, o.cfg.Reel).
			WithLogger(o.log).
			WithHooks(reel.Hooks{OnTease: o.laneTease, OnStalled: o.laneStalled})
		e.OnStopped(func(out domain.SpinOutcome) { o.laneStopped(lane, out) })
		o.lanes[i] = e
	}
}

func (o *Orchestrator) setPhase(p Phase) {
	if o.phase == p {
		return
	}
	o.phase = p
	if pl, ok := o.listener.(PhaseListener); ok {
		pl.OnPhaseChange(p)
	}
}

func (o *Orchestrator) fetchPool(boxName string) []domain.PoolItem {
	if o.catalog == nil || boxName == "" {
		return nil
	}
	pool, err := o.catalog.Pool(o.ctx, boxName)
	if err != nil {
		o.log.Warn(LogMsgPoolFetchFailed, "box", boxName, "error", err)
		return nil
	}
	return pool
}

func iconFor(pool []domain.PoolItem, name string) string {
	for _, it := range pool {
		if it.Name == name {
			return it.Image
		}
	}
	return ""
}

func (o *Orchestrator) startRound() {
	if o.roundIndex >= o.roundCount {
		o.resolve()
		return
	}

	round, ok := o.outcome.Round(o.roundIndex)
	if !ok {
		o.log.Warn(LogMsgRoundMissing, "round", o.roundIndex, "error", domain.ErrMissingData)
		o.finish(ResolutionIncomplete, o.outcome.WinnerTeamID)
		return
	}

	o.occupied = make(map[int]domain.Roll, len(round.Rolls))
	for _, roll := range round.Rolls {
		if roll.PlayerIndex < 0 || roll.PlayerIndex >= len(o.lanes) {
			o.log.Warn(LogMsgRollOutOfRange, "round", o.roundIndex, "player_index", roll.PlayerIndex)
			continue
		}
		o.occupied[roll.PlayerIndex] = roll
	}
	if len(o.occupied) == 0 {
		o.log.Warn(LogMsgRoundMissing, "round", o.roundIndex, "error", domain.ErrMissingData)
		o.finish(ResolutionIncomplete, o.outcome.WinnerTeamID)
		return
	}

	o.boxName = round.BoxName
	pool := o.fetchPool(round.BoxName)
	o.barrier = NewBarrier(len(o.occupied), o.roundStopped)
	o.setPhase(PhaseRound)
	o.log.Debug(LogMsgRoundStarted, "round", o.roundIndex, "box", round.BoxName, "lanes", len(o.occupied))

	for i, lane := range o.lanes {
		lane.Reset(pool)
		if _, ok := o.occupied[i]; ok {
			lane.Start()
		}
	}

	rolls := o.occupied
	box := round.BoxName
	o.after(o.cfg.RevealDelay, func() {
		for i, lane := range o.lanes {
			roll, ok := rolls[i]
			if !ok {
				continue
			}
			if err := lane.LandOn(domain.RollOutcome(roll, box, iconFor(pool, roll.ItemName))); err != nil {
				o.log.Warn(LogMsgLandFailed, "lane", i, "error", err)
			}
		}
	})
}

func (o *Orchestrator) startSolo() {
	first := o.spins[0]
	o.boxName = first.BoxName
	pool := o.fetchPool(first.BoxName)
	if first.IsGolden {
		pool = strip.GoldenPool(pool)
	}

	o.barrier = NewBarrier(len(o.spins), o.soloStopped)
	o.setPhase(PhaseRound)
	for _, lane := range o.lanes {
		lane.Reset(pool)
		lane.Start()
	}

	spins := o.spins
	o.after(o.cfg.RevealDelay, func() {
		for i, spin := range spins {
			if spin.ItemIcon == "" {
				spin.ItemIcon = iconFor(pool, spin.ItemName)
			}
			if err := o.lanes[i].LandOn(spin); err != nil {
				o.log.Warn(LogMsgLandFailed, "lane", i, "error", err)
			}
		}
	})
}

func (o *Orchestrator) laneStopped(lane int, out domain.SpinOutcome) {
	if o.barrier == nil || o.phase != PhaseRound {
		return
	}
	if ll, ok := o.listener.(LaneListener); ok {
		ll.OnLaneStopped(o.roundIndex, lane, out)
	}
	o.barrier.Arrive(lane)
}

func (o *Orchestrator) laneTease(lane int) {
	if ll, ok := o.listener.(LaneListener); ok {
		ll.OnLaneTease(lane)
	}
}

func (o *Orchestrator) laneStalled(lane int) {
	if ll, ok := o.listener.(LaneListener); ok {
		ll.OnLaneStalled(lane)
	}
}

// roundStopped scores the round once every occupied lane has stopped
func (o *Orchestrator) roundStopped() {
	whale := o.outcome.EffectiveRule() == domain.RuleWhale
	deltas := make([]int64, len(o.lanes))
	var roundTotal int64
	rolls := make([]domain.Roll, 0, len(o.occupied))

	for i := range o.lanes {
		roll, ok := o.occupied[i]
		if !ok {
			continue
		}
		rolls = append(rolls, roll)
		deltas[i] = roll.ItemValue
		roundTotal += roll.ItemValue
		if whale {
			if roll.ItemValue > o.scores[i] {
				o.scores[i] = roll.ItemValue
			}
		} else {
			o.scores[i] += roll.ItemValue
		}
	}
	o.pot += roundTotal
	o.lastRolls = rolls

	final := o.roundIndex == o.roundCount-1
	o.finalDone = final

	o.log.Debug(LogMsgRoundScored, "round", o.roundIndex, "round_total", roundTotal, "pot", o.pot)
	o.listener.OnAllLanesStopped(o.roundIndex, deltas)

	settle := o.cfg.SettleDelay
	if final {
		settle = o.cfg.FinalSettleDelay
	}
	o.setPhase(PhaseSettling)
	o.after(settle, o.advance)
}

func (o *Orchestrator) advance() {
	o.roundIndex++
	o.listener.OnRoundAdvance(o.roundIndex)
	o.startRound()
}

func (o *Orchestrator) soloStopped() {
	deltas := make([]int64, len(o.spins))
	for i, spin := range o.spins {
		deltas[i] = spin.Payout
		o.scores[i] = spin.Payout
		o.pot += spin.Payout
	}
	o.finalDone = true
	o.listener.OnAllLanesStopped(0, deltas)
	o.setPhase(PhaseSettling)
	o.after(o.cfg.SettleDelay, func() {
		o.roundIndex = 1
		o.listener.OnRoundAdvance(o.roundIndex)
		o.finish(ResolutionSolo, -1)
	})
}

func (o *Orchestrator) oddsInput() odds.Input {
	in := odds.Input{
		Scores:            o.scores,
		LastRoundRolls:    o.lastRolls,
		FinalRoundStopped: o.finalDone,
	}
	if o.outcome != nil {
		in.Rule = o.outcome.EffectiveRule()
		in.PlayerTeams = o.outcome.PlayerTeams
	}
	return in
}

// resolve hands off to the jackpot wheel, the tiebreak, or finishes
func (o *Orchestrator) resolve() {
	out := o.outcome
	switch {
	case out.JackpotEnabled:
		winner := out.WinnerTeamID
		if out.IsDraw {
			if w, err := tiebreak.PickWinner(tiebreak.TiedTeams(out, o.scores, o.lastRolls), o.rnd); err == nil {
				winner = w
			}
		}
		segments := jackpot.BuildSegments(odds.TeamWeights(o.oddsInput()))
		o.setPhase(PhaseJackpot)
		if err := o.jackpot.Spin(segments, winner, func(team int) {
			o.finish(ResolutionJackpot, team)
		}); err != nil {
			o.log.Warn(LogMsgJackpotFallback, "winner_team", winner, "error", err)
			o.finish(ResolutionScore, out.WinnerTeamID)
		}

	case out.IsDraw:
		teams := tiebreak.TiedTeams(out, o.scores, o.lastRolls)
		o.setPhase(PhaseTiebreak)
		if _, err := o.tiebreak.Run(teams, func(team int) {
			o.finish(ResolutionTiebreak, team)
		}); err != nil {
			o.log.Warn(LogMsgTiebreakFallback, "error", err)
			o.finish(ResolutionIncomplete, out.WinnerTeamID)
		}

	default:
		o.finish(ResolutionScore, out.WinnerTeamID)
	}
}

func (o *Orchestrator) finish(res Resolution, winner int) {
	if o.phase == PhaseFinished {
		return
	}
	o.cancelTimers()
	o.setPhase(PhaseFinished)

	s := Summary{
		Resolution:   res,
		WinnerTeamID: winner,
		Pot:          o.pot,
		TotalPot:     o.pot,
		Scores:       append([]int64(nil), o.scores...),
		RoundsPlayed: o.roundIndex,
	}

	if o.outcome != nil {
		out := o.outcome
		s.BattleID = out.BattleID
		s.WinnerLabel = domain.TeamInfo(winner).Name
		if out.TotalPot > 0 {
			s.TotalPot = out.TotalPot
		}
		s.TeamScores = TeamScores(out.PlayerTeams, o.scores)
		s.Refunded = out.IsDraw && res != ResolutionJackpot && res != ResolutionTiebreak
		s.Payouts = Payouts(out.PlayerTeams, winner, s.TotalPot, s.Refunded)
	} else {
		s.Payouts = append([]int64(nil), o.scores...)
	}

	o.summary = &s
	o.log.Info(LogMsgBattleFinished,
		"battle_id", s.BattleID,
		"resolution", s.Resolution,
		"winner_team", s.WinnerTeamID,
		"pot", s.Pot)
	o.listener.OnBattleFinished(s)
}

func (o *Orchestrator) after(d time.Duration, fn func()) {
	var h frame.Handle
	h = o.sched.AfterFunc(d, func() {
		for i, t := range o.timers {
			if t == h {
				o.timers = append(o.timers[:i], o.timers[i+1:]...)
				break
			}
		}
		fn()
	})
	o.timers = append(o.timers, h)
}

func (o *Orchestrator) cancelTimers() {
	for _, h := range o.timers {
		o.sched.CancelTimer(h)
	}
	o.timers = nil
}

// Close stops everything in flight. The orchestrator can be reused by calling
// Play again.
func (o *Orchestrator) Close() {
	o.cancelTimers()
	for _, l := range o.lanes {
		l.Close()
	}
	o.jackpot.Close()
	o.tiebreak.Close()
	o.barrier = nil
	o.phase = PhaseIdle
}
