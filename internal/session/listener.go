package session

import (
	"context"
	"log/slog"

	"github.com/osse101/BrandishReveal_Go/internal/audio"
	"github.com/osse101/BrandishReveal_Go/internal/battle"
	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/event"
)

// EventListener turns orchestrator callbacks into bus events stamped with the
// playback clock. It runs on the loop goroutine like the orchestrator itself.
type EventListener struct {
	ctx       context.Context
	sessionID string
	clock     audio.Clock
	pub       event.Publisher
	orch      *battle.Orchestrator
	log       *slog.Logger

	// OnFinished runs after the finished event has been published
	OnFinished func(battle.Summary)
}

// NewEventListener publishes the progress of orch under sessionID
func NewEventListener(ctx context.Context, sessionID string, clock audio.Clock, pub event.Publisher, orch *battle.Orchestrator) *EventListener {
	return &EventListener{
		ctx:       ctx,
		sessionID: sessionID,
		clock:     clock,
		pub:       pub,
		orch:      orch,
		log:       slog.Default(),
	}
}

// WithLogger replaces the listener's logger
func (l *EventListener) WithLogger(log *slog.Logger) *EventListener {
	l.log = log
	return l
}

func (l *EventListener) publish(e event.Event) {
	if err := l.pub.Publish(l.ctx, e); err != nil {
		l.log.Warn(LogMsgPublishFailed, "type", e.Type, "error", err)
	}
}

func (l *EventListener) OnRoundAdvance(roundIndex int) {
	l.publish(event.NewRoundAdvancedEvent(l.sessionID, l.clock.Now(), roundIndex))
}

func (l *EventListener) OnAllLanesStopped(roundIndex int, deltas []int64) {
	l.publish(event.NewLanesStoppedEvent(l.sessionID, l.clock.Now(), event.LanesStoppedPayloadV1{
		RoundIndex: roundIndex,
		Deltas:     append([]int64(nil), deltas...),
		Scores:     l.orch.Scores(),
		Pot:        l.orch.Pot(),
	}))
}

func (l *EventListener) OnBattleFinished(s battle.Summary) {
	l.publish(event.NewFinishedEvent(l.sessionID, l.clock.Now(), FinishedPayload(s)))
	if l.OnFinished != nil {
		l.OnFinished(s)
	}
}

func (l *EventListener) OnLaneStopped(roundIndex, lane int, out domain.SpinOutcome) {
	l.publish(event.NewLaneStoppedEvent(l.sessionID, l.clock.Now(), event.LaneStoppedPayloadV1{
		RoundIndex: roundIndex,
		Lane:       lane,
		ItemName:   out.ItemName,
		Tier:       string(out.Tier),
		Value:      out.Payout,
		Icon:       out.ItemIcon,
	}))
}

func (l *EventListener) OnLaneTease(lane int) {
	l.publish(event.NewLaneTeaseEvent(l.sessionID, l.clock.Now(), lane))
}

func (l *EventListener) OnLaneStalled(lane int) {
	l.publish(event.NewLaneStalledEvent(l.sessionID, l.clock.Now(), lane))
}

func (l *EventListener) OnPhaseChange(p battle.Phase) {
	l.publish(event.NewPhaseChangedEvent(l.sessionID, l.clock.Now(), string(p)))
}

// FinishedPayload flattens a summary into the finished event payload
func FinishedPayload(s battle.Summary) event.FinishedPayloadV1 {
	return event.FinishedPayloadV1{
		BattleID:     s.BattleID,
		Resolution:   string(s.Resolution),
		WinnerTeamID: s.WinnerTeamID,
		WinnerLabel:  s.WinnerLabel,
		Refunded:     s.Refunded,
		Pot:          s.Pot,
		Scores:       s.Scores,
		Payouts:      s.Payouts,
		RoundsPlayed: s.RoundsPlayed,
	}
}

// CueFeedback publishes sound cues as events, debounced against clock
func CueFeedback(ctx context.Context, sessionID string, clock audio.Clock, pub event.Publisher) *audio.Debounced {
	return audio.NewDebounced(audio.Func(func(c audio.Cue) {
		// cue delivery is best effort
		_ = pub.Publish(ctx, event.NewCueEvent(sessionID, clock.Now(), string(c)))
	}), clock)
}
