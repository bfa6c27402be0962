package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/BrandishReveal_Go/internal/battle"
	"github.com/osse101/BrandishReveal_Go/internal/config"
	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/event"
	"github.com/osse101/BrandishReveal_Go/internal/frame"
	"github.com/osse101/BrandishReveal_Go/internal/outcome"
	"github.com/osse101/BrandishReveal_Go/internal/session"
	"github.com/osse101/BrandishReveal_Go/internal/validation"
)

const replaySessionID = "replay"

var (
	errNothingToReplay = errors.New("one of -battle, -spins or -file is required")
	errReplayStalled   = errors.New("playback did not finish before the time limit")
)

// options selects what to replay and how to print it
type options struct {
	battleID int64
	spinIDs  []int64
	file     string
	seed     int64
	step     time.Duration
	limit    time.Duration
	cues     bool
	jsonOut  bool
}

// replayer plays outcomes on a virtual clock and prints the event timeline
type replayer struct {
	catalog  battle.Catalog
	outcomes outcome.Provider
	tuning   config.Tuning
	out      io.Writer
	printer  *message.Printer
}

func newReplayer(catalog battle.Catalog, outcomes outcome.Provider, tuning config.Tuning, out io.Writer) *replayer {
	return &replayer{
		catalog:  catalog,
		outcomes: outcomes,
		tuning:   tuning,
		out:      out,
		printer:  message.NewPrinter(language.English),
	}
}

// run plays the selected outcome to its end and returns the summary
func (r *replayer) run(ctx context.Context, opts options) (battle.Summary, error) {
	b, spins, err := r.load(ctx, opts)
	if err != nil {
		return battle.Summary{}, err
	}

	loop := frame.NewLoop()
	bus := event.NewMemoryBus()
	event.SubscribeAll(bus, func(_ context.Context, e event.Event) error {
		if e.Type == event.PlaybackCue && !opts.cues {
			return nil
		}
		return r.print(e, opts.jsonOut)
	})

	feedback := r.tuning.ApplyAudio(session.CueFeedback(ctx, replaySessionID, loop, bus))
	//nolint:gosec // G404: cosmetic strip filler only
	rnd := rand.New(rand.NewSource(opts.seed))
	orch := battle.New(loop, r.catalog, feedback, rnd, r.tuning.BattleConfig())
	orch.WithListener(session.NewEventListener(ctx, replaySessionID, loop, bus, orch))
	defer orch.Close()

	started := event.StartedPayloadV1{RoundCount: 1}
	if b != nil {
		started.Kind = string(session.KindBattle)
		started.BattleID = b.BattleID
		started.Lanes = b.Lanes()
		started.RoundCount = b.RoundCount()
		started.Rule = string(b.EffectiveRule())
		started.Jackpot = b.JackpotEnabled
	} else {
		started.Kind = string(session.KindSolo)
		started.Lanes = len(spins)
	}
	_ = bus.Publish(ctx, event.NewStartedEvent(replaySessionID, loop.Now(), started))

	if b != nil {
		err = orch.Play(ctx, b)
	} else {
		err = orch.PlaySpins(ctx, spins)
	}
	if err != nil {
		return battle.Summary{}, err
	}

	if !frame.Drain(loop, opts.step, opts.limit) {
		return battle.Summary{}, fmt.Errorf("%w: %s", errReplayStalled, opts.limit)
	}
	summary, finished := orch.Summary()
	if !finished {
		return battle.Summary{}, errReplayStalled
	}
	_ = bus.Publish(ctx, event.NewClosedEvent(replaySessionID, loop.Now(), session.CloseReasonFinished))
	return summary, nil
}

func (r *replayer) load(ctx context.Context, opts options) (*domain.BattleOutcome, []domain.SpinOutcome, error) {
	switch {
	case opts.file != "":
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return nil, nil, err
		}
		if err := validation.NewSchemaValidator().ValidateBytes(data, validation.SchemaBattle); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", opts.file, err)
		}
		var b domain.BattleOutcome
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", opts.file, err)
		}
		return &b, nil, nil
	case opts.battleID > 0:
		b, err := r.outcomes.Battle(ctx, opts.battleID)
		return b, nil, err
	case len(opts.spinIDs) > 0:
		spins := make([]domain.SpinOutcome, 0, len(opts.spinIDs))
		for _, id := range opts.spinIDs {
			sp, err := r.outcomes.Spin(ctx, id)
			if err != nil {
				return nil, nil, err
			}
			spins = append(spins, *sp)
		}
		return nil, spins, nil
	}
	return nil, nil, errNothingToReplay
}

type jsonLine struct {
	At      float64     `json:"at_ms"`
	Type    event.Type  `json:"type"`
	Payload interface{} `json:"payload"`
}

func (r *replayer) print(e event.Event, jsonOut bool) error {
	if jsonOut {
		return json.NewEncoder(r.out).Encode(jsonLine{At: frame.Millis(e.At()), Type: e.Type, Payload: e.Payload})
	}
	_, err := fmt.Fprintf(r.out, "[%8.3fs] %-24s %s\n", e.At().Seconds(), e.Type, r.describe(e))
	return err
}

func (r *replayer) describe(e event.Event) string {
	switch p := e.Payload.(type) {
	case event.StartedPayloadV1:
		return fmt.Sprintf("%s lanes=%d rounds=%d rule=%s", p.Kind, p.Lanes, p.RoundCount, p.Rule)
	case event.PhaseChangedPayloadV1:
		return p.Phase
	case event.RoundAdvancedPayloadV1:
		return fmt.Sprintf("round=%d", p.RoundIndex+1)
	case event.LaneStoppedPayloadV1:
		return r.printer.Sprintf("lane=%d %s (%s) %d", p.Lane, p.ItemName, p.Tier, p.Value)
	case event.LanesStoppedPayloadV1:
		return r.printer.Sprintf("round=%d scores=%v pot=%d", p.RoundIndex+1, p.Scores, p.Pot)
	case event.LanePayloadV1:
		return fmt.Sprintf("lane=%d", p.Lane)
	case event.CuePayloadV1:
		return p.Cue
	case event.FinishedPayloadV1:
		return r.printer.Sprintf("%s winner=%s pot=%d payouts=%v", p.Resolution, p.WinnerLabel, p.Pot, p.Payouts)
	case event.ClosedPayloadV1:
		return p.Reason
	}
	return fmt.Sprintf("%v", e.Payload)
}
