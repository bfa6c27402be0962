package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// SessionID returns the playback session an event belongs to, or "" when the
// event carries none.
func (e Event) SessionID() string {
	id, _ := e.GetMetadataValue(MetadataKeySessionID).(string)
	return id
}

// At returns the playback clock reading the event was raised at
func (e Event) At() time.Duration {
	ms, ok := e.GetMetadataValue(MetadataKeyAt).(float64)
	if !ok {
		return 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// Playback event types
const (
	PlaybackStarted       Type = "playback.started"
	PlaybackPhaseChanged  Type = "playback.phase_changed"
	PlaybackRoundAdvanced Type = "playback.round_advanced"
	PlaybackLaneStopped   Type = "playback.lane_stopped"
	PlaybackLanesStopped  Type = "playback.lanes_stopped"
	PlaybackLaneTease     Type = "playback.lane_tease"
	PlaybackLaneStalled   Type = "playback.lane_stalled"
	PlaybackCue           Type = "playback.cue"
	PlaybackFinished      Type = "playback.battle_finished"
	PlaybackClosed        Type = "playback.session_closed"
)

// AllTypes lists every playback event type in a stable order
var AllTypes = []Type{
	PlaybackStarted,
	PlaybackPhaseChanged,
	PlaybackRoundAdvanced,
	PlaybackLaneStopped,
	PlaybackLanesStopped,
	PlaybackLaneTease,
	PlaybackLaneStalled,
	PlaybackCue,
	PlaybackFinished,
	PlaybackClosed,
}

// Typed event payloads for type safety

// StartedPayloadV1 announces a new playback session
type StartedPayloadV1 struct {
	Kind       string `json:"kind"`
	BattleID   int64  `json:"battle_id,omitempty"`
	Lanes      int    `json:"lanes"`
	RoundCount int    `json:"round_count"`
	Rule       string `json:"rule,omitempty"`
	Jackpot    bool   `json:"jackpot,omitempty"`
}

// PhaseChangedPayloadV1 carries the phase a playback moved into
type PhaseChangedPayloadV1 struct {
	Phase string `json:"phase"`
}

// RoundAdvancedPayloadV1 carries the index of the round about to start
type RoundAdvancedPayloadV1 struct {
	RoundIndex int `json:"round_index"`
}

// LaneStoppedPayloadV1 is one lane landing on its outcome
type LaneStoppedPayloadV1 struct {
	RoundIndex int    `json:"round_index"`
	Lane       int    `json:"lane"`
	ItemName   string `json:"item_name"`
	Tier       string `json:"tier"`
	Value      int64  `json:"value"`
	Icon       string `json:"icon,omitempty"`
}

// LanesStoppedPayloadV1 is raised once per round when every lane has stopped
type LanesStoppedPayloadV1 struct {
	RoundIndex int     `json:"round_index"`
	Deltas     []int64 `json:"deltas"`
	Scores     []int64 `json:"scores"`
	Pot        int64   `json:"pot"`
}

// LanePayloadV1 identifies a lane for tease and stall notifications
type LanePayloadV1 struct {
	Lane int `json:"lane"`
}

// CuePayloadV1 is a sound cue for spectators to play
type CuePayloadV1 struct {
	Cue string `json:"cue"`
}

// FinishedPayloadV1 is the final result of a playback
type FinishedPayloadV1 struct {
	BattleID     int64   `json:"battle_id,omitempty"`
	Resolution   string  `json:"resolution"`
	WinnerTeamID int     `json:"winner_team_id"`
	WinnerLabel  string  `json:"winner_label,omitempty"`
	Refunded     bool    `json:"refunded"`
	Pot          int64   `json:"pot"`
	Scores       []int64 `json:"scores"`
	Payouts      []int64 `json:"payouts"`
	RoundsPlayed int     `json:"rounds_played"`
}

// ClosedPayloadV1 is raised when a session is torn down
type ClosedPayloadV1 struct {
	Reason string `json:"reason"`
}

func newPlaybackEvent(t Type, sessionID string, at time.Duration, payload interface{}) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: payload,
		Metadata: map[string]interface{}{
			MetadataKeySessionID: sessionID,
			MetadataKeyAt:        float64(at) / float64(time.Millisecond),
		},
	}
}

// NewStartedEvent creates a playback.started event
func NewStartedEvent(sessionID string, at time.Duration, payload StartedPayloadV1) Event {
	return newPlaybackEvent(PlaybackStarted, sessionID, at, payload)
}

// NewPhaseChangedEvent creates a playback.phase_changed event
func NewPhaseChangedEvent(sessionID string, at time.Duration, phase string) Event {
	return newPlaybackEvent(PlaybackPhaseChanged, sessionID, at, PhaseChangedPayloadV1{Phase: phase})
}

// NewRoundAdvancedEvent creates a playback.round_advanced event
func NewRoundAdvancedEvent(sessionID string, at time.Duration, roundIndex int) Event {
	return newPlaybackEvent(PlaybackRoundAdvanced, sessionID, at, RoundAdvancedPayloadV1{RoundIndex: roundIndex})
}

// NewLaneStoppedEvent creates a playback.lane_stopped event
func NewLaneStoppedEvent(sessionID string, at time.Duration, payload LaneStoppedPayloadV1) Event {
	return newPlaybackEvent(PlaybackLaneStopped, sessionID, at, payload)
}

// NewLanesStoppedEvent creates a playback.lanes_stopped event
func NewLanesStoppedEvent(sessionID string, at time.Duration, payload LanesStoppedPayloadV1) Event {
	return newPlaybackEvent(PlaybackLanesStopped, sessionID, at, payload)
}

// NewLaneTeaseEvent creates a playback.lane_tease event
func NewLaneTeaseEvent(sessionID string, at time.Duration, lane int) Event {
	return newPlaybackEvent(PlaybackLaneTease, sessionID, at, LanePayloadV1{Lane: lane})
}

// NewLaneStalledEvent creates a playback.lane_stalled event
func NewLaneStalledEvent(sessionID string, at time.Duration, lane int) Event {
	return newPlaybackEvent(PlaybackLaneStalled, sessionID, at, LanePayloadV1{Lane: lane})
}

// NewCueEvent creates a playback.cue event
func NewCueEvent(sessionID string, at time.Duration, cue string) Event {
	return newPlaybackEvent(PlaybackCue, sessionID, at, CuePayloadV1{Cue: cue})
}

// NewFinishedEvent creates a playback.battle_finished event
func NewFinishedEvent(sessionID string, at time.Duration, payload FinishedPayloadV1) Event {
	return newPlaybackEvent(PlaybackFinished, sessionID, at, payload)
}

// NewClosedEvent creates a playback.session_closed event
func NewClosedEvent(sessionID string, at time.Duration, reason string) Event {
	return newPlaybackEvent(PlaybackClosed, sessionID, at, ClosedPayloadV1{Reason: reason})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Publisher is the publishing half of a Bus
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus defines the interface for an event bus
type Bus interface {
	Publisher
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously on
// the publishing goroutine.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes handler to every playback event type
func SubscribeAll(bus Bus, handler Handler) {
	for _, t := range AllTypes {
		bus.Subscribe(t, handler)
	}
}
