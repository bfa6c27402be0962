package metrics

import (
	"context"

	"github.com/osse101/BrandishReveal_Go/internal/event"
	"github.com/osse101/BrandishReveal_Go/internal/logger"
)

// EventMetricsCollector subscribes to playback events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every playback event type
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.PlaybackStarted:
		var p event.StartedPayloadV1
		if p, err = event.DecodePayload[event.StartedPayloadV1](evt.Payload); err == nil {
			SessionsStarted.WithLabelValues(p.Kind).Inc()
			SessionsActive.Inc()
		}

	case event.PlaybackClosed:
		SessionsActive.Dec()

	case event.PlaybackLaneStopped:
		var p event.LaneStoppedPayloadV1
		if p, err = event.DecodePayload[event.LaneStoppedPayloadV1](evt.Payload); err == nil {
			ReelsStopped.WithLabelValues(p.Tier).Inc()
		}

	case event.PlaybackLaneStalled:
		WatchdogFires.Inc()

	case event.PlaybackLaneTease:
		TeasesFired.Inc()

	case event.PlaybackLanesStopped:
		RoundsScored.Inc()

	case event.PlaybackCue:
		var p event.CuePayloadV1
		if p, err = event.DecodePayload[event.CuePayloadV1](evt.Payload); err == nil {
			CuesEmitted.WithLabelValues(p.Cue).Inc()
		}

	case event.PlaybackFinished:
		var p event.FinishedPayloadV1
		if p, err = event.DecodePayload[event.FinishedPayloadV1](evt.Payload); err == nil {
			BattlesFinished.WithLabelValues(p.Resolution).Inc()
			PotValue.Observe(float64(p.Pot))
		}
	}

	if err != nil {
		// a malformed payload never fails the publisher
		log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
