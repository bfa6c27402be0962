package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/BrandishReveal_Go/internal/event"
)

// Subscriber bridges the internal event bus to the hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe forwards every playback event type to the hub
func (s *Subscriber) Subscribe() {
	event.SubscribeAll(s.bus, s.forward)

	types := make([]string, 0, len(event.AllTypes))
	for _, t := range event.AllTypes {
		types = append(types, string(t))
	}
	slog.Info(LogMsgSubscriberReady, "types", types)
}

func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(FromBusEvent(evt))
	return nil
}

// FromBusEvent converts a bus event into a stream event
func FromBusEvent(evt event.Event) Event {
	return Event{
		Type:      string(evt.Type),
		SessionID: evt.SessionID(),
		AtMs:      float64(evt.At().Microseconds()) / 1000,
		Payload:   evt.Payload,
	}
}
