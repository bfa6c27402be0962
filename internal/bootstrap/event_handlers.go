package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/BrandishReveal_Go/internal/event"
	"github.com/osse101/BrandishReveal_Go/internal/metrics"
	"github.com/osse101/BrandishReveal_Go/internal/sse"
)

// EventHandlerDependencies holds what event handler registration needs
type EventHandlerDependencies struct {
	EventBus event.Bus
	Hub      *sse.Hub
}

// RegisterEventHandlers subscribes the metrics collector and, when a hub is
// given, the spectator stream forwarder to the bus.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgStreamSubscriberRegistered)
	}
	return nil
}
