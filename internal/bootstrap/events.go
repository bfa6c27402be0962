package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/BrandishReveal_Go/internal/config"
	"github.com/osse101/BrandishReveal_Go/internal/event"
)

// InitializeEventSystem creates the event bus and the resilient publisher
// sessions publish through. The dead-letter directory is created first.
func InitializeEventSystem(cfg *config.Config) (*event.MemoryBus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	if err := os.MkdirAll(filepath.Dir(cfg.DeadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(eventBus, cfg.EventMaxRetries, cfg.EventRetryDelay, cfg.DeadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", cfg.EventMaxRetries,
		"retry_delay", cfg.EventRetryDelay,
		"deadletter_path", cfg.DeadLetterPath)

	return eventBus, publisher, nil
}
