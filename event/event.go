// Package event carries change notifications between the watcher, the
// preview server and its SSE clients.
package event

import (
	"context"
	"fmt"

	"github.com/d3flow/mindflow/config"
	"github.com/d3flow/mindflow/constants"
)

type EventBus interface {
	Publish(topic string, payload any) error
	Subscribe(ctx context.Context, topic string, handler func(payload any))
}

// ReloadEvent is published on the preview.reload topic when a diagram's
// rendered output is stale.
type ReloadEvent struct {
	DiagramID string `json:"diagram_id,omitempty"`
	Path      string `json:"path,omitempty"`
	Type      string `json:"type"`
}

// ChangeEvent is published on the diagram.changed topic after a store write.
type ChangeEvent struct {
	DiagramID string `json:"diagram_id"`
	Action    string `json:"action"` // "saved" or "deleted"
}

// NewInProcEventBus returns a new in-memory event bus. Used when event
// config driver=="memory" or omitted.
func NewInProcEventBus() *WatermillEventBus {
	return NewWatermillInMemBus()
}

// NewEventBusFromConfig returns an EventBus based on config. Supported:
// memory (default), nats (with url). Unknown drivers fail cleanly.
func NewEventBusFromConfig(cfg *config.EventConfig) (EventBus, error) {
	if cfg == nil || cfg.Driver == "" || cfg.Driver == constants.EventDriverMemory {
		return NewWatermillInMemBus(), nil
	}
	switch cfg.Driver {
	case constants.EventDriverNATS:
		if cfg.URL == "" {
			return nil, fmt.Errorf("NATS driver requires url")
		}
		return NewWatermillNATSBus("mindflow", "mindflow-client", cfg.URL), nil
	default:
		return nil, fmt.Errorf("unsupported event bus driver: %s", cfg.Driver)
	}
}
