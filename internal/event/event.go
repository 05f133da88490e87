// Package event provides the in-process event bus the services publish
// domain events on. Metrics and other cross-cutting listeners subscribe
// without the services knowing about them.
package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agridesk/fieldbook/internal/domain"
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

// Common event types
const (
	MovementRecorded     Type = "stock.movement_recorded"
	AlertRaised          Type = "alert.raised"
	SyncDrainCompleted   Type = "sync.drain_completed"
	SyncConflictDetected Type = "sync.conflict_detected"
	ConnectivityChanged  Type = "sync.connectivity_changed"
)

// Typed event payloads for type safety

// MovementRecordedPayloadV1 is the typed payload for stock movement events
type MovementRecordedPayloadV1 struct {
	FarmID    string  `json:"farm_id"`
	ItemID    string  `json:"item_id"`
	Type      string  `json:"movement_type"`
	Quantity  float64 `json:"quantity"`
	Timestamp int64   `json:"timestamp"`
}

// AlertRaisedPayloadV1 is the typed payload for alert events
type AlertRaisedPayloadV1 struct {
	FarmID    string `json:"farm_id"`
	AlertType string `json:"alert_type"`
	Priority  string `json:"priority"`
	RelatedID string `json:"related_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// SyncDrainCompletedPayloadV1 is the typed payload for drain completion events
type SyncDrainCompletedPayloadV1 struct {
	Synced    int   `json:"synced"`
	Failed    int   `json:"failed"`
	Skipped   int   `json:"skipped"`
	Timestamp int64 `json:"timestamp"`
}

// SyncConflictPayloadV1 is the typed payload for conflict detection events
type SyncConflictPayloadV1 struct {
	Table     string `json:"table_name"`
	RecordID  string `json:"record_id"`
	Timestamp int64  `json:"timestamp"`
}

// ConnectivityChangedPayloadV1 is the typed payload for connectivity events
type ConnectivityChangedPayloadV1 struct {
	Online    bool  `json:"online"`
	Timestamp int64 `json:"timestamp"`
}

// Type-safe event constructors

// NewMovementRecordedEvent creates a new stock movement event
func NewMovementRecordedEvent(farmID, itemID string, movementType domain.MovementType, quantity float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MovementRecorded,
		Payload: MovementRecordedPayloadV1{
			FarmID:    farmID,
			ItemID:    itemID,
			Type:      string(movementType),
			Quantity:  quantity,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewAlertRaisedEvent creates a new alert raised event
func NewAlertRaisedEvent(alert domain.Alert) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AlertRaised,
		Payload: AlertRaisedPayloadV1{
			FarmID:    alert.FarmID,
			AlertType: string(alert.Type),
			Priority:  string(alert.Priority),
			RelatedID: alert.RelatedID,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewSyncDrainCompletedEvent creates a new drain completion event
func NewSyncDrainCompletedEvent(synced, failed, skipped int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SyncDrainCompleted,
		Payload: SyncDrainCompletedPayloadV1{
			Synced:    synced,
			Failed:    failed,
			Skipped:   skipped,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewSyncConflictEvent creates a new conflict detection event
func NewSyncConflictEvent(table, recordID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SyncConflictDetected,
		Payload: SyncConflictPayloadV1{
			Table:     table,
			RecordID:  recordID,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewConnectivityChangedEvent creates a new connectivity transition event
func NewConnectivityChangedEvent(online bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ConnectivityChanged,
		Payload: ConnectivityChangedPayloadV1{
			Online:    online,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
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

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously; slow listeners belong on the worker
	// pool, not on the bus.
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
