package metrics

import (
	"context"

	"github.com/agridesk/fieldbook/internal/event"
	"github.com/agridesk/fieldbook/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.MovementRecorded,
		event.AlertRaised,
		event.SyncDrainCompleted,
		event.SyncConflictDetected,
		event.ConnectivityChanged,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.AlertRaised:
		payload, err := event.DecodePayload[event.AlertRaisedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		AlertsRaised.WithLabelValues(payload.AlertType, payload.Priority).Inc()

	case event.SyncDrainCompleted:
		payload, err := event.DecodePayload[event.SyncDrainCompletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		SyncEntriesDelivered.Add(float64(payload.Synced))
		SyncEntriesFailed.Add(float64(payload.Failed))
		SyncEntriesSkipped.Add(float64(payload.Skipped))

	case event.SyncConflictDetected:
		payload, err := event.DecodePayload[event.SyncConflictPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		SyncConflicts.WithLabelValues(payload.Table).Inc()

	case event.ConnectivityChanged:
		payload, err := event.DecodePayload[event.ConnectivityChangedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		if payload.Online {
			SyncOnline.Set(1)
		} else {
			SyncOnline.Set(0)
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
