// Package sync implements the durable outbox and the engine that drains
// it to the remote authority when connectivity allows.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/agridesk/fieldbook/internal/clock"
	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/event"
	"github.com/agridesk/fieldbook/internal/logger"
	"github.com/agridesk/fieldbook/internal/repository"
)

// ConflictResolution reports how a conflicted record was settled
type ConflictResolution struct {
	Table    string `json:"table_name"`
	RecordID string `json:"record_id"`
	// Winner is "local" or "server"
	Winner string `json:"winner"`
}

// Service defines the sync engine business logic
type Service interface {
	// EnqueueMutation snapshots a record into the outbox. It succeeds
	// regardless of connectivity; delivery happens on a later drain.
	EnqueueMutation(ctx context.Context, farmID, table, recordID string, op domain.SyncOperation, record any) error

	// Drain attempts delivery of every eligible queue entry in creation
	// order, scoped to one farm when farmID is non-empty. If a drain is
	// already in flight, or the engine is offline, it returns
	// immediately with no outcomes.
	Drain(ctx context.Context, farmID string) ([]domain.SyncOutcome, error)

	// SetOnline records a connectivity transition. Going from offline
	// to online triggers a drain.
	SetOnline(ctx context.Context, online bool)

	// Online reports the current connectivity state
	Online() bool

	PendingCount(ctx context.Context, farmID string) (int, error)
	ListPending(ctx context.Context, farmID string) ([]domain.SyncQueueEntry, error)

	// ResolveConflict settles a conflicted record by last-write-wins
	// against the server's snapshot. The local copy wins ties.
	ResolveConflict(ctx context.Context, table, recordID string, serverSnapshot json.RawMessage) (*ConflictResolution, error)
}

type service struct {
	queue      repository.SyncQueue
	records    repository.Records
	transport  Transport
	bus        event.Bus
	clk        clock.Clock
	maxRetries int

	online   atomic.Bool
	draining atomic.Bool
}

// NewService creates a new sync engine. The engine starts offline;
// the connectivity monitor flips it online after the first successful
// probe.
func NewService(queue repository.SyncQueue, records repository.Records, transport Transport, bus event.Bus, clk clock.Clock, maxRetries int) Service {
	if maxRetries <= 0 {
		maxRetries = domain.DefaultMaxRetries
	}
	return &service{
		queue:      queue,
		records:    records,
		transport:  transport,
		bus:        bus,
		clk:        clk,
		maxRetries: maxRetries,
	}
}

func (s *service) EnqueueMutation(ctx context.Context, farmID, table, recordID string, op domain.SyncOperation, record any) error {
	log := logger.FromContext(ctx)

	if !domain.SyncTables[table] {
		return fmt.Errorf("%w: %s", domain.ErrUnknownTable, table)
	}
	if !op.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidOperation, op)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to snapshot record: %w", err)
	}

	now := s.clk.Now().UTC()
	entry := &domain.SyncQueueEntry{
		ID:        uuid.NewString(),
		FarmID:    farmID,
		TableName: table,
		RecordID:  recordID,
		Operation: op,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.queue.Enqueue(ctx, entry); err != nil {
		return fmt.Errorf("failed to enqueue mutation: %w", err)
	}

	log.Debug(LogMsgMutationQueued, "farmID", farmID, "table", table, "recordID", recordID, "op", op)

	// When already online, try to push the farm's queue out right away
	// instead of waiting for the next periodic drain. The entry is
	// durable either way, so a failed attempt stays silent here.
	if s.online.Load() {
		if _, err := s.Drain(ctx, farmID); err != nil {
			log.Debug(LogMsgImmediateDrainFailed, "farmID", farmID, "error", err)
		}
	}
	return nil
}

func (s *service) Drain(ctx context.Context, farmID string) ([]domain.SyncOutcome, error) {
	log := logger.FromContext(ctx)

	if !s.online.Load() {
		log.Debug(LogMsgDrainOffline)
		return nil, nil
	}
	if !s.draining.CompareAndSwap(false, true) {
		log.Debug(LogMsgDrainAlreadyActive)
		return nil, nil
	}
	defer s.draining.Store(false)

	entries, err := s.queue.ListPending(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}
	log.Info(LogMsgDrainStarted, "entries", len(entries))

	outcomes := make([]domain.SyncOutcome, 0, len(entries))
	for i := range entries {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, s.drainOne(ctx, &entries[i]))
	}

	var synced, failed, skipped int
	for _, o := range outcomes {
		switch {
		case o.Synced:
			synced++
		case o.Skipped:
			skipped++
		default:
			failed++
		}
	}
	log.Info(LogMsgDrainFinished, "synced", synced, "failed", failed, "skipped", skipped)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewSyncDrainCompletedEvent(synced, failed, skipped)); err != nil {
			log.Warn("Failed to publish drain event", "error", err)
		}
	}
	return outcomes, nil
}

func (s *service) drainOne(ctx context.Context, entry *domain.SyncQueueEntry) domain.SyncOutcome {
	log := logger.FromContext(ctx)
	outcome := domain.SyncOutcome{
		EntryID:  entry.ID,
		Table:    entry.TableName,
		RecordID: entry.RecordID,
	}

	// Entries at the ceiling stay queued for manual resolution and are
	// never retried automatically.
	if entry.RetryCount >= s.maxRetries {
		outcome.Skipped = true
		return outcome
	}
	if !eligible(entry.RetryCount, entry.UpdatedAt, s.clk.Now().UTC()) {
		log.Debug(LogMsgEntryBackedOff, "entryID", entry.ID, "retries", entry.RetryCount)
		outcome.Skipped = true
		return outcome
	}

	deliverErr := s.transport.Deliver(ctx, entry)
	if deliverErr == nil {
		if err := s.queue.Complete(ctx, entry); err != nil {
			outcome.Error = err.Error()
			return outcome
		}
		log.Debug(LogMsgEntryDelivered, "entryID", entry.ID, "table", entry.TableName)
		outcome.Synced = true
		return outcome
	}

	outcome.Error = deliverErr.Error()
	log.Warn(LogMsgDeliveryFailed, "entryID", entry.ID, "error", deliverErr)

	count, err := s.queue.RecordFailure(ctx, entry.ID, deliverErr.Error())
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	if count >= s.maxRetries {
		if err := s.queue.MarkConflict(ctx, entry); err != nil {
			outcome.Error = err.Error()
			return outcome
		}
		log.Warn(LogMsgEntryConflicted, "entryID", entry.ID, "table", entry.TableName, "recordID", entry.RecordID)
		if s.bus != nil {
			if err := s.bus.Publish(ctx, event.NewSyncConflictEvent(entry.TableName, entry.RecordID)); err != nil {
				log.Warn("Failed to publish conflict event", "error", err)
			}
		}
	}
	return outcome
}

func (s *service) SetOnline(ctx context.Context, online bool) {
	log := logger.FromContext(ctx)

	was := s.online.Swap(online)
	if was == online {
		return
	}

	if online {
		log.Info(LogMsgWentOnline)
	} else {
		log.Info(LogMsgWentOffline)
	}
	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewConnectivityChangedEvent(online)); err != nil {
			log.Warn("Failed to publish connectivity event", "error", err)
		}
	}

	// Reconnecting drains whatever queued up while offline
	if online {
		if _, err := s.Drain(ctx, ""); err != nil {
			log.Error("Drain after reconnect failed", "error", err)
		}
	}
}

func (s *service) Online() bool {
	return s.online.Load()
}

func (s *service) PendingCount(ctx context.Context, farmID string) (int, error) {
	return s.queue.Count(ctx, farmID)
}

func (s *service) ListPending(ctx context.Context, farmID string) ([]domain.SyncQueueEntry, error) {
	return s.queue.ListPending(ctx, farmID)
}

// recordTimestamps is the slice of a snapshot that conflict resolution
// compares.
type recordTimestamps struct {
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *service) ResolveConflict(ctx context.Context, table, recordID string, serverSnapshot json.RawMessage) (*ConflictResolution, error) {
	log := logger.FromContext(ctx)

	if !domain.SyncTables[table] {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTable, table)
	}

	localSnapshot, err := s.records.GetRecord(ctx, table, recordID)
	if err != nil {
		return nil, err
	}

	var local recordTimestamps
	if err := json.Unmarshal(localSnapshot, &local); err != nil {
		return nil, fmt.Errorf("failed to read local timestamps: %w", err)
	}

	resolution := &ConflictResolution{Table: table, RecordID: recordID}

	var server recordTimestamps
	if len(serverSnapshot) > 0 {
		if err := json.Unmarshal(serverSnapshot, &server); err != nil {
			return nil, fmt.Errorf("failed to read server timestamps: %w", err)
		}
	}

	// Last write wins; the local copy wins a tie because the farmer's
	// device is the primary author of farm data.
	if !local.UpdatedAt.Before(server.UpdatedAt) {
		resolution.Winner = "local"
		if err := s.queue.DeleteForRecord(ctx, table, recordID); err != nil {
			return nil, err
		}

		var farmID string
		var probe struct {
			FarmID string `json:"farm_id"`
		}
		if err := json.Unmarshal(localSnapshot, &probe); err == nil {
			farmID = probe.FarmID
		}

		// Re-queue the local copy fresh so delivery retries from zero
		if err := s.EnqueueMutation(ctx, farmID, table, recordID, domain.SyncOpUpdate, json.RawMessage(localSnapshot)); err != nil {
			return nil, err
		}
	} else {
		resolution.Winner = "server"
		if err := s.queue.DeleteForRecord(ctx, table, recordID); err != nil {
			return nil, err
		}
		if err := s.records.ReplaceRecord(ctx, table, recordID, serverSnapshot, domain.SyncStatusSynced); err != nil {
			return nil, err
		}
	}

	log.Info(LogMsgConflictResolved, "table", table, "recordID", recordID, "winner", resolution.Winner)
	return resolution, nil
}
