package repository

import (
	"context"

	"github.com/agridesk/fieldbook/internal/domain"
)

// SyncQueue defines persistence for the durable outbox. Mutations that
// pair a queue change with a record sync-status change happen in a
// single local-store transaction so a record can never appear synced
// while its entry is still queued.
type SyncQueue interface {
	// Enqueue inserts the entry and sets the record's sync status to
	// pending in one transaction. It never rejects a well-formed entry.
	Enqueue(ctx context.Context, entry *domain.SyncQueueEntry) error

	// ListPending returns entries in creation order, optionally scoped
	// to one farm (farmID == "" means all farms).
	ListPending(ctx context.Context, farmID string) ([]domain.SyncQueueEntry, error)

	// Complete deletes the entry and sets the record synced in one
	// transaction, after remote acknowledgment.
	Complete(ctx context.Context, entry *domain.SyncQueueEntry) error

	// RecordFailure increments the retry count and stores the delivery
	// error. Returns the updated retry count.
	RecordFailure(ctx context.Context, entryID, deliveryErr string) (int, error)

	// MarkConflict flips the entry's record to conflict status. The
	// entry stays queued for manual resolution.
	MarkConflict(ctx context.Context, entry *domain.SyncQueueEntry) error

	// DeleteForRecord removes all entries for one record (used when a
	// conflict is resolved).
	DeleteForRecord(ctx context.Context, table, recordID string) error

	Count(ctx context.Context, farmID string) (int, error)
}
