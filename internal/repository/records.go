package repository

import (
	"context"
	"encoding/json"

	"github.com/agridesk/fieldbook/internal/domain"
)

// Records is the table-generic slice of the local store port used by the
// sync engine: it flips the denormalized sync status on any syncable
// record and overwrites a record with a server snapshot during conflict
// resolution. Table names must be in domain.SyncTables.
type Records interface {
	// UpdateSyncStatus sets the sync_status column of one record.
	UpdateSyncStatus(ctx context.Context, table, recordID string, status domain.SyncStatus) error

	// ReplaceRecord overwrites a record with the given snapshot and
	// sync status in one transaction (server-wins conflict resolution).
	ReplaceRecord(ctx context.Context, table, recordID string, snapshot json.RawMessage, status domain.SyncStatus) error

	// GetRecord returns the current snapshot of one record.
	GetRecord(ctx context.Context, table, recordID string) (json.RawMessage, error)
}
