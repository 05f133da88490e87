package domain

import (
	"encoding/json"
	"time"
)

// SyncStatus is the denormalized sync state carried on every syncable
// record. A record with an outstanding queue entry is pending; after the
// retry ceiling it becomes conflict; after a successful push, synced.
type SyncStatus string

const (
	SyncStatusSynced   SyncStatus = "synced"
	SyncStatusPending  SyncStatus = "pending"
	SyncStatusConflict SyncStatus = "conflict"
)

// SyncOperation is the kind of mutation queued for delivery
type SyncOperation string

const (
	SyncOpCreate SyncOperation = "create"
	SyncOpUpdate SyncOperation = "update"
	SyncOpDelete SyncOperation = "delete"
)

// Valid reports whether the operation is one the transport can map
func (op SyncOperation) Valid() bool {
	switch op {
	case SyncOpCreate, SyncOpUpdate, SyncOpDelete:
		return true
	}
	return false
}

// SyncQueueEntry is one outbox row: a local mutation not yet
// acknowledged by the remote authority. Payload is the full record
// snapshot at mutation time, never a diff.
type SyncQueueEntry struct {
	ID         string          `json:"id" db:"entry_id"`
	FarmID     string          `json:"farm_id" db:"farm_id"`
	TableName  string          `json:"table_name" db:"table_name"`
	RecordID   string          `json:"record_id" db:"record_id"`
	Operation  SyncOperation   `json:"operation" db:"operation"`
	Payload    json.RawMessage `json:"payload" db:"payload"`
	RetryCount int             `json:"retry_count" db:"retry_count"`
	LastError  string          `json:"last_error,omitempty" db:"last_error"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// SyncOutcome reports what a drain pass did with one queue entry
type SyncOutcome struct {
	EntryID  string `json:"entry_id"`
	Table    string `json:"table_name"`
	RecordID string `json:"record_id"`
	Synced   bool   `json:"synced"`
	Skipped  bool   `json:"skipped"`
	Error    string `json:"error,omitempty"`
}

// SyncTables whitelists the table names that participate in sync.
// Dynamic table names from queue entries and API paths are checked
// against this before being interpolated into SQL or URLs.
var SyncTables = map[string]bool{
	"plots":            true,
	"crops":            true,
	"inventory_items":  true,
	"stock_logs":       true,
	"field_usage_logs": true,
	"expenses":         true,
	"suppliers":        true,
}
