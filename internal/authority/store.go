// Package authority implements the remote side of sync: the server
// that receives pushed mutations from offline-first clients and holds
// the canonical copy of every record.
package authority

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists canonical record snapshots
type Store interface {
	// Upsert stores the snapshot for (table, recordID), replacing any
	// previous version
	Upsert(ctx context.Context, table, recordID string, payload json.RawMessage) error

	// Delete removes the record. Deleting an absent record is not an
	// error; the client may retry a delivery the server already applied.
	Delete(ctx context.Context, table, recordID string) error

	// Get returns the stored snapshot, or nil when absent
	Get(ctx context.Context, table, recordID string) (json.RawMessage, error)
}

// Records from every client land in one relation keyed by
// (table_name, record_id). The payload column keeps the full JSON
// snapshot so new record types need no schema change.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS farm_records (
    table_name TEXT NOT NULL,
    record_id  TEXT NOT NULL,
    payload    JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (table_name, record_id)
);
`

type pgxStore struct {
	pool *pgxpool.Pool
}

// NewStore creates a PostgreSQL-backed store
func NewStore(pool *pgxpool.Pool) Store {
	return &pgxStore{pool: pool}
}

// EnsureSchema creates the authority relation if it does not exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure authority schema: %w", err)
	}
	return nil
}

func (s *pgxStore) Upsert(ctx context.Context, table, recordID string, payload json.RawMessage) error {
	query := `
		INSERT INTO farm_records (table_name, record_id, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (table_name, record_id)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`

	if _, err := s.pool.Exec(ctx, query, table, recordID, payload); err != nil {
		return fmt.Errorf("failed to upsert %s/%s: %w", table, recordID, err)
	}
	return nil
}

func (s *pgxStore) Delete(ctx context.Context, table, recordID string) error {
	query := `DELETE FROM farm_records WHERE table_name = $1 AND record_id = $2`

	if _, err := s.pool.Exec(ctx, query, table, recordID); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", table, recordID, err)
	}
	return nil
}

func (s *pgxStore) Get(ctx context.Context, table, recordID string) (json.RawMessage, error) {
	query := `SELECT payload FROM farm_records WHERE table_name = $1 AND record_id = $2`

	var payload json.RawMessage
	err := s.pool.QueryRow(ctx, query, table, recordID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", table, recordID, err)
	}
	return payload, nil
}
