package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/repository"
)

type syncQueueRepository struct {
	db *sql.DB
}

// NewSyncQueueRepository creates a sqlite-backed outbox repository.
// Queue mutations that also flip a record's sync status run in one
// transaction; a record can never look synced while its entry exists.
func NewSyncQueueRepository(db *sql.DB) repository.SyncQueue {
	return &syncQueueRepository{db: db}
}

const entryColumns = `entry_id, farm_id, table_name, record_id, operation, payload, retry_count, last_error, created_at, updated_at`

func (r *syncQueueRepository) Enqueue(ctx context.Context, entry *domain.SyncQueueEntry) error {
	idCol, ok := tableIDColumns[entry.TableName]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownTable, entry.TableName)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin enqueue tx: %w", err)
	}
	defer tx.Rollback()

	insert := `INSERT INTO sync_queue (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insert,
		entry.ID, entry.FarmID, entry.TableName, entry.RecordID, string(entry.Operation),
		string(entry.Payload), entry.RetryCount, entry.LastError,
		encodeTime(entry.CreatedAt), encodeTime(entry.UpdatedAt)); err != nil {
		return fmt.Errorf("failed to insert queue entry: %w", err)
	}

	status := fmt.Sprintf(`UPDATE %s SET sync_status = ? WHERE %s = ?`, entry.TableName, idCol)
	if _, err := tx.ExecContext(ctx, status, string(domain.SyncStatusPending), entry.RecordID); err != nil {
		return fmt.Errorf("failed to mark record pending: %w", err)
	}

	return tx.Commit()
}

func (r *syncQueueRepository) ListPending(ctx context.Context, farmID string) ([]domain.SyncQueueEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM sync_queue ORDER BY created_at, entry_id`
	args := []any{}
	if farmID != "" {
		query = `SELECT ` + entryColumns + ` FROM sync_queue WHERE farm_id = ? ORDER BY created_at, entry_id`
		args = append(args, farmID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.SyncQueueEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (r *syncQueueRepository) Complete(ctx context.Context, entry *domain.SyncQueueEntry) error {
	idCol, ok := tableIDColumns[entry.TableName]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownTable, entry.TableName)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin complete tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM sync_queue WHERE entry_id = ?`, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to delete queue entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entry.ID)
	}

	// A delete operation removed the local record as well; there is
	// nothing left to flag synced.
	if entry.Operation != domain.SyncOpDelete {
		status := fmt.Sprintf(`UPDATE %s SET sync_status = ? WHERE %s = ?`, entry.TableName, idCol)
		if _, err := tx.ExecContext(ctx, status, string(domain.SyncStatusSynced), entry.RecordID); err != nil {
			return fmt.Errorf("failed to mark record synced: %w", err)
		}
	}

	return tx.Commit()
}

func (r *syncQueueRepository) RecordFailure(ctx context.Context, entryID, deliveryErr string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin failure tx: %w", err)
	}
	defer tx.Rollback()

	update := `UPDATE sync_queue SET retry_count = retry_count + 1, last_error = ?, updated_at = ? WHERE entry_id = ?`
	res, err := tx.ExecContext(ctx, update, deliveryErr, encodeTime(nowUTC()), entryID)
	if err != nil {
		return 0, fmt.Errorf("failed to record delivery failure: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entryID)
	}

	var retryCount int
	if err := tx.QueryRowContext(ctx, `SELECT retry_count FROM sync_queue WHERE entry_id = ?`, entryID).Scan(&retryCount); err != nil {
		return 0, fmt.Errorf("failed to read retry count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return retryCount, nil
}

func (r *syncQueueRepository) MarkConflict(ctx context.Context, entry *domain.SyncQueueEntry) error {
	idCol, ok := tableIDColumns[entry.TableName]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownTable, entry.TableName)
	}

	query := fmt.Sprintf(`UPDATE %s SET sync_status = ? WHERE %s = ?`, entry.TableName, idCol)
	if _, err := r.db.ExecContext(ctx, query, string(domain.SyncStatusConflict), entry.RecordID); err != nil {
		return fmt.Errorf("failed to mark record conflict: %w", err)
	}
	return nil
}

func (r *syncQueueRepository) DeleteForRecord(ctx context.Context, table, recordID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sync_queue WHERE table_name = ? AND record_id = ?`, table, recordID)
	if err != nil {
		return fmt.Errorf("failed to delete queue entries for record: %w", err)
	}
	return nil
}

func (r *syncQueueRepository) Count(ctx context.Context, farmID string) (int, error) {
	query := `SELECT COUNT(*) FROM sync_queue`
	args := []any{}
	if farmID != "" {
		query += ` WHERE farm_id = ?`
		args = append(args, farmID)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count queue entries: %w", err)
	}
	return count, nil
}

func scanEntry(row rowScanner) (*domain.SyncQueueEntry, error) {
	var entry domain.SyncQueueEntry
	var operation, payload, createdAt, updatedAt string

	err := row.Scan(&entry.ID, &entry.FarmID, &entry.TableName, &entry.RecordID,
		&operation, &payload, &entry.RetryCount, &entry.LastError, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	entry.Operation = domain.SyncOperation(operation)
	entry.Payload = []byte(payload)
	if entry.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if entry.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &entry, nil
}
