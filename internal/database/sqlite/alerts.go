package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/repository"
)

type alertsRepository struct {
	db *sql.DB
}

// NewAlertsRepository creates a sqlite-backed alerts repository
func NewAlertsRepository(db *sql.DB) repository.Alerts {
	return &alertsRepository{db: db}
}

const alertColumns = `alert_id, farm_id, type, title, message, related_id, priority, is_read, created_at`

// InsertIfAbsent relies on the partial unique index on
// (farm_id, type, related_id) WHERE is_read = 0: a duplicate unread
// alert is dropped by ON CONFLICT DO NOTHING and reported as not
// inserted.
func (r *alertsRepository) InsertIfAbsent(ctx context.Context, alert *domain.Alert) (bool, error) {
	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.FarmID, string(alert.Type), alert.Title, alert.Message,
		alert.RelatedID, string(alert.Priority), boolToInt(alert.IsRead),
		encodeTime(alert.CreatedAt))
	if err != nil {
		return false, fmt.Errorf("failed to insert alert: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *alertsRepository) ListUnread(ctx context.Context, farmID string) ([]domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE farm_id = ? AND is_read = 0 ORDER BY created_at DESC`
	return r.queryAlerts(ctx, query, farmID)
}

func (r *alertsRepository) ListRecent(ctx context.Context, farmID string, limit int) ([]domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE farm_id = ? ORDER BY created_at DESC LIMIT ?`
	return r.queryAlerts(ctx, query, farmID, limit)
}

func (r *alertsRepository) CountUnread(ctx context.Context, farmID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM alerts WHERE farm_id = ? AND is_read = 0`, farmID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return count, nil
}

func (r *alertsRepository) MarkRead(ctx context.Context, alertID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE alerts SET is_read = 1 WHERE alert_id = ?`, alertID)
	if err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: alert %s", domain.ErrRecordNotFound, alertID)
	}
	return nil
}

func (r *alertsRepository) queryAlerts(ctx context.Context, query string, args ...any) ([]domain.Alert, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *alert)
	}
	return alerts, rows.Err()
}

func scanAlert(row rowScanner) (*domain.Alert, error) {
	var alert domain.Alert
	var alertType, priority, createdAt string
	var isRead int

	err := row.Scan(&alert.ID, &alert.FarmID, &alertType, &alert.Title,
		&alert.Message, &alert.RelatedID, &priority, &isRead, &createdAt)
	if err != nil {
		return nil, err
	}

	alert.Type = domain.AlertType(alertType)
	alert.Priority = domain.AlertPriority(priority)
	alert.IsRead = isRead != 0
	if alert.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	return &alert, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
