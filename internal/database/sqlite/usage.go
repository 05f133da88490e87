package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/repository"
)

type usageRepository struct {
	db *sql.DB
}

// NewUsageRepository creates a sqlite-backed field usage repository
func NewUsageRepository(db *sql.DB) repository.Usage {
	return &usageRepository{db: db}
}

const usageColumns = `usage_log_id, farm_id, plot_id, crop_id, item_id, quantity_used, usage_date, usage_time, application_method, rain_probability, weather_condition, temperature, notes, sync_status, created_at, updated_at`

func (r *usageRepository) InsertUsageLog(ctx context.Context, log *domain.FieldUsageLog) error {
	query := `INSERT INTO field_usage_logs (` + usageColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.FarmID, log.PlotID, log.CropID, log.ItemID, log.QuantityUsed,
		encodeTime(log.UsageDate), log.UsageTime, string(log.ApplicationMethod),
		log.RainProbability, log.WeatherCondition, log.Temperature, log.Notes,
		string(log.SyncStatus), encodeTime(log.CreatedAt), encodeTime(log.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}
	return nil
}

func (r *usageRepository) ListRecentUsage(ctx context.Context, farmID string, limit int) ([]domain.FieldUsageLog, error) {
	query := `SELECT ` + usageColumns + ` FROM field_usage_logs WHERE farm_id = ? ORDER BY usage_date DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, farmID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.FieldUsageLog
	for rows.Next() {
		log, err := scanUsageLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *log)
	}
	return logs, rows.Err()
}

func scanUsageLog(row rowScanner) (*domain.FieldUsageLog, error) {
	var log domain.FieldUsageLog
	var method, syncStatus, usageDate, createdAt, updatedAt string

	err := row.Scan(&log.ID, &log.FarmID, &log.PlotID, &log.CropID, &log.ItemID,
		&log.QuantityUsed, &usageDate, &log.UsageTime, &method, &log.RainProbability,
		&log.WeatherCondition, &log.Temperature, &log.Notes, &syncStatus, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	log.ApplicationMethod = domain.ApplicationMethod(method)
	log.SyncStatus = domain.SyncStatus(syncStatus)
	if log.UsageDate, err = decodeTime(usageDate); err != nil {
		return nil, err
	}
	if log.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if log.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &log, nil
}
