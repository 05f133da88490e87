package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/repository"
)

type farmsRepository struct {
	db *sql.DB
}

// NewFarmsRepository creates a sqlite-backed farms repository
func NewFarmsRepository(db *sql.DB) repository.Farms {
	return &farmsRepository{db: db}
}

const farmColumns = `farm_id, user_id, name, location, created_at, updated_at`

func (r *farmsRepository) ListFarmIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT farm_id FROM farms ORDER BY farm_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list farm ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *farmsRepository) GetFarmByID(ctx context.Context, farmID string) (*domain.Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms WHERE farm_id = ?`

	var farm domain.Farm
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, farmID).Scan(
		&farm.ID, &farm.UserID, &farm.Name, &farm.Location, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}

	if farm.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if farm.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &farm, nil
}

func (r *farmsRepository) InsertFarm(ctx context.Context, farm *domain.Farm) error {
	query := `INSERT INTO farms (` + farmColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		farm.ID, farm.UserID, farm.Name, farm.Location,
		encodeTime(farm.CreatedAt), encodeTime(farm.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert farm: %w", err)
	}
	return nil
}
