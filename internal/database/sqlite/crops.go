package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/repository"
)

type cropsRepository struct {
	db *sql.DB
}

// NewCropsRepository creates a sqlite-backed crops and plots repository
func NewCropsRepository(db *sql.DB) repository.Crops {
	return &cropsRepository{db: db}
}

const cropColumns = `crop_id, farm_id, plot_id, name, variety, planting_date, expected_harvest_date, status, fertilizer_stage_date, pesticide_interval_days, last_pesticide_date, sync_status, created_at, updated_at`

func (r *cropsRepository) GetCropByID(ctx context.Context, farmID, cropID string) (*domain.Crop, error) {
	query := `SELECT ` + cropColumns + ` FROM crops WHERE farm_id = ? AND crop_id = ?`

	crop, err := scanCrop(r.db.QueryRowContext(ctx, query, farmID, cropID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crop: %w", err)
	}
	return crop, nil
}

func (r *cropsRepository) ListActiveCrops(ctx context.Context, farmID string) ([]domain.Crop, error) {
	query := `SELECT ` + cropColumns + ` FROM crops WHERE farm_id = ? AND status IN (?, ?) ORDER BY planting_date`

	rows, err := r.db.QueryContext(ctx, query, farmID,
		string(domain.CropStatusPlanted), string(domain.CropStatusGrowing))
	if err != nil {
		return nil, fmt.Errorf("failed to list active crops: %w", err)
	}
	defer rows.Close()

	var crops []domain.Crop
	for rows.Next() {
		crop, err := scanCrop(rows)
		if err != nil {
			return nil, err
		}
		crops = append(crops, *crop)
	}
	return crops, rows.Err()
}

func (r *cropsRepository) InsertCrop(ctx context.Context, crop *domain.Crop) error {
	query := `INSERT INTO crops (` + cropColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		crop.ID, crop.FarmID, crop.PlotID, crop.Name, crop.Variety,
		encodeTime(crop.PlantingDate), encodeTimePtr(crop.ExpectedHarvestDate),
		string(crop.Status), encodeTimePtr(crop.FertilizerStageDate),
		crop.PesticideIntervalDays, encodeTimePtr(crop.LastPesticideDate),
		string(crop.SyncStatus), encodeTime(crop.CreatedAt), encodeTime(crop.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert crop: %w", err)
	}
	return nil
}

func (r *cropsRepository) UpdateCrop(ctx context.Context, crop *domain.Crop) error {
	query := `
		UPDATE crops
		SET plot_id = ?, name = ?, variety = ?, planting_date = ?, expected_harvest_date = ?,
		    status = ?, fertilizer_stage_date = ?, pesticide_interval_days = ?, last_pesticide_date = ?,
		    sync_status = ?, updated_at = ?
		WHERE farm_id = ? AND crop_id = ?`

	res, err := r.db.ExecContext(ctx, query,
		crop.PlotID, crop.Name, crop.Variety, encodeTime(crop.PlantingDate),
		encodeTimePtr(crop.ExpectedHarvestDate), string(crop.Status),
		encodeTimePtr(crop.FertilizerStageDate), crop.PesticideIntervalDays,
		encodeTimePtr(crop.LastPesticideDate), string(crop.SyncStatus),
		encodeTime(crop.UpdatedAt), crop.FarmID, crop.ID)
	if err != nil {
		return fmt.Errorf("failed to update crop: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCropNotFound, crop.ID)
	}
	return nil
}

const plotColumns = `plot_id, farm_id, name, size_acres, current_crop_id, notes, sync_status, created_at, updated_at`

func (r *cropsRepository) CountPlots(ctx context.Context, farmID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plots WHERE farm_id = ?`, farmID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count plots: %w", err)
	}
	return count, nil
}

func (r *cropsRepository) InsertPlot(ctx context.Context, plot *domain.Plot) error {
	query := `INSERT INTO plots (` + plotColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		plot.ID, plot.FarmID, plot.Name, plot.SizeAcres, plot.CurrentCropID,
		plot.Notes, string(plot.SyncStatus), encodeTime(plot.CreatedAt), encodeTime(plot.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert plot: %w", err)
	}
	return nil
}

func (r *cropsRepository) ListPlots(ctx context.Context, farmID string) ([]domain.Plot, error) {
	query := `SELECT ` + plotColumns + ` FROM plots WHERE farm_id = ? ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plots: %w", err)
	}
	defer rows.Close()

	var plots []domain.Plot
	for rows.Next() {
		plot, err := scanPlot(rows)
		if err != nil {
			return nil, err
		}
		plots = append(plots, *plot)
	}
	return plots, rows.Err()
}

func scanCrop(row rowScanner) (*domain.Crop, error) {
	var crop domain.Crop
	var status, plantingDate, syncStatus, createdAt, updatedAt string
	var expectedHarvest, fertilizerStage, lastPesticide sql.NullString

	err := row.Scan(&crop.ID, &crop.FarmID, &crop.PlotID, &crop.Name, &crop.Variety,
		&plantingDate, &expectedHarvest, &status, &fertilizerStage,
		&crop.PesticideIntervalDays, &lastPesticide, &syncStatus, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	crop.Status = domain.CropStatus(status)
	crop.SyncStatus = domain.SyncStatus(syncStatus)
	if crop.PlantingDate, err = decodeTime(plantingDate); err != nil {
		return nil, err
	}
	if crop.ExpectedHarvestDate, err = decodeTimePtr(expectedHarvest); err != nil {
		return nil, err
	}
	if crop.FertilizerStageDate, err = decodeTimePtr(fertilizerStage); err != nil {
		return nil, err
	}
	if crop.LastPesticideDate, err = decodeTimePtr(lastPesticide); err != nil {
		return nil, err
	}
	if crop.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if crop.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &crop, nil
}

func scanPlot(row rowScanner) (*domain.Plot, error) {
	var plot domain.Plot
	var syncStatus, createdAt, updatedAt string

	err := row.Scan(&plot.ID, &plot.FarmID, &plot.Name, &plot.SizeAcres,
		&plot.CurrentCropID, &plot.Notes, &syncStatus, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	plot.SyncStatus = domain.SyncStatus(syncStatus)
	if plot.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if plot.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &plot, nil
}
