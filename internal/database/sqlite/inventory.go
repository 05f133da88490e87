package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/repository"
)

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a sqlite-backed inventory repository
func NewInventoryRepository(db *sql.DB) repository.Inventory {
	return &inventoryRepository{db: db}
}

const itemColumns = `item_id, farm_id, name, category, unit, min_threshold, description, sync_status, created_at, updated_at`

func (r *inventoryRepository) GetItemByID(ctx context.Context, farmID, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE farm_id = ? AND item_id = ?`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, farmID, itemID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

func (r *inventoryRepository) ListItems(ctx context.Context, farmID string) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE farm_id = ? ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *inventoryRepository) InsertItem(ctx context.Context, item *domain.InventoryItem) error {
	query := `INSERT INTO inventory_items (` + itemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.FarmID, item.Name, string(item.Category), string(item.Unit),
		item.MinThreshold, item.Description, string(item.SyncStatus),
		encodeTime(item.CreatedAt), encodeTime(item.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return nil
}

func (r *inventoryRepository) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = ?, category = ?, unit = ?, min_threshold = ?, description = ?, sync_status = ?, updated_at = ?
		WHERE farm_id = ? AND item_id = ?`

	res, err := r.db.ExecContext(ctx, query,
		item.Name, string(item.Category), string(item.Unit), item.MinThreshold,
		item.Description, string(item.SyncStatus), encodeTime(item.UpdatedAt),
		item.FarmID, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, item.ID)
	}
	return nil
}

const stockLogColumns = `stock_log_id, farm_id, item_id, type, quantity, date, batch_number, expiry_date, purchase_price, supplier_id, notes, sync_status, created_at, updated_at`

func (r *inventoryRepository) InsertStockLog(ctx context.Context, log *domain.StockLog) error {
	query := `INSERT INTO stock_logs (` + stockLogColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.FarmID, log.ItemID, string(log.Type), log.Quantity,
		encodeTime(log.Date), log.BatchNumber, encodeTimePtr(log.ExpiryDate),
		log.PurchasePrice, log.SupplierID, log.Notes, string(log.SyncStatus),
		encodeTime(log.CreatedAt), encodeTime(log.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert stock log: %w", err)
	}
	return nil
}

func (r *inventoryRepository) ListStockLogsForItem(ctx context.Context, farmID, itemID string) ([]domain.StockLog, error) {
	query := `SELECT ` + stockLogColumns + ` FROM stock_logs WHERE farm_id = ? AND item_id = ? ORDER BY date`
	return r.queryStockLogs(ctx, query, farmID, itemID)
}

func (r *inventoryRepository) ListStockLogs(ctx context.Context, farmID string) ([]domain.StockLog, error) {
	query := `SELECT ` + stockLogColumns + ` FROM stock_logs WHERE farm_id = ? ORDER BY date`
	return r.queryStockLogs(ctx, query, farmID)
}

func (r *inventoryRepository) queryStockLogs(ctx context.Context, query string, args ...any) ([]domain.StockLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.StockLog
	for rows.Next() {
		log, err := scanStockLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *log)
	}
	return logs, rows.Err()
}

func scanItem(row rowScanner) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	var category, unit, status, createdAt, updatedAt string

	err := row.Scan(&item.ID, &item.FarmID, &item.Name, &category, &unit,
		&item.MinThreshold, &item.Description, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	item.Category = domain.InventoryCategory(category)
	item.Unit = domain.Unit(unit)
	item.SyncStatus = domain.SyncStatus(status)
	if item.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if item.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func scanStockLog(row rowScanner) (*domain.StockLog, error) {
	var log domain.StockLog
	var movementType, status, date, createdAt, updatedAt string
	var expiry sql.NullString

	err := row.Scan(&log.ID, &log.FarmID, &log.ItemID, &movementType, &log.Quantity,
		&date, &log.BatchNumber, &expiry, &log.PurchasePrice, &log.SupplierID,
		&log.Notes, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	log.Type = domain.MovementType(movementType)
	log.SyncStatus = domain.SyncStatus(status)
	if log.Date, err = decodeTime(date); err != nil {
		return nil, err
	}
	if log.ExpiryDate, err = decodeTimePtr(expiry); err != nil {
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
