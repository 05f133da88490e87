package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/repository"
)

// tableIDColumns maps every syncable table to its primary key column.
// Table names from the queue are validated against this map before they
// are interpolated into SQL.
var tableIDColumns = map[string]string{
	"plots":            "plot_id",
	"crops":            "crop_id",
	"inventory_items":  "item_id",
	"stock_logs":       "stock_log_id",
	"field_usage_logs": "usage_log_id",
	"expenses":         "expense_id",
	"suppliers":        "supplier_id",
}

type recordsRepository struct {
	db *sql.DB
}

// NewRecordsRepository creates the table-generic record accessor used
// by the sync engine for status flips and conflict resolution.
func NewRecordsRepository(db *sql.DB) repository.Records {
	return &recordsRepository{db: db}
}

func (r *recordsRepository) UpdateSyncStatus(ctx context.Context, table, recordID string, status domain.SyncStatus) error {
	idCol, ok := tableIDColumns[table]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownTable, table)
	}

	query := fmt.Sprintf(`UPDATE %s SET sync_status = ? WHERE %s = ?`, table, idCol)
	res, err := r.db.ExecContext(ctx, query, string(status), recordID)
	if err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s/%s", domain.ErrRecordNotFound, table, recordID)
	}
	return nil
}

func (r *recordsRepository) ReplaceRecord(ctx context.Context, table, recordID string, snapshot json.RawMessage, status domain.SyncStatus) error {
	idCol, ok := tableIDColumns[table]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownTable, table)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin replace tx: %w", err)
	}
	defer tx.Rollback()

	del := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, table, idCol)
	if _, err := tx.ExecContext(ctx, del, recordID); err != nil {
		return fmt.Errorf("failed to delete record for replace: %w", err)
	}

	if err := insertSnapshot(ctx, tx, table, recordID, snapshot, status); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *recordsRepository) GetRecord(ctx context.Context, table, recordID string) (json.RawMessage, error) {
	idCol, ok := tableIDColumns[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTable, table)
	}

	var record any
	var err error
	switch table {
	case "plots":
		query := fmt.Sprintf(`SELECT `+plotColumns+` FROM plots WHERE %s = ?`, idCol)
		record, err = scanPlot(r.db.QueryRowContext(ctx, query, recordID))
	case "crops":
		query := fmt.Sprintf(`SELECT `+cropColumns+` FROM crops WHERE %s = ?`, idCol)
		record, err = scanCrop(r.db.QueryRowContext(ctx, query, recordID))
	case "inventory_items":
		query := fmt.Sprintf(`SELECT `+itemColumns+` FROM inventory_items WHERE %s = ?`, idCol)
		record, err = scanItem(r.db.QueryRowContext(ctx, query, recordID))
	case "stock_logs":
		query := fmt.Sprintf(`SELECT `+stockLogColumns+` FROM stock_logs WHERE %s = ?`, idCol)
		record, err = scanStockLog(r.db.QueryRowContext(ctx, query, recordID))
	case "field_usage_logs":
		query := fmt.Sprintf(`SELECT `+usageColumns+` FROM field_usage_logs WHERE %s = ?`, idCol)
		record, err = scanUsageLog(r.db.QueryRowContext(ctx, query, recordID))
	case "expenses":
		query := fmt.Sprintf(`SELECT `+expenseColumns+` FROM expenses WHERE %s = ?`, idCol)
		record, err = scanExpense(r.db.QueryRowContext(ctx, query, recordID))
	case "suppliers":
		query := fmt.Sprintf(`SELECT `+supplierColumns+` FROM suppliers WHERE %s = ?`, idCol)
		record, err = scanSupplier(r.db.QueryRowContext(ctx, query, recordID))
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrRecordNotFound, table, recordID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return json.Marshal(record)
}

// insertSnapshot decodes a JSON record snapshot into its typed form and
// inserts it, overriding its id and sync status. Snapshots come from
// the authority server, so a decode failure is a delivery-format error,
// not corruption of the local store.
func insertSnapshot(ctx context.Context, tx *sql.Tx, table, recordID string, snapshot json.RawMessage, status domain.SyncStatus) error {
	switch table {
	case "plots":
		var plot domain.Plot
		if err := json.Unmarshal(snapshot, &plot); err != nil {
			return fmt.Errorf("failed to decode plot snapshot: %w", err)
		}
		plot.ID = recordID
		plot.SyncStatus = status
		_, err := tx.ExecContext(ctx,
			`INSERT INTO plots (`+plotColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			plot.ID, plot.FarmID, plot.Name, plot.SizeAcres, plot.CurrentCropID,
			plot.Notes, string(plot.SyncStatus), encodeTime(plot.CreatedAt), encodeTime(plot.UpdatedAt))
		return err
	case "crops":
		var crop domain.Crop
		if err := json.Unmarshal(snapshot, &crop); err != nil {
			return fmt.Errorf("failed to decode crop snapshot: %w", err)
		}
		crop.ID = recordID
		crop.SyncStatus = status
		_, err := tx.ExecContext(ctx,
			`INSERT INTO crops (`+cropColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			crop.ID, crop.FarmID, crop.PlotID, crop.Name, crop.Variety,
			encodeTime(crop.PlantingDate), encodeTimePtr(crop.ExpectedHarvestDate),
			string(crop.Status), encodeTimePtr(crop.FertilizerStageDate),
			crop.PesticideIntervalDays, encodeTimePtr(crop.LastPesticideDate),
			string(crop.SyncStatus), encodeTime(crop.CreatedAt), encodeTime(crop.UpdatedAt))
		return err
	case "inventory_items":
		var item domain.InventoryItem
		if err := json.Unmarshal(snapshot, &item); err != nil {
			return fmt.Errorf("failed to decode item snapshot: %w", err)
		}
		item.ID = recordID
		item.SyncStatus = status
		_, err := tx.ExecContext(ctx,
			`INSERT INTO inventory_items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.FarmID, item.Name, string(item.Category), string(item.Unit),
			item.MinThreshold, item.Description, string(item.SyncStatus),
			encodeTime(item.CreatedAt), encodeTime(item.UpdatedAt))
		return err
	case "stock_logs":
		var log domain.StockLog
		if err := json.Unmarshal(snapshot, &log); err != nil {
			return fmt.Errorf("failed to decode stock log snapshot: %w", err)
		}
		log.ID = recordID
		log.SyncStatus = status
		_, err := tx.ExecContext(ctx,
			`INSERT INTO stock_logs (`+stockLogColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			log.ID, log.FarmID, log.ItemID, string(log.Type), log.Quantity,
			encodeTime(log.Date), log.BatchNumber, encodeTimePtr(log.ExpiryDate),
			log.PurchasePrice, log.SupplierID, log.Notes, string(log.SyncStatus),
			encodeTime(log.CreatedAt), encodeTime(log.UpdatedAt))
		return err
	case "field_usage_logs":
		var log domain.FieldUsageLog
		if err := json.Unmarshal(snapshot, &log); err != nil {
			return fmt.Errorf("failed to decode usage log snapshot: %w", err)
		}
		log.ID = recordID
		log.SyncStatus = status
		_, err := tx.ExecContext(ctx,
			`INSERT INTO field_usage_logs (`+usageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			log.ID, log.FarmID, log.PlotID, log.CropID, log.ItemID, log.QuantityUsed,
			encodeTime(log.UsageDate), log.UsageTime, string(log.ApplicationMethod),
			log.RainProbability, log.WeatherCondition, log.Temperature, log.Notes,
			string(log.SyncStatus), encodeTime(log.CreatedAt), encodeTime(log.UpdatedAt))
		return err
	case "expenses":
		var expense domain.Expense
		if err := json.Unmarshal(snapshot, &expense); err != nil {
			return fmt.Errorf("failed to decode expense snapshot: %w", err)
		}
		expense.ID = recordID
		expense.SyncStatus = status
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			expense.ID, expense.FarmID, expense.ItemID, string(expense.Category),
			expense.Amount, encodeTime(expense.Date), expense.SupplierID,
			expense.Description, expense.ReceiptPhotoURL, string(expense.SyncStatus),
			encodeTime(expense.CreatedAt), encodeTime(expense.UpdatedAt))
		return err
	case "suppliers":
		var supplier domain.Supplier
		if err := json.Unmarshal(snapshot, &supplier); err != nil {
			return fmt.Errorf("failed to decode supplier snapshot: %w", err)
		}
		supplier.ID = recordID
		supplier.SyncStatus = status
		_, err := tx.ExecContext(ctx,
			`INSERT INTO suppliers (`+supplierColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			supplier.ID, supplier.FarmID, supplier.Name, supplier.Contact,
			supplier.Email, supplier.Address, supplier.Rating, string(supplier.SyncStatus),
			encodeTime(supplier.CreatedAt), encodeTime(supplier.UpdatedAt))
		return err
	}
	return fmt.Errorf("%w: %s", domain.ErrUnknownTable, table)
}
