package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/repository"
)

type expensesRepository struct {
	db *sql.DB
}

// NewExpensesRepository creates a sqlite-backed expenses and suppliers
// repository
func NewExpensesRepository(db *sql.DB) repository.Expenses {
	return &expensesRepository{db: db}
}

const expenseColumns = `expense_id, farm_id, item_id, category, amount, date, supplier_id, description, receipt_photo_url, sync_status, created_at, updated_at`

func (r *expensesRepository) InsertExpense(ctx context.Context, expense *domain.Expense) error {
	query := `INSERT INTO expenses (` + expenseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		expense.ID, expense.FarmID, expense.ItemID, string(expense.Category),
		expense.Amount, encodeTime(expense.Date), expense.SupplierID,
		expense.Description, expense.ReceiptPhotoURL, string(expense.SyncStatus),
		encodeTime(expense.CreatedAt), encodeTime(expense.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func (r *expensesRepository) MonthlyTotal(ctx context.Context, farmID string, t time.Time) (float64, error) {
	monthStart := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE farm_id = ? AND date >= ? AND date < ?`

	var total float64
	err := r.db.QueryRowContext(ctx, query, farmID, encodeTime(monthStart), encodeTime(nextMonth)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum monthly expenses: %w", err)
	}
	return total, nil
}

const supplierColumns = `supplier_id, farm_id, name, contact, email, address, rating, sync_status, created_at, updated_at`

func (r *expensesRepository) InsertSupplier(ctx context.Context, supplier *domain.Supplier) error {
	query := `INSERT INTO suppliers (` + supplierColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		supplier.ID, supplier.FarmID, supplier.Name, supplier.Contact,
		supplier.Email, supplier.Address, supplier.Rating, string(supplier.SyncStatus),
		encodeTime(supplier.CreatedAt), encodeTime(supplier.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert supplier: %w", err)
	}
	return nil
}

func (r *expensesRepository) ListSuppliers(ctx context.Context, farmID string) ([]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE farm_id = ? ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, *supplier)
	}
	return suppliers, rows.Err()
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var expense domain.Expense
	var category, date, syncStatus, createdAt, updatedAt string

	err := row.Scan(&expense.ID, &expense.FarmID, &expense.ItemID, &category,
		&expense.Amount, &date, &expense.SupplierID, &expense.Description,
		&expense.ReceiptPhotoURL, &syncStatus, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	expense.Category = domain.ExpenseCategory(category)
	expense.SyncStatus = domain.SyncStatus(syncStatus)
	if expense.Date, err = decodeTime(date); err != nil {
		return nil, err
	}
	if expense.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if expense.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &expense, nil
}

func scanSupplier(row rowScanner) (*domain.Supplier, error) {
	var supplier domain.Supplier
	var syncStatus, createdAt, updatedAt string

	err := row.Scan(&supplier.ID, &supplier.FarmID, &supplier.Name, &supplier.Contact,
		&supplier.Email, &supplier.Address, &supplier.Rating, &syncStatus, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	supplier.SyncStatus = domain.SyncStatus(syncStatus)
	if supplier.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if supplier.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &supplier, nil
}
