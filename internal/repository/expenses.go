package repository

import (
	"context"
	"time"

	"github.com/agridesk/fieldbook/internal/domain"
)

// Expenses defines persistence for expenses and suppliers
type Expenses interface {
	InsertExpense(ctx context.Context, expense *domain.Expense) error
	// MonthlyTotal sums expense amounts for the calendar month containing t.
	MonthlyTotal(ctx context.Context, farmID string, t time.Time) (float64, error)

	InsertSupplier(ctx context.Context, supplier *domain.Supplier) error
	ListSuppliers(ctx context.Context, farmID string) ([]domain.Supplier, error)
}
