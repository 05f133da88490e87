package repository

import (
	"context"

	"github.com/agridesk/fieldbook/internal/domain"
)

// Inventory defines persistence for inventory items and the append-only
// stock movement ledger
type Inventory interface {
	GetItemByID(ctx context.Context, farmID, itemID string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context, farmID string) ([]domain.InventoryItem, error)
	InsertItem(ctx context.Context, item *domain.InventoryItem) error
	UpdateItem(ctx context.Context, item *domain.InventoryItem) error

	// Stock ledger operations. Movements are immutable once inserted.
	InsertStockLog(ctx context.Context, log *domain.StockLog) error
	ListStockLogsForItem(ctx context.Context, farmID, itemID string) ([]domain.StockLog, error)
	ListStockLogs(ctx context.Context, farmID string) ([]domain.StockLog, error)
}
