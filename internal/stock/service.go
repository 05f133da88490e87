// Package stock implements the inventory ledger: item metadata plus an
// append-only movement log that quantities are folded from on demand.
package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/agridesk/fieldbook/internal/clock"
	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/event"
	"github.com/agridesk/fieldbook/internal/logger"
	"github.com/agridesk/fieldbook/internal/repository"
)

const (
	itemCacheSize = 512
	itemCacheTTL  = 5 * time.Minute
)

// Syncer queues a local mutation for delivery to the remote authority.
// Implemented by the sync service; declared here so stock does not
// depend on the sync package.
type Syncer interface {
	EnqueueMutation(ctx context.Context, farmID, table, recordID string, op domain.SyncOperation, record any) error
}

// Service defines the stock ledger business logic
type Service interface {
	// CreateItem registers a new inventory item and queues it for sync
	CreateItem(ctx context.Context, item *domain.InventoryItem) error

	// UpdateItem updates item metadata and queues the change for sync
	UpdateItem(ctx context.Context, item *domain.InventoryItem) error

	// GetItem returns item metadata, possibly cached
	GetItem(ctx context.Context, farmID, itemID string) (*domain.InventoryItem, error)

	ListItems(ctx context.Context, farmID string) ([]domain.InventoryItem, error)

	// RecordMovement appends one movement to the ledger. Out movements
	// that would drive the quantity negative are rejected.
	RecordMovement(ctx context.Context, log *domain.StockLog) error

	// CurrentStock folds the full movement log for one item
	CurrentStock(ctx context.Context, farmID, itemID string) (*domain.CurrentStock, error)

	// CurrentStockAll folds the movement log for every item of a farm
	CurrentStockAll(ctx context.Context, farmID string) ([]domain.CurrentStock, error)

	ListMovements(ctx context.Context, farmID, itemID string) ([]domain.StockLog, error)
}

type service struct {
	repo   repository.Inventory
	syncer Syncer
	bus    event.Bus
	clk    clock.Clock

	// itemCache holds item metadata only. Quantities are never cached:
	// they are recomputed from the ledger on every read.
	itemCache *expirable.LRU[string, domain.InventoryItem]
}

// NewService creates a new stock ledger service
func NewService(repo repository.Inventory, syncer Syncer, bus event.Bus, clk clock.Clock) Service {
	return &service{
		repo:      repo,
		syncer:    syncer,
		bus:       bus,
		clk:       clk,
		itemCache: expirable.NewLRU[string, domain.InventoryItem](itemCacheSize, nil, itemCacheTTL),
	}
}

func cacheKey(farmID, itemID string) string {
	return farmID + "/" + itemID
}

func (s *service) CreateItem(ctx context.Context, item *domain.InventoryItem) error {
	log := logger.FromContext(ctx)

	if item.Name == "" || item.FarmID == "" {
		return fmt.Errorf("%w: item name and farm id are required", domain.ErrInvalidInput)
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := s.clk.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	item.SyncStatus = domain.SyncStatusPending

	if err := s.repo.InsertItem(ctx, item); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	if err := s.syncer.EnqueueMutation(ctx, item.FarmID, "inventory_items", item.ID, domain.SyncOpCreate, item); err != nil {
		return fmt.Errorf("failed to queue item for sync: %w", err)
	}

	log.Info(LogMsgItemCreated, "farmID", item.FarmID, "itemID", item.ID, "name", item.Name)
	return nil
}

func (s *service) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	log := logger.FromContext(ctx)

	item.UpdatedAt = s.clk.Now().UTC()
	item.SyncStatus = domain.SyncStatusPending

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return err
	}
	s.itemCache.Remove(cacheKey(item.FarmID, item.ID))

	if err := s.syncer.EnqueueMutation(ctx, item.FarmID, "inventory_items", item.ID, domain.SyncOpUpdate, item); err != nil {
		return fmt.Errorf("failed to queue item for sync: %w", err)
	}

	log.Info(LogMsgItemUpdated, "farmID", item.FarmID, "itemID", item.ID)
	return nil
}

func (s *service) GetItem(ctx context.Context, farmID, itemID string) (*domain.InventoryItem, error) {
	if cached, ok := s.itemCache.Get(cacheKey(farmID, itemID)); ok {
		return &cached, nil
	}

	item, err := s.repo.GetItemByID(ctx, farmID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	s.itemCache.Add(cacheKey(farmID, itemID), *item)
	return item, nil
}

func (s *service) ListItems(ctx context.Context, farmID string) ([]domain.InventoryItem, error) {
	return s.repo.ListItems(ctx, farmID)
}

func (s *service) RecordMovement(ctx context.Context, entry *domain.StockLog) error {
	log := logger.FromContext(ctx)

	if entry.Quantity <= 0 {
		return fmt.Errorf("%w: got %v", domain.ErrInvalidQuantity, entry.Quantity)
	}
	if entry.Type != domain.MovementIn && entry.Type != domain.MovementOut {
		return fmt.Errorf("%w: %q", domain.ErrInvalidMovement, entry.Type)
	}

	item, err := s.GetItem(ctx, entry.FarmID, entry.ItemID)
	if err != nil {
		return err
	}

	if entry.Type == domain.MovementOut {
		current, err := s.CurrentStock(ctx, entry.FarmID, entry.ItemID)
		if err != nil {
			return err
		}
		if entry.Quantity > current.CurrentQuantity {
			return fmt.Errorf("%w: have %v %s, requested %v",
				domain.ErrInsufficientStock, current.CurrentQuantity, item.Unit, entry.Quantity)
		}
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := s.clk.Now().UTC()
	if entry.Date.IsZero() {
		entry.Date = now
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now
	entry.SyncStatus = domain.SyncStatusPending

	if err := s.repo.InsertStockLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to record movement: %w", err)
	}
	if err := s.syncer.EnqueueMutation(ctx, entry.FarmID, "stock_logs", entry.ID, domain.SyncOpCreate, entry); err != nil {
		return fmt.Errorf("failed to queue movement for sync: %w", err)
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewMovementRecordedEvent(entry.FarmID, entry.ItemID, entry.Type, entry.Quantity)); err != nil {
			log.Warn(LogMsgEventPublishFailed, "error", err)
		}
	}

	log.Info(LogMsgMovementRecorded,
		"farmID", entry.FarmID, "itemID", entry.ItemID, "type", entry.Type, "quantity", entry.Quantity)
	return nil
}

func (s *service) CurrentStock(ctx context.Context, farmID, itemID string) (*domain.CurrentStock, error) {
	item, err := s.GetItem(ctx, farmID, itemID)
	if err != nil {
		return nil, err
	}

	logs, err := s.repo.ListStockLogsForItem(ctx, farmID, itemID)
	if err != nil {
		return nil, err
	}

	stock := fold(*item, logs)
	return &stock, nil
}

func (s *service) CurrentStockAll(ctx context.Context, farmID string) ([]domain.CurrentStock, error) {
	items, err := s.repo.ListItems(ctx, farmID)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.ListStockLogs(ctx, farmID)
	if err != nil {
		return nil, err
	}

	byItem := make(map[string][]domain.StockLog, len(items))
	for _, entry := range logs {
		byItem[entry.ItemID] = append(byItem[entry.ItemID], entry)
	}

	stocks := make([]domain.CurrentStock, 0, len(items))
	for _, item := range items {
		stocks = append(stocks, fold(item, byItem[item.ID]))
	}
	return stocks, nil
}

func (s *service) ListMovements(ctx context.Context, farmID, itemID string) ([]domain.StockLog, error) {
	return s.repo.ListStockLogsForItem(ctx, farmID, itemID)
}

// fold reduces a movement log to the item's current position. The
// result is derived state: it holds for exactly as long as no new
// movement lands, so callers must not persist it.
func fold(item domain.InventoryItem, logs []domain.StockLog) domain.CurrentStock {
	var quantity float64
	for _, entry := range logs {
		switch entry.Type {
		case domain.MovementIn:
			quantity += entry.Quantity
		case domain.MovementOut:
			quantity -= entry.Quantity
		}
	}

	return domain.CurrentStock{
		ItemID:          item.ID,
		ItemName:        item.Name,
		Category:        item.Category,
		Unit:            item.Unit,
		CurrentQuantity: quantity,
		MinThreshold:    item.MinThreshold,
		IsLowStock:      quantity <= item.MinThreshold,
	}
}
