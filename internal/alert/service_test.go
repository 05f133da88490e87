package alert_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agridesk/fieldbook/internal/alert"
	"github.com/agridesk/fieldbook/internal/clock"
	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/event"
)

type MockAlertsRepo struct {
	mock.Mock
}

func (m *MockAlertsRepo) InsertIfAbsent(ctx context.Context, a *domain.Alert) (bool, error) {
	args := m.Called(ctx, a)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertsRepo) ListUnread(ctx context.Context, farmID string) ([]domain.Alert, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *MockAlertsRepo) ListRecent(ctx context.Context, farmID string, limit int) ([]domain.Alert, error) {
	args := m.Called(ctx, farmID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *MockAlertsRepo) CountUnread(ctx context.Context, farmID string) (int, error) {
	args := m.Called(ctx, farmID)
	return args.Int(0), args.Error(1)
}

func (m *MockAlertsRepo) MarkRead(ctx context.Context, alertID string) error {
	return m.Called(ctx, alertID).Error(0)
}

type MockCropsRepo struct {
	mock.Mock
}

func (m *MockCropsRepo) GetCropByID(ctx context.Context, farmID, cropID string) (*domain.Crop, error) {
	args := m.Called(ctx, farmID, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crop), args.Error(1)
}

func (m *MockCropsRepo) ListActiveCrops(ctx context.Context, farmID string) ([]domain.Crop, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Crop), args.Error(1)
}

func (m *MockCropsRepo) InsertCrop(ctx context.Context, crop *domain.Crop) error {
	return m.Called(ctx, crop).Error(0)
}

func (m *MockCropsRepo) UpdateCrop(ctx context.Context, crop *domain.Crop) error {
	return m.Called(ctx, crop).Error(0)
}

func (m *MockCropsRepo) CountPlots(ctx context.Context, farmID string) (int, error) {
	args := m.Called(ctx, farmID)
	return args.Int(0), args.Error(1)
}

func (m *MockCropsRepo) InsertPlot(ctx context.Context, plot *domain.Plot) error {
	return m.Called(ctx, plot).Error(0)
}

func (m *MockCropsRepo) ListPlots(ctx context.Context, farmID string) ([]domain.Plot, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plot), args.Error(1)
}

type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) GetItemByID(ctx context.Context, farmID, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, farmID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepo) ListItems(ctx context.Context, farmID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepo) InsertItem(ctx context.Context, item *domain.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepo) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepo) InsertStockLog(ctx context.Context, log *domain.StockLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockInventoryRepo) ListStockLogsForItem(ctx context.Context, farmID, itemID string) ([]domain.StockLog, error) {
	args := m.Called(ctx, farmID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLog), args.Error(1)
}

func (m *MockInventoryRepo) ListStockLogs(ctx context.Context, farmID string) ([]domain.StockLog, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLog), args.Error(1)
}

type MockStockReader struct {
	mock.Mock
}

func (m *MockStockReader) CurrentStockAll(ctx context.Context, farmID string) ([]domain.CurrentStock, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrentStock), args.Error(1)
}

func quietFarm(stocks []domain.CurrentStock, crops []domain.Crop) (*MockStockReader, *MockCropsRepo, *MockInventoryRepo) {
	stockReader := new(MockStockReader)
	stockReader.On("CurrentStockAll", mock.Anything, "farm-1").Return(stocks, nil)

	cropsRepo := new(MockCropsRepo)
	cropsRepo.On("ListActiveCrops", mock.Anything, "farm-1").Return(crops, nil)

	inventoryRepo := new(MockInventoryRepo)
	inventoryRepo.On("ListStockLogs", mock.Anything, "farm-1").Return([]domain.StockLog{}, nil)

	return stockReader, cropsRepo, inventoryRepo
}

// TestCheckAllAlerts_InsertsLowStockOnce checks that a condition that
// persists across passes only produces one unread alert.
func TestCheckAllAlerts_InsertsLowStockOnce(t *testing.T) {
	stocks := []domain.CurrentStock{
		{ItemID: "item-1", ItemName: "DAP", CurrentQuantity: 5, MinThreshold: 10, IsLowStock: true, Unit: domain.UnitKG},
	}
	stockReader, cropsRepo, inventoryRepo := quietFarm(stocks, []domain.Crop{})

	alertsRepo := new(MockAlertsRepo)
	// First pass inserts, second pass hits the dedup guard
	alertsRepo.On("InsertIfAbsent", mock.Anything, mock.Anything).Return(true, nil).Once()
	alertsRepo.On("InsertIfAbsent", mock.Anything, mock.Anything).Return(false, nil).Once()

	clk := clock.Fixed(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC))
	svc := alert.NewService(alertsRepo, cropsRepo, inventoryRepo, stockReader, event.NewMemoryBus(), clk)
	ctx := context.Background()

	raised, err := svc.CheckAllAlerts(ctx, "farm-1")
	require.NoError(t, err)
	require.Len(t, raised, 1)
	assert.Equal(t, domain.AlertLowStock, raised[0].Type)
	assert.Equal(t, "item-1", raised[0].RelatedID)

	raised, err = svc.CheckAllAlerts(ctx, "farm-1")
	require.NoError(t, err)
	assert.Empty(t, raised, "second pass must be deduplicated")
	alertsRepo.AssertExpectations(t)
}

func TestCheckAllAlerts_RuleFailureDoesNotAbortPass(t *testing.T) {
	stockReader := new(MockStockReader)
	stockReader.On("CurrentStockAll", mock.Anything, "farm-1").
		Return(nil, assert.AnError)

	crops := []domain.Crop{{
		ID:                  "crop-1",
		FarmID:              "farm-1",
		Name:                "Tomato",
		Status:              domain.CropStatusGrowing,
		FertilizerStageDate: timePtr(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
	}}
	cropsRepo := new(MockCropsRepo)
	cropsRepo.On("ListActiveCrops", mock.Anything, "farm-1").Return(crops, nil)

	inventoryRepo := new(MockInventoryRepo)
	inventoryRepo.On("ListStockLogs", mock.Anything, "farm-1").Return([]domain.StockLog{}, nil)

	alertsRepo := new(MockAlertsRepo)
	alertsRepo.On("InsertIfAbsent", mock.Anything, mock.Anything).Return(true, nil)

	clk := clock.Fixed(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	svc := alert.NewService(alertsRepo, cropsRepo, inventoryRepo, stockReader, event.NewMemoryBus(), clk)

	raised, err := svc.CheckAllAlerts(context.Background(), "farm-1")
	require.NoError(t, err)
	// The stock rule failed but the fertilizer rule still fired
	require.Len(t, raised, 1)
	assert.Equal(t, domain.AlertFertilizerStage, raised[0].Type)
}

func TestCheckAllAlerts_SkipsOrphanedMovements(t *testing.T) {
	stockReader := new(MockStockReader)
	stockReader.On("CurrentStockAll", mock.Anything, "farm-1").Return([]domain.CurrentStock{}, nil)

	cropsRepo := new(MockCropsRepo)
	cropsRepo.On("ListActiveCrops", mock.Anything, "farm-1").Return([]domain.Crop{}, nil)

	expiry := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	movements := []domain.StockLog{{
		ID:         "m1",
		FarmID:     "farm-1",
		ItemID:     "gone",
		Type:       domain.MovementIn,
		ExpiryDate: &expiry,
	}}
	inventoryRepo := new(MockInventoryRepo)
	inventoryRepo.On("ListStockLogs", mock.Anything, "farm-1").Return(movements, nil)
	inventoryRepo.On("GetItemByID", mock.Anything, "farm-1", "gone").Return(nil, nil)

	alertsRepo := new(MockAlertsRepo)

	clk := clock.Fixed(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	svc := alert.NewService(alertsRepo, cropsRepo, inventoryRepo, stockReader, event.NewMemoryBus(), clk)

	raised, err := svc.CheckAllAlerts(context.Background(), "farm-1")
	require.NoError(t, err)
	assert.Empty(t, raised)
	alertsRepo.AssertNotCalled(t, "InsertIfAbsent", mock.Anything, mock.Anything)
}

func timePtr(t time.Time) *time.Time { return &t }
