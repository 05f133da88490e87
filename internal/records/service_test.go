package records_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agridesk/fieldbook/internal/clock"
	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/records"
)

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

type MockExpensesRepo struct {
	mock.Mock
}

func (m *MockExpensesRepo) InsertExpense(ctx context.Context, expense *domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpensesRepo) MonthlyTotal(ctx context.Context, farmID string, t time.Time) (float64, error) {
	args := m.Called(ctx, farmID, t)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockExpensesRepo) InsertSupplier(ctx context.Context, supplier *domain.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockExpensesRepo) ListSuppliers(ctx context.Context, farmID string) ([]domain.Supplier, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) EnqueueMutation(ctx context.Context, farmID, table, recordID string, op domain.SyncOperation, record any) error {
	return m.Called(ctx, farmID, table, recordID, op, record).Error(0)
}

func TestCreatePlot(t *testing.T) {
	crops := new(MockCropsRepo)
	expenses := new(MockExpensesRepo)
	syncer := new(MockSyncer)
	svc := records.NewService(crops, expenses, syncer, clock.System())

	plot := &domain.Plot{FarmID: "farm-1", Name: "North field", SizeAcres: 4.5}
	crops.On("InsertPlot", mock.Anything, plot).Return(nil)
	syncer.On("EnqueueMutation", mock.Anything, "farm-1", "plots", mock.AnythingOfType("string"), domain.SyncOpCreate, plot).Return(nil)

	err := svc.CreatePlot(context.Background(), plot)
	require.NoError(t, err)

	assert.NotEmpty(t, plot.ID)
	assert.Equal(t, domain.SyncStatusPending, plot.SyncStatus)
	assert.False(t, plot.CreatedAt.IsZero())
	crops.AssertExpectations(t)
	syncer.AssertExpectations(t)
}

func TestCreatePlot_MissingName(t *testing.T) {
	crops := new(MockCropsRepo)
	svc := records.NewService(crops, new(MockExpensesRepo), new(MockSyncer), clock.System())

	err := svc.CreatePlot(context.Background(), &domain.Plot{FarmID: "farm-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	crops.AssertNotCalled(t, "InsertPlot", mock.Anything, mock.Anything)
}

func TestCreateCrop_DefaultsToPlanted(t *testing.T) {
	crops := new(MockCropsRepo)
	syncer := new(MockSyncer)
	svc := records.NewService(crops, new(MockExpensesRepo), syncer, clock.System())

	crop := &domain.Crop{FarmID: "farm-1", PlotID: "plot-1", Name: "Wheat"}
	crops.On("InsertCrop", mock.Anything, crop).Return(nil)
	syncer.On("EnqueueMutation", mock.Anything, "farm-1", "crops", mock.AnythingOfType("string"), domain.SyncOpCreate, crop).Return(nil)

	err := svc.CreateCrop(context.Background(), crop)
	require.NoError(t, err)

	assert.Equal(t, domain.CropStatusPlanted, crop.Status)
	assert.Equal(t, domain.SyncStatusPending, crop.SyncStatus)
	syncer.AssertExpectations(t)
}

func TestUpdateCrop_QueuesUpdateOperation(t *testing.T) {
	crops := new(MockCropsRepo)
	syncer := new(MockSyncer)
	svc := records.NewService(crops, new(MockExpensesRepo), syncer, clock.System())

	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	existing := &domain.Crop{ID: "crop-1", FarmID: "farm-1", Name: "Wheat", Status: domain.CropStatusPlanted, CreatedAt: created}
	crops.On("GetCropByID", mock.Anything, "farm-1", "crop-1").Return(existing, nil)

	updated := &domain.Crop{ID: "crop-1", FarmID: "farm-1", Name: "Wheat", Status: domain.CropStatusGrowing}
	crops.On("UpdateCrop", mock.Anything, updated).Return(nil)
	syncer.On("EnqueueMutation", mock.Anything, "farm-1", "crops", "crop-1", domain.SyncOpUpdate, updated).Return(nil)

	err := svc.UpdateCrop(context.Background(), updated)
	require.NoError(t, err)

	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, domain.SyncStatusPending, updated.SyncStatus)
	crops.AssertExpectations(t)
	syncer.AssertExpectations(t)
}

func TestUpdateCrop_NotFound(t *testing.T) {
	crops := new(MockCropsRepo)
	syncer := new(MockSyncer)
	svc := records.NewService(crops, new(MockExpensesRepo), syncer, clock.System())

	crops.On("GetCropByID", mock.Anything, "farm-1", "missing").Return(nil, nil)

	err := svc.UpdateCrop(context.Background(), &domain.Crop{ID: "missing", FarmID: "farm-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCropNotFound)
	syncer.AssertNotCalled(t, "EnqueueMutation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateExpense(t *testing.T) {
	expenses := new(MockExpensesRepo)
	syncer := new(MockSyncer)
	svc := records.NewService(new(MockCropsRepo), expenses, syncer, clock.System())

	expense := &domain.Expense{FarmID: "farm-1", Category: domain.ExpenseFertilizers, Amount: 120.50}
	expenses.On("InsertExpense", mock.Anything, expense).Return(nil)
	syncer.On("EnqueueMutation", mock.Anything, "farm-1", "expenses", mock.AnythingOfType("string"), domain.SyncOpCreate, expense).Return(nil)

	err := svc.CreateExpense(context.Background(), expense)
	require.NoError(t, err)

	assert.False(t, expense.Date.IsZero())
	assert.Equal(t, domain.SyncStatusPending, expense.SyncStatus)
	expenses.AssertExpectations(t)
}

func TestCreateExpense_RejectsNonPositiveAmount(t *testing.T) {
	expenses := new(MockExpensesRepo)
	svc := records.NewService(new(MockCropsRepo), expenses, new(MockSyncer), clock.System())

	for _, amount := range []float64{0, -3} {
		err := svc.CreateExpense(context.Background(), &domain.Expense{FarmID: "farm-1", Amount: amount})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	expenses.AssertNotCalled(t, "InsertExpense", mock.Anything, mock.Anything)
}

func TestCreateSupplier(t *testing.T) {
	expenses := new(MockExpensesRepo)
	syncer := new(MockSyncer)
	svc := records.NewService(new(MockCropsRepo), expenses, syncer, clock.System())

	supplier := &domain.Supplier{FarmID: "farm-1", Name: "AgroSupply Ltd", Rating: 4}
	expenses.On("InsertSupplier", mock.Anything, supplier).Return(nil)
	syncer.On("EnqueueMutation", mock.Anything, "farm-1", "suppliers", mock.AnythingOfType("string"), domain.SyncOpCreate, supplier).Return(nil)

	err := svc.CreateSupplier(context.Background(), supplier)
	require.NoError(t, err)
	assert.NotEmpty(t, supplier.ID)
	expenses.AssertExpectations(t)
}

func TestListSuppliers(t *testing.T) {
	expenses := new(MockExpensesRepo)
	svc := records.NewService(new(MockCropsRepo), expenses, new(MockSyncer), clock.System())

	want := []domain.Supplier{{ID: "sup-1", Name: "AgroSupply Ltd"}}
	expenses.On("ListSuppliers", mock.Anything, "farm-1").Return(want, nil)

	got, err := svc.ListSuppliers(context.Background(), "farm-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCreatePlot_UsesInjectedClock(t *testing.T) {
	crops := new(MockCropsRepo)
	syncer := new(MockSyncer)

	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	svc := records.NewService(crops, new(MockExpensesRepo), syncer, clock.Fixed(at))

	plot := &domain.Plot{FarmID: "farm-1", Name: "North field"}
	crops.On("InsertPlot", mock.Anything, plot).Return(nil)
	syncer.On("EnqueueMutation", mock.Anything, "farm-1", "plots", mock.AnythingOfType("string"), domain.SyncOpCreate, plot).Return(nil)

	require.NoError(t, svc.CreatePlot(context.Background(), plot))

	assert.Equal(t, at, plot.CreatedAt)
	assert.Equal(t, at, plot.UpdatedAt)
}
