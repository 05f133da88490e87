// Package records implements the plain farm record types (plots, crops,
// expenses, suppliers): each write lands in the local store and is
// queued for sync in the same way the ledger and usage writes are.
package records

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agridesk/fieldbook/internal/clock"
	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/logger"
	"github.com/agridesk/fieldbook/internal/repository"
	"github.com/agridesk/fieldbook/internal/stock"
)

// Service defines record management for plots, crops, expenses and
// suppliers
type Service interface {
	CreatePlot(ctx context.Context, plot *domain.Plot) error
	ListPlots(ctx context.Context, farmID string) ([]domain.Plot, error)

	CreateCrop(ctx context.Context, crop *domain.Crop) error
	// UpdateCrop replaces the mutable fields of an existing crop and
	// queues the new snapshot for sync.
	UpdateCrop(ctx context.Context, crop *domain.Crop) error
	GetCrop(ctx context.Context, farmID, cropID string) (*domain.Crop, error)
	ListActiveCrops(ctx context.Context, farmID string) ([]domain.Crop, error)

	CreateExpense(ctx context.Context, expense *domain.Expense) error

	CreateSupplier(ctx context.Context, supplier *domain.Supplier) error
	ListSuppliers(ctx context.Context, farmID string) ([]domain.Supplier, error)
}

type service struct {
	crops    repository.Crops
	expenses repository.Expenses
	syncer   stock.Syncer
	clk      clock.Clock
}

// NewService creates a new farm records service
func NewService(crops repository.Crops, expenses repository.Expenses, syncer stock.Syncer, clk clock.Clock) Service {
	return &service{
		crops:    crops,
		expenses: expenses,
		syncer:   syncer,
		clk:      clk,
	}
}

// stamp fills identity and bookkeeping fields shared by every new record
func (s *service) stamp(id *string, createdAt, updatedAt *time.Time, status *domain.SyncStatus) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := s.clk.Now().UTC()
	*createdAt = now
	*updatedAt = now
	*status = domain.SyncStatusPending
}

func (s *service) CreatePlot(ctx context.Context, plot *domain.Plot) error {
	if plot.Name == "" {
		return fmt.Errorf("%w: plot name is required", domain.ErrInvalidInput)
	}
	s.stamp(&plot.ID, &plot.CreatedAt, &plot.UpdatedAt, &plot.SyncStatus)

	if err := s.crops.InsertPlot(ctx, plot); err != nil {
		return fmt.Errorf("failed to create plot: %w", err)
	}
	if err := s.syncer.EnqueueMutation(ctx, plot.FarmID, tablePlots, plot.ID, domain.SyncOpCreate, plot); err != nil {
		return fmt.Errorf("failed to queue plot for sync: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgPlotCreated, "farmID", plot.FarmID, "plotID", plot.ID)
	return nil
}

func (s *service) ListPlots(ctx context.Context, farmID string) ([]domain.Plot, error) {
	return s.crops.ListPlots(ctx, farmID)
}

func (s *service) CreateCrop(ctx context.Context, crop *domain.Crop) error {
	if crop.Name == "" {
		return fmt.Errorf("%w: crop name is required", domain.ErrInvalidInput)
	}
	if crop.Status == "" {
		crop.Status = domain.CropStatusPlanted
	}
	s.stamp(&crop.ID, &crop.CreatedAt, &crop.UpdatedAt, &crop.SyncStatus)

	if err := s.crops.InsertCrop(ctx, crop); err != nil {
		return fmt.Errorf("failed to create crop: %w", err)
	}
	if err := s.syncer.EnqueueMutation(ctx, crop.FarmID, tableCrops, crop.ID, domain.SyncOpCreate, crop); err != nil {
		return fmt.Errorf("failed to queue crop for sync: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgCropCreated, "farmID", crop.FarmID, "cropID", crop.ID, "plotID", crop.PlotID)
	return nil
}

func (s *service) UpdateCrop(ctx context.Context, crop *domain.Crop) error {
	existing, err := s.crops.GetCropByID(ctx, crop.FarmID, crop.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", domain.ErrCropNotFound, crop.ID)
	}

	crop.CreatedAt = existing.CreatedAt
	crop.UpdatedAt = s.clk.Now().UTC()
	crop.SyncStatus = domain.SyncStatusPending

	if err := s.crops.UpdateCrop(ctx, crop); err != nil {
		return fmt.Errorf("failed to update crop: %w", err)
	}
	if err := s.syncer.EnqueueMutation(ctx, crop.FarmID, tableCrops, crop.ID, domain.SyncOpUpdate, crop); err != nil {
		return fmt.Errorf("failed to queue crop update for sync: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgCropUpdated, "farmID", crop.FarmID, "cropID", crop.ID, "status", crop.Status)
	return nil
}

func (s *service) GetCrop(ctx context.Context, farmID, cropID string) (*domain.Crop, error) {
	crop, err := s.crops.GetCropByID(ctx, farmID, cropID)
	if err != nil {
		return nil, err
	}
	if crop == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCropNotFound, cropID)
	}
	return crop, nil
}

func (s *service) ListActiveCrops(ctx context.Context, farmID string) ([]domain.Crop, error) {
	return s.crops.ListActiveCrops(ctx, farmID)
}

func (s *service) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	if expense.Amount <= 0 {
		return fmt.Errorf("%w: expense amount must be positive, got %v", domain.ErrInvalidInput, expense.Amount)
	}
	if expense.Date.IsZero() {
		expense.Date = s.clk.Now().UTC()
	}
	s.stamp(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt, &expense.SyncStatus)

	if err := s.expenses.InsertExpense(ctx, expense); err != nil {
		return fmt.Errorf("failed to record expense: %w", err)
	}
	if err := s.syncer.EnqueueMutation(ctx, expense.FarmID, tableExpenses, expense.ID, domain.SyncOpCreate, expense); err != nil {
		return fmt.Errorf("failed to queue expense for sync: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgExpenseRecorded,
		"farmID", expense.FarmID, "category", expense.Category, "amount", expense.Amount)
	return nil
}

func (s *service) CreateSupplier(ctx context.Context, supplier *domain.Supplier) error {
	if supplier.Name == "" {
		return fmt.Errorf("%w: supplier name is required", domain.ErrInvalidInput)
	}
	s.stamp(&supplier.ID, &supplier.CreatedAt, &supplier.UpdatedAt, &supplier.SyncStatus)

	if err := s.expenses.InsertSupplier(ctx, supplier); err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	if err := s.syncer.EnqueueMutation(ctx, supplier.FarmID, tableSuppliers, supplier.ID, domain.SyncOpCreate, supplier); err != nil {
		return fmt.Errorf("failed to queue supplier for sync: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgSupplierCreated, "farmID", supplier.FarmID, "supplierID", supplier.ID)
	return nil
}

func (s *service) ListSuppliers(ctx context.Context, farmID string) ([]domain.Supplier, error) {
	return s.expenses.ListSuppliers(ctx, farmID)
}
