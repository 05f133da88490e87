// Package usage implements field application records: each entry spends
// inventory, so recording one also appends an out movement to the stock
// ledger.
package usage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agridesk/fieldbook/internal/alert"
	"github.com/agridesk/fieldbook/internal/clock"
	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/logger"
	"github.com/agridesk/fieldbook/internal/repository"
	"github.com/agridesk/fieldbook/internal/stock"
)

// Result is everything a usage entry produced: the log itself, the
// ledger movement it spent, a transient rain advisory when the reported
// probability is high, and any persisted alerts the entry triggered.
type Result struct {
	Log          *domain.FieldUsageLog `json:"log"`
	Movement     *domain.StockLog      `json:"movement"`
	RainAdvisory *domain.Alert         `json:"rain_advisory,omitempty"`
	AlertsRaised []domain.Alert        `json:"alerts_raised,omitempty"`
}

// Service defines the field usage business logic
type Service interface {
	// RecordUsage validates availability, persists the usage log, spends
	// the stock, and evaluates alerts.
	RecordUsage(ctx context.Context, entry *domain.FieldUsageLog) (*Result, error)

	ListRecent(ctx context.Context, farmID string, limit int) ([]domain.FieldUsageLog, error)
}

type service struct {
	repo     repository.Usage
	stockSvc stock.Service
	alertSvc alert.Service
	syncer   stock.Syncer
	clk      clock.Clock
}

// NewService creates a new field usage service
func NewService(repo repository.Usage, stockSvc stock.Service, alertSvc alert.Service, syncer stock.Syncer, clk clock.Clock) Service {
	return &service{
		repo:     repo,
		stockSvc: stockSvc,
		alertSvc: alertSvc,
		syncer:   syncer,
		clk:      clk,
	}
}

func (s *service) RecordUsage(ctx context.Context, entry *domain.FieldUsageLog) (*Result, error) {
	log := logger.FromContext(ctx)

	if entry.QuantityUsed <= 0 {
		return nil, fmt.Errorf("%w: got %v", domain.ErrInvalidQuantity, entry.QuantityUsed)
	}

	current, err := s.stockSvc.CurrentStock(ctx, entry.FarmID, entry.ItemID)
	if err != nil {
		return nil, err
	}
	if entry.QuantityUsed > current.CurrentQuantity {
		return nil, fmt.Errorf("%w: have %v, requested %v",
			domain.ErrInsufficientStock, current.CurrentQuantity, entry.QuantityUsed)
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := s.clk.Now().UTC()
	if entry.UsageDate.IsZero() {
		entry.UsageDate = now
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now
	entry.SyncStatus = domain.SyncStatusPending

	if err := s.repo.InsertUsageLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record usage: %w", err)
	}
	if err := s.syncer.EnqueueMutation(ctx, entry.FarmID, "field_usage_logs", entry.ID, domain.SyncOpCreate, entry); err != nil {
		return nil, fmt.Errorf("failed to queue usage log for sync: %w", err)
	}

	// Spend the inventory. RecordMovement queues the movement for sync
	// on its own.
	movement := &domain.StockLog{
		FarmID:   entry.FarmID,
		ItemID:   entry.ItemID,
		Type:     domain.MovementOut,
		Quantity: entry.QuantityUsed,
		Date:     entry.UsageDate,
		Notes:    fmt.Sprintf(NoteFmtFieldUsage, entry.ID),
	}
	if err := s.stockSvc.RecordMovement(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to spend stock for usage: %w", err)
	}

	result := &Result{
		Log:          entry,
		Movement:     movement,
		RainAdvisory: alert.CheckRainProbability(entry.FarmID, entry.RainProbability),
	}

	// Alert evaluation is best-effort; the usage entry already stands
	raised, err := s.alertSvc.CheckAllAlerts(ctx, entry.FarmID)
	if err != nil {
		log.Warn(LogMsgAlertSweepFailed, "farmID", entry.FarmID, "error", err)
	} else {
		result.AlertsRaised = raised
	}

	log.Info(LogMsgUsageRecorded,
		"farmID", entry.FarmID, "itemID", entry.ItemID, "cropID", entry.CropID, "quantity", entry.QuantityUsed)
	return result, nil
}

func (s *service) ListRecent(ctx context.Context, farmID string, limit int) ([]domain.FieldUsageLog, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.repo.ListRecentUsage(ctx, farmID, limit)
}
