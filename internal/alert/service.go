// Package alert implements rule evaluation over farm records and the
// persistence of the resulting notifications.
package alert

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agridesk/fieldbook/internal/clock"
	"github.com/agridesk/fieldbook/internal/concurrency"
	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/event"
	"github.com/agridesk/fieldbook/internal/logger"
	"github.com/agridesk/fieldbook/internal/repository"
)

// StockReader is the slice of the stock service the rules need.
// Declared here so alert does not depend on the stock package.
type StockReader interface {
	CurrentStockAll(ctx context.Context, farmID string) ([]domain.CurrentStock, error)
}

// Service defines the alert engine business logic
type Service interface {
	// CheckAllAlerts runs every persisted rule for one farm. Evaluation
	// for a farm is serialized; rule failures are logged and skipped.
	// Returns the alerts that were actually inserted this pass.
	CheckAllAlerts(ctx context.Context, farmID string) ([]domain.Alert, error)

	ListUnread(ctx context.Context, farmID string) ([]domain.Alert, error)
	ListRecent(ctx context.Context, farmID string, limit int) ([]domain.Alert, error)
	CountUnread(ctx context.Context, farmID string) (int, error)
	MarkRead(ctx context.Context, alertID string) error
}

type service struct {
	alerts repository.Alerts
	crops  repository.Crops
	items  repository.Inventory
	stocks StockReader
	bus    event.Bus
	clk    clock.Clock

	// farmLocks serializes alert evaluation per farm so the dedup
	// guard is not raced by concurrent sweeps
	farmLocks *concurrency.LockManager
}

// NewService creates a new alert engine
func NewService(alerts repository.Alerts, crops repository.Crops, items repository.Inventory, stocks StockReader, bus event.Bus, clk clock.Clock) Service {
	return &service{
		alerts:    alerts,
		crops:     crops,
		items:     items,
		stocks:    stocks,
		bus:       bus,
		clk:       clk,
		farmLocks: concurrency.NewLockManager(),
	}
}

func (s *service) CheckAllAlerts(ctx context.Context, farmID string) ([]domain.Alert, error) {
	log := logger.FromContext(ctx)

	lock := s.farmLocks.GetLock(farmID)
	lock.Lock()
	defer lock.Unlock()

	// One day snapshot per pass so every rule agrees on "today"
	today := clock.Midnight(s.clk.Now())
	log.Debug(LogMsgSweepStarted, "farmID", farmID, "today", today)

	var candidates []domain.Alert
	candidates = append(candidates, s.evaluateStockRules(ctx, farmID, today)...)
	candidates = append(candidates, s.evaluateCropRules(ctx, farmID, today)...)

	var raised []domain.Alert
	for _, candidate := range candidates {
		candidate.ID = uuid.NewString()
		candidate.CreatedAt = s.clk.Now().UTC()

		inserted, err := s.alerts.InsertIfAbsent(ctx, &candidate)
		if err != nil {
			log.Error(LogMsgRuleFailed, "farmID", farmID, "type", candidate.Type, "error", err)
			continue
		}
		if !inserted {
			continue
		}

		log.Info(LogMsgAlertRaised,
			"farmID", farmID, "type", candidate.Type, "priority", candidate.Priority, "relatedID", candidate.RelatedID)
		if s.bus != nil {
			if err := s.bus.Publish(ctx, event.NewAlertRaisedEvent(candidate)); err != nil {
				log.Warn("Failed to publish alert event", "error", err)
			}
		}
		raised = append(raised, candidate)
	}

	log.Debug(LogMsgSweepFinished, "farmID", farmID, "candidates", len(candidates), "raised", len(raised))
	return raised, nil
}

// evaluateStockRules covers low stock and expiry, both driven by the
// inventory side.
func (s *service) evaluateStockRules(ctx context.Context, farmID string, today time.Time) []domain.Alert {
	log := logger.FromContext(ctx)
	var alerts []domain.Alert

	stocks, err := s.stocks.CurrentStockAll(ctx, farmID)
	if err != nil {
		log.Error(LogMsgRuleFailed, "rule", domain.AlertLowStock, "farmID", farmID, "error", err)
	} else {
		alerts = append(alerts, lowStockAlerts(farmID, stocks)...)
	}

	movements, err := s.items.ListStockLogs(ctx, farmID)
	if err != nil {
		log.Error(LogMsgRuleFailed, "rule", domain.AlertExpiryWarning, "farmID", farmID, "error", err)
		return alerts
	}

	names := make(map[string]string)
	for _, movement := range movements {
		name, ok := names[movement.ItemID]
		if !ok {
			item, err := s.items.GetItemByID(ctx, farmID, movement.ItemID)
			if err != nil {
				log.Error(LogMsgRuleFailed, "rule", domain.AlertExpiryWarning, "farmID", farmID, "error", err)
				continue
			}
			if item == nil {
				log.Warn(LogMsgOrphanMovement, "farmID", farmID, "movementID", movement.ID, "itemID", movement.ItemID)
				names[movement.ItemID] = ""
				continue
			}
			name = item.Name
			names[movement.ItemID] = name
		}
		if name == "" {
			continue
		}
		if alert := expiryAlert(farmID, name, movement, today); alert != nil {
			alerts = append(alerts, *alert)
		}
	}
	return alerts
}

// evaluateCropRules covers the fertilizer and pesticide schedules
func (s *service) evaluateCropRules(ctx context.Context, farmID string, today time.Time) []domain.Alert {
	log := logger.FromContext(ctx)

	crops, err := s.crops.ListActiveCrops(ctx, farmID)
	if err != nil {
		log.Error(LogMsgRuleFailed, "rule", domain.AlertFertilizerStage, "farmID", farmID, "error", err)
		return nil
	}

	alerts := fertilizerAlerts(farmID, crops, today)
	alerts = append(alerts, pesticideAlerts(farmID, crops, today)...)
	return alerts
}

func (s *service) ListUnread(ctx context.Context, farmID string) ([]domain.Alert, error) {
	return s.alerts.ListUnread(ctx, farmID)
}

func (s *service) ListRecent(ctx context.Context, farmID string, limit int) ([]domain.Alert, error) {
	return s.alerts.ListRecent(ctx, farmID, limit)
}

func (s *service) CountUnread(ctx context.Context, farmID string) (int, error) {
	return s.alerts.CountUnread(ctx, farmID)
}

func (s *service) MarkRead(ctx context.Context, alertID string) error {
	log := logger.FromContext(ctx)

	if err := s.alerts.MarkRead(ctx, alertID); err != nil {
		return err
	}
	log.Debug(LogMsgAlertMarkedRead, "alertID", alertID)
	return nil
}
