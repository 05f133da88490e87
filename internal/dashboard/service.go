// Package dashboard aggregates the per-farm summary the home screen
// renders.
package dashboard

import (
	"context"

	"github.com/agridesk/fieldbook/internal/clock"
	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/logger"
	"github.com/agridesk/fieldbook/internal/repository"
)

const (
	recentUsageLimit  = 5
	recentAlertsLimit = 5
)

// StockReader is the slice of the stock service the dashboard needs
type StockReader interface {
	CurrentStockAll(ctx context.Context, farmID string) ([]domain.CurrentStock, error)
}

// QueueCounter reports outbox depth. The dashboard reads a count only;
// it never looks inside the queue.
type QueueCounter interface {
	PendingCount(ctx context.Context, farmID string) (int, error)
}

// Service defines the dashboard business logic
type Service interface {
	Stats(ctx context.Context, farmID string) (*domain.DashboardStats, error)
}

type service struct {
	crops    repository.Crops
	expenses repository.Expenses
	usage    repository.Usage
	alerts   repository.Alerts
	stocks   StockReader
	queue    QueueCounter
	clk      clock.Clock
}

// NewService creates a new dashboard service
func NewService(crops repository.Crops, expenses repository.Expenses, usageRepo repository.Usage, alerts repository.Alerts, stocks StockReader, queue QueueCounter, clk clock.Clock) Service {
	return &service{
		crops:    crops,
		expenses: expenses,
		usage:    usageRepo,
		alerts:   alerts,
		stocks:   stocks,
		queue:    queue,
		clk:      clk,
	}
}

// Stats assembles the farm summary. Individual section failures are
// logged and leave that section zeroed so one broken query does not
// blank the whole screen.
func (s *service) Stats(ctx context.Context, farmID string) (*domain.DashboardStats, error) {
	log := logger.FromContext(ctx)
	stats := &domain.DashboardStats{}

	if plots, err := s.crops.CountPlots(ctx, farmID); err != nil {
		log.Error(LogMsgSectionFailed, "section", "plots", "farmID", farmID, "error", err)
	} else {
		stats.TotalPlots = plots
	}

	if crops, err := s.crops.ListActiveCrops(ctx, farmID); err != nil {
		log.Error(LogMsgSectionFailed, "section", "crops", "farmID", farmID, "error", err)
	} else {
		stats.ActiveCrops = len(crops)
	}

	if stocks, err := s.stocks.CurrentStockAll(ctx, farmID); err != nil {
		log.Error(LogMsgSectionFailed, "section", "stock", "farmID", farmID, "error", err)
	} else {
		for _, stock := range stocks {
			if stock.IsLowStock {
				stats.LowStockItems++
			}
		}
	}

	if pending, err := s.queue.PendingCount(ctx, farmID); err != nil {
		log.Error(LogMsgSectionFailed, "section", "sync", "farmID", farmID, "error", err)
	} else {
		stats.PendingSyncs = pending
	}

	if total, err := s.expenses.MonthlyTotal(ctx, farmID, s.clk.Now().UTC()); err != nil {
		log.Error(LogMsgSectionFailed, "section", "expenses", "farmID", farmID, "error", err)
	} else {
		stats.MonthlyExpense = total
	}

	if recent, err := s.usage.ListRecentUsage(ctx, farmID, recentUsageLimit); err != nil {
		log.Error(LogMsgSectionFailed, "section", "usage", "farmID", farmID, "error", err)
	} else {
		stats.RecentUsage = recent
	}

	if alerts, err := s.alerts.ListRecent(ctx, farmID, recentAlertsLimit); err != nil {
		log.Error(LogMsgSectionFailed, "section", "alerts", "farmID", farmID, "error", err)
	} else {
		stats.RecentAlerts = alerts
	}

	return stats, nil
}
