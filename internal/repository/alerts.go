package repository

import (
	"context"

	"github.com/agridesk/fieldbook/internal/domain"
)

// Alerts defines persistence for alert rows. The store enforces the
// dedup invariant: at most one unread alert per (farm, type, related id).
type Alerts interface {
	// InsertIfAbsent inserts the alert unless an unread alert with the
	// same (farm, type, related id) already exists. Returns true when a
	// row was inserted.
	InsertIfAbsent(ctx context.Context, alert *domain.Alert) (bool, error)

	ListUnread(ctx context.Context, farmID string) ([]domain.Alert, error)
	ListRecent(ctx context.Context, farmID string, limit int) ([]domain.Alert, error)
	CountUnread(ctx context.Context, farmID string) (int, error)
	MarkRead(ctx context.Context, alertID string) error
}
