package repository

import (
	"context"

	"github.com/agridesk/fieldbook/internal/domain"
)

// Usage defines persistence for field usage logs
type Usage interface {
	InsertUsageLog(ctx context.Context, log *domain.FieldUsageLog) error
	ListRecentUsage(ctx context.Context, farmID string, limit int) ([]domain.FieldUsageLog, error)
}
