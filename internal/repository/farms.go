package repository

import (
	"context"

	"github.com/agridesk/fieldbook/internal/domain"
)

// Farms defines persistence for the owning tenants
type Farms interface {
	ListFarmIDs(ctx context.Context) ([]string, error)
	GetFarmByID(ctx context.Context, farmID string) (*domain.Farm, error)
	InsertFarm(ctx context.Context, farm *domain.Farm) error
}
