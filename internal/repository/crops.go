package repository

import (
	"context"

	"github.com/agridesk/fieldbook/internal/domain"
)

// Crops defines persistence for crops and plots
type Crops interface {
	GetCropByID(ctx context.Context, farmID, cropID string) (*domain.Crop, error)
	ListActiveCrops(ctx context.Context, farmID string) ([]domain.Crop, error)
	InsertCrop(ctx context.Context, crop *domain.Crop) error
	UpdateCrop(ctx context.Context, crop *domain.Crop) error

	CountPlots(ctx context.Context, farmID string) (int, error)
	InsertPlot(ctx context.Context, plot *domain.Plot) error
	ListPlots(ctx context.Context, farmID string) ([]domain.Plot, error)
}
