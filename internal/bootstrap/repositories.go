package bootstrap

import (
	"database/sql"

	"github.com/agridesk/fieldbook/internal/database/sqlite"
	"github.com/agridesk/fieldbook/internal/repository"
)

// Repositories holds all repository implementations used by the
// application. This provides a centralized location for repository
// initialization and makes dependency injection clearer.
type Repositories struct {
	Inventory repository.Inventory
	Crops     repository.Crops
	Usage     repository.Usage
	Expenses  repository.Expenses
	Alerts    repository.Alerts
	SyncQueue repository.SyncQueue
	Records   repository.Records
	Farms     repository.Farms
}

// InitializeRepositories creates all repository implementations over
// the local SQLite store.
func InitializeRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Inventory: sqlite.NewInventoryRepository(db),
		Crops:     sqlite.NewCropsRepository(db),
		Usage:     sqlite.NewUsageRepository(db),
		Expenses:  sqlite.NewExpensesRepository(db),
		Alerts:    sqlite.NewAlertsRepository(db),
		SyncQueue: sqlite.NewSyncQueueRepository(db),
		Records:   sqlite.NewRecordsRepository(db),
		Farms:     sqlite.NewFarmsRepository(db),
	}
}
