package domain

import "time"

// Farm is the owning tenant for every record; FarmID is the partition
// key on all queries.
type Farm struct {
	ID        string    `json:"id" db:"farm_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Location  string    `json:"location,omitempty" db:"location"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Plot represents a field or parcel belonging to a farm
type Plot struct {
	ID            string     `json:"id" db:"plot_id"`
	FarmID        string     `json:"farm_id" db:"farm_id"`
	Name          string     `json:"name" db:"name"`
	SizeAcres     float64    `json:"size_acres" db:"size_acres"`
	CurrentCropID string     `json:"current_crop_id,omitempty" db:"current_crop_id"`
	Notes         string     `json:"notes,omitempty" db:"notes"`
	SyncStatus    SyncStatus `json:"sync_status" db:"sync_status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// CropStatus is the lifecycle stage of a crop. Only planted and growing
// crops participate in schedule-based alert evaluation.
type CropStatus string

const (
	CropStatusPlanted   CropStatus = "planted"
	CropStatusGrowing   CropStatus = "growing"
	CropStatusHarvested CropStatus = "harvested"
)

// Crop represents a planting on a plot, including the treatment
// schedule fields the alert engine evaluates.
type Crop struct {
	ID                    string     `json:"id" db:"crop_id"`
	FarmID                string     `json:"farm_id" db:"farm_id"`
	PlotID                string     `json:"plot_id" db:"plot_id"`
	Name                  string     `json:"name" db:"name"`
	Variety               string     `json:"variety,omitempty" db:"variety"`
	PlantingDate          time.Time  `json:"planting_date" db:"planting_date"`
	ExpectedHarvestDate   *time.Time `json:"expected_harvest_date,omitempty" db:"expected_harvest_date"`
	Status                CropStatus `json:"status" db:"status"`
	FertilizerStageDate   *time.Time `json:"fertilizer_stage_date,omitempty" db:"fertilizer_stage_date"`
	PesticideIntervalDays int        `json:"pesticide_interval_days,omitempty" db:"pesticide_interval_days"`
	LastPesticideDate     *time.Time `json:"last_pesticide_date,omitempty" db:"last_pesticide_date"`
	SyncStatus            SyncStatus `json:"sync_status" db:"sync_status"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}

// Active reports whether the crop participates in schedule-based rules
func (c Crop) Active() bool {
	return c.Status == CropStatusPlanted || c.Status == CropStatusGrowing
}

// InventoryCategory classifies tracked inventory items
type InventoryCategory string

const (
	CategorySeeds       InventoryCategory = "seeds"
	CategoryFertilizers InventoryCategory = "fertilizers"
	CategoryPesticides  InventoryCategory = "pesticides"
	CategoryEquipment   InventoryCategory = "equipment"
	CategoryFuel        InventoryCategory = "fuel"
)

// Unit is the measurement unit for an inventory item
type Unit string

const (
	UnitKG    Unit = "kg"
	UnitLitre Unit = "litre"
	UnitPiece Unit = "piece"
	UnitAcre  Unit = "acre"
)

// InventoryItem is the definition of a tracked item. Its quantity is
// never stored; it is derived from the stock movement log.
type InventoryItem struct {
	ID           string            `json:"id" db:"item_id"`
	FarmID       string            `json:"farm_id" db:"farm_id"`
	Name         string            `json:"name" db:"name"`
	Category     InventoryCategory `json:"category" db:"category"`
	Unit         Unit              `json:"unit" db:"unit"`
	MinThreshold float64           `json:"min_threshold" db:"min_threshold"`
	Description  string            `json:"description,omitempty" db:"description"`
	SyncStatus   SyncStatus        `json:"sync_status" db:"sync_status"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

// MovementType is the direction of a stock movement
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// StockLog is one immutable entry in the append-only stock ledger
type StockLog struct {
	ID            string       `json:"id" db:"stock_log_id"`
	FarmID        string       `json:"farm_id" db:"farm_id"`
	ItemID        string       `json:"item_id" db:"item_id"`
	Type          MovementType `json:"type" db:"type"`
	Quantity      float64      `json:"quantity" db:"quantity"`
	Date          time.Time    `json:"date" db:"date"`
	BatchNumber   string       `json:"batch_number,omitempty" db:"batch_number"`
	ExpiryDate    *time.Time   `json:"expiry_date,omitempty" db:"expiry_date"`
	PurchasePrice float64      `json:"purchase_price,omitempty" db:"purchase_price"`
	SupplierID    string       `json:"supplier_id,omitempty" db:"supplier_id"`
	Notes         string       `json:"notes,omitempty" db:"notes"`
	SyncStatus    SyncStatus   `json:"sync_status" db:"sync_status"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// ApplicationMethod describes how an input was applied in the field
type ApplicationMethod string

const (
	MethodSpray     ApplicationMethod = "spray"
	MethodSpread    ApplicationMethod = "spread"
	MethodDrip      ApplicationMethod = "drip"
	MethodBroadcast ApplicationMethod = "broadcast"
	MethodInjection ApplicationMethod = "injection"
)

// FieldUsageLog records the application of an inventory item to a crop
type FieldUsageLog struct {
	ID                string            `json:"id" db:"usage_log_id"`
	FarmID            string            `json:"farm_id" db:"farm_id"`
	PlotID            string            `json:"plot_id" db:"plot_id"`
	CropID            string            `json:"crop_id" db:"crop_id"`
	ItemID            string            `json:"item_id" db:"item_id"`
	QuantityUsed      float64           `json:"quantity_used" db:"quantity_used"`
	UsageDate         time.Time         `json:"usage_date" db:"usage_date"`
	UsageTime         string            `json:"usage_time,omitempty" db:"usage_time"`
	ApplicationMethod ApplicationMethod `json:"application_method" db:"application_method"`
	RainProbability   int               `json:"rain_probability" db:"rain_probability"`
	WeatherCondition  string            `json:"weather_condition,omitempty" db:"weather_condition"`
	Temperature       float64           `json:"temperature,omitempty" db:"temperature"`
	Notes             string            `json:"notes,omitempty" db:"notes"`
	SyncStatus        SyncStatus        `json:"sync_status" db:"sync_status"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// ExpenseCategory classifies an expense
type ExpenseCategory string

const (
	ExpenseSeeds       ExpenseCategory = "seeds"
	ExpenseFertilizers ExpenseCategory = "fertilizers"
	ExpensePesticides  ExpenseCategory = "pesticides"
	ExpenseEquipment   ExpenseCategory = "equipment"
	ExpenseFuel        ExpenseCategory = "fuel"
	ExpenseLabor       ExpenseCategory = "labor"
	ExpenseOther       ExpenseCategory = "other"
)

// Expense is a recorded cost, optionally tied to an inventory item
type Expense struct {
	ID              string          `json:"id" db:"expense_id"`
	FarmID          string          `json:"farm_id" db:"farm_id"`
	ItemID          string          `json:"item_id,omitempty" db:"item_id"`
	Category        ExpenseCategory `json:"category" db:"category"`
	Amount          float64         `json:"amount" db:"amount"`
	Date            time.Time       `json:"date" db:"date"`
	SupplierID      string          `json:"supplier_id,omitempty" db:"supplier_id"`
	Description     string          `json:"description" db:"description"`
	ReceiptPhotoURL string          `json:"receipt_photo_url,omitempty" db:"receipt_photo_url"`
	SyncStatus      SyncStatus      `json:"sync_status" db:"sync_status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// Supplier is a vendor the farm buys from
type Supplier struct {
	ID         string     `json:"id" db:"supplier_id"`
	FarmID     string     `json:"farm_id" db:"farm_id"`
	Name       string     `json:"name" db:"name"`
	Contact    string     `json:"contact,omitempty" db:"contact"`
	Email      string     `json:"email,omitempty" db:"email"`
	Address    string     `json:"address,omitempty" db:"address"`
	Rating     int        `json:"rating,omitempty" db:"rating"`
	SyncStatus SyncStatus `json:"sync_status" db:"sync_status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
