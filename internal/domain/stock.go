package domain

// CurrentStock is the derived stock position of one inventory item.
// It is computed from the full movement log on every read and never
// stored; quantity may be negative if the log is inconsistent, and that
// is surfaced rather than clamped.
type CurrentStock struct {
	ItemID          string            `json:"item_id"`
	ItemName        string            `json:"item_name"`
	Category        InventoryCategory `json:"category"`
	Unit            Unit              `json:"unit"`
	CurrentQuantity float64           `json:"current_quantity"`
	MinThreshold    float64           `json:"min_threshold"`
	IsLowStock      bool              `json:"is_low_stock"`
}
