package domain

import "time"

// AlertType enumerates the rule kinds the alert engine can emit
type AlertType string

const (
	AlertLowStock          AlertType = "low_stock"
	AlertFertilizerStage   AlertType = "fertilizer_stage"
	AlertPesticideInterval AlertType = "pesticide_interval"
	AlertHighRainChance    AlertType = "high_rain_probability"
	AlertExpiryWarning     AlertType = "expiry_warning"
)

// AlertPriority ranks alerts for display ordering
type AlertPriority string

const (
	PriorityLow    AlertPriority = "low"
	PriorityMedium AlertPriority = "medium"
	PriorityHigh   AlertPriority = "high"
	PriorityUrgent AlertPriority = "urgent"
)

// Alert is one notification derived from rule evaluation. At most one
// unread alert exists per (farm, type, related id); alerts are never
// auto-deleted and mutate only by being marked read.
type Alert struct {
	ID        string        `json:"id" db:"alert_id"`
	FarmID    string        `json:"farm_id" db:"farm_id"`
	Type      AlertType     `json:"type" db:"type"`
	Title     string        `json:"title" db:"title"`
	Message   string        `json:"message" db:"message"`
	RelatedID string        `json:"related_id,omitempty" db:"related_id"`
	Priority  AlertPriority `json:"priority" db:"priority"`
	IsRead    bool          `json:"is_read" db:"is_read"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}
