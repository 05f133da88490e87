package domain

// DashboardStats is the aggregate snapshot the dashboard renders.
// PendingSyncs is the only place alerting/dashboard code reads the sync
// queue, and it reads a count only.
type DashboardStats struct {
	TotalPlots     int             `json:"total_plots"`
	ActiveCrops    int             `json:"active_crops"`
	LowStockItems  int             `json:"low_stock_items"`
	PendingSyncs   int             `json:"pending_syncs"`
	MonthlyExpense float64         `json:"monthly_expense"`
	RecentUsage    []FieldUsageLog `json:"recent_usage"`
	RecentAlerts   []Alert         `json:"recent_alerts"`
}
