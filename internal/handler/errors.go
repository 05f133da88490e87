package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingURLParam   = "Missing %s path parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Stock operation error messages
	ErrMsgCreateItemFailed    = "Failed to create item"
	ErrMsgUpdateItemFailed    = "Failed to update item"
	ErrMsgGetItemFailed       = "Failed to get item"
	ErrMsgListItemsFailed     = "Failed to list items"
	ErrMsgRecordMovementFail  = "Failed to record stock movement"
	ErrMsgGetStockFailed      = "Failed to compute current stock"
	ErrMsgListMovementsFailed = "Failed to list stock movements"

	// Field usage error messages
	ErrMsgRecordUsageFailed = "Failed to record field usage"
	ErrMsgListUsageFailed   = "Failed to list field usage"

	// Alert error messages
	ErrMsgListAlertsFailed  = "Failed to list alerts"
	ErrMsgCountAlertsFailed = "Failed to count alerts"
	ErrMsgMarkReadFailed    = "Failed to mark alert read"
	ErrMsgCheckAlertsFailed = "Failed to evaluate alerts"

	// Sync error messages
	ErrMsgSyncStatusFailed      = "Failed to read sync status"
	ErrMsgListPendingFailed     = "Failed to list pending entries"
	ErrMsgDrainFailed           = "Sync attempt failed"
	ErrMsgResolveConflictFailed = "Failed to resolve conflict"

	// Dashboard error messages
	ErrMsgDashboardFailed = "Failed to assemble dashboard"

	// Farm error messages
	ErrMsgGetFarmFailed    = "Failed to get farm"
	ErrMsgCreateFarmFailed = "Failed to create farm"

	// Record error messages
	ErrMsgCreateCropFailed = "Failed to create crop"
)

// Success messages for API responses
const (
	MsgItemCreatedSuccess     = "Item created successfully"
	MsgItemUpdatedSuccess     = "Item updated successfully"
	MsgMovementRecordedOK     = "Stock movement recorded"
	MsgUsageRecordedOK        = "Field usage recorded"
	MsgAlertMarkedRead        = "Alert marked as read"
	MsgConflictResolvedFormat = "Conflict resolved: %s wins"
	MsgFarmCreatedSuccess     = "Farm created successfully"
	MsgPlotCreatedSuccess     = "Plot created successfully"
	MsgCropCreatedSuccess     = "Crop created successfully"
	MsgCropUpdatedSuccess     = "Crop updated successfully"
	MsgExpenseRecordedOK      = "Expense recorded"
	MsgSupplierCreatedOK      = "Supplier created successfully"
)
