package records

// Sync table names for the record types this service owns
const (
	tablePlots     = "plots"
	tableCrops     = "crops"
	tableExpenses  = "expenses"
	tableSuppliers = "suppliers"
)

// Log messages
const (
	LogMsgPlotCreated     = "Plot created"
	LogMsgCropCreated     = "Crop created"
	LogMsgCropUpdated     = "Crop updated"
	LogMsgExpenseRecorded = "Expense recorded"
	LogMsgSupplierCreated = "Supplier created"
)
