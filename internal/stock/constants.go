package stock

// Log messages
const (
	LogMsgItemCreated      = "Inventory item created"
	LogMsgItemUpdated      = "Inventory item updated"
	LogMsgMovementRecorded = "Stock movement recorded"
)

const (
	LogMsgEventPublishFailed = "Failed to publish movement event"
)
