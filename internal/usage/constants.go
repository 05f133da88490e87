package usage

// DefaultRecentLimit caps usage history listings when the caller does
// not ask for a specific length
const DefaultRecentLimit = 20

// NoteFmtFieldUsage links an auto-generated out movement back to the
// usage log that spent it
const NoteFmtFieldUsage = "field usage %s"

// Log messages
const (
	LogMsgUsageRecorded    = "Field usage recorded"
	LogMsgAlertSweepFailed = "Alert evaluation after usage failed"
)
