package dashboard

// Log messages
const (
	LogMsgSectionFailed = "Dashboard section failed"
)
