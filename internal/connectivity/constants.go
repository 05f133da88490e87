package connectivity

// Log messages
const (
	LogMsgMonitorStarted = "Connectivity monitor started"
)
