package server

// MaxRequestBytes caps request bodies; every payload here is a small
// JSON document.
const MaxRequestBytes = 1 << 20

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
)

// Headers whose values never reach the logs
const (
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
)

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
