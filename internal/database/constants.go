package database

// Connection defaults
const (
	DefaultMinConnections    = 2
	DefaultBusyTimeoutMillis = 5000
)

// Error messages
const (
	ErrMsgFailedToOpenStore       = "failed to open local store"
	ErrMsgFailedToPingStore       = "failed to ping local store"
	ErrMsgFailedToSetDialect      = "failed to set migration dialect"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
)

// Log messages
const (
	LogMsgConnectedToStore    = "Local store opened"
	LogMsgConnectedToDatabase = "Successfully connected to database"
)
