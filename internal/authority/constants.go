package authority

// Log messages
const (
	LogMsgRecordUpserted = "Record upserted"
	LogMsgRecordDeleted  = "Record deleted"
	LogMsgUpsertFailed   = "Failed to upsert record"
	LogMsgDeleteFailed   = "Failed to delete record"
	LogMsgSchemaEnsured  = "Authority schema ensured"
)

// Error messages
const (
	ErrMsgUnknownTable   = "Unknown record type"
	ErrMsgMissingID      = "Missing id query parameter"
	ErrMsgMissingRecord  = "Record payload required"
	ErrMsgInvalidPayload = "Invalid JSON payload"
	ErrMsgStoreFailed    = "Failed to store record"
)
