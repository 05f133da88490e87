package alert

// Alert titles
const (
	TitleLowStock      = "Low stock"
	TitleOutOfStock    = "Out of stock"
	TitleFertilizerDue = "Fertilizer application due"
	TitlePesticideDue  = "Pesticide application due"
	TitleExpiryWarning = "Stock expiring"
	TitleRainAdvisory  = "High rain probability"
)

// Alert message formats
const (
	MsgFmtLowStock        = "%s is low on stock: %.1f %s left (threshold %.1f %s)"
	MsgFmtOutOfStock      = "%s is out of stock"
	MsgFmtFertilizerToday = "%s is due for fertilizer today"
	MsgFmtFertilizerSoon  = "%s is due for fertilizer in %d day(s)"
	MsgFmtPesticideOver   = "%s pesticide application is due (every %d days, last %d days ago)"
	MsgFmtPesticideSoon   = "%s pesticide application coming up in %d day(s)"
	MsgFmtExpiryUrgent    = "%s batch %s expires in %d day(s)"
	MsgFmtExpirySoon      = "%s batch %s expires in %d day(s), plan usage"
	MsgFmtRainAdvisory    = "Rain probability is %d%%. Spraying is not advised."
)

// Log messages
const (
	LogMsgSweepStarted    = "Alert evaluation started"
	LogMsgSweepFinished   = "Alert evaluation finished"
	LogMsgRuleFailed      = "Alert rule failed"
	LogMsgOrphanMovement  = "Movement references missing item, skipping expiry check"
	LogMsgAlertRaised     = "Alert raised"
	LogMsgAlertMarkedRead = "Alert marked read"
)
