package domain

// Alert rule thresholds shared by the alert engine and its tests
const (
	// FertilizerLeadDays is how many days ahead a fertilizer stage date
	// starts alerting.
	FertilizerLeadDays = 3

	// PesticideWindowDays is the +/- window around the configured
	// pesticide interval that triggers an alert.
	PesticideWindowDays = 2

	// ExpiryWarningDays is how many days before an expiry date the
	// warning starts.
	ExpiryWarningDays = 30

	// ExpiryUrgentDays is the remaining-days cutoff below which an
	// expiry warning escalates to high priority.
	ExpiryUrgentDays = 7

	// RainProbabilityThreshold is the percentage at or above which a
	// spray advisory is returned.
	RainProbabilityThreshold = 70
)

// DefaultMaxRetries is the delivery attempt ceiling after which a queue
// entry's record is flagged conflict and auto-retry stops.
const DefaultMaxRetries = 5
