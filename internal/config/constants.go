package config

// Default scheduling values, overridable via environment
const (
	DefaultSyncIntervalSeconds       = 30
	DefaultAlertSweepIntervalSeconds = 300
	DefaultProbeIntervalSeconds      = 15
)
