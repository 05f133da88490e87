package sync

import "time"

// Backoff configuration
const (
	// BackoffBaseDelay is the delay after the first failed delivery;
	// each further failure doubles it.
	BackoffBaseDelay = 30 * time.Second

	// BackoffMaxDelay caps the exponential backoff
	BackoffMaxDelay = 10 * time.Minute
)

// Log messages
const (
	LogMsgMutationQueued       = "Mutation queued for sync"
	LogMsgDrainStarted         = "Sync drain started"
	LogMsgDrainFinished        = "Sync drain finished"
	LogMsgDrainAlreadyActive   = "Sync drain already in flight, skipping"
	LogMsgDrainOffline         = "Offline, skipping sync drain"
	LogMsgImmediateDrainFailed = "Immediate drain after enqueue failed"
	LogMsgEntryDelivered       = "Queue entry delivered"
	LogMsgEntryBackedOff       = "Queue entry waiting for backoff"
	LogMsgDeliveryFailed       = "Queue entry delivery failed"
	LogMsgEntryConflicted      = "Queue entry hit retry ceiling, flagged conflict"
	LogMsgWentOnline           = "Connectivity restored"
	LogMsgWentOffline          = "Connectivity lost"
	LogMsgConflictResolved     = "Conflict resolved"
)
