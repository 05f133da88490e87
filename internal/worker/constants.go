package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for the periodic jobs
const (
	LogMsgDrainJobFailed  = "Periodic sync drain failed"
	LogMsgSweepJobFailed  = "Periodic alert sweep failed"
	LogMsgSweepFarmFailed = "Alert sweep failed for farm"
)
