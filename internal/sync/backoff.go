package sync

import "time"

// backoffDelay returns how long an entry must wait after its Nth failed
// delivery: base * 2^(failures-1), capped at BackoffMaxDelay. Zero
// failures means no wait.
func backoffDelay(failures int) time.Duration {
	if failures <= 0 {
		return 0
	}
	shift := failures - 1
	if shift > 30 {
		return BackoffMaxDelay
	}
	delay := BackoffBaseDelay * time.Duration(1<<shift)
	if delay > BackoffMaxDelay {
		return BackoffMaxDelay
	}
	return delay
}

// eligible reports whether an entry may be attempted at now. An entry
// skipped for backoff does not consume a retry.
func eligible(retryCount int, lastAttempt, now time.Time) bool {
	if retryCount == 0 {
		return true
	}
	return !now.Before(lastAttempt.Add(backoffDelay(retryCount)))
}
