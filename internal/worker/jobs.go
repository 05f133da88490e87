package worker

import (
	"context"

	"github.com/agridesk/fieldbook/internal/logger"
)

// DrainJob runs one sync drain pass. The engine itself handles the
// offline and already-draining cases, so the job just kicks it.
type DrainJob struct {
	Run func(ctx context.Context) error
}

// Process implements Job
func (j DrainJob) Process(ctx context.Context) error {
	if err := j.Run(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgDrainJobFailed, "error", err)
		return err
	}
	return nil
}

// FarmLister enumerates the farms the sweep visits
type FarmLister interface {
	ListFarmIDs(ctx context.Context) ([]string, error)
}

// SweepJob evaluates alert rules for every farm. A failure on one farm
// does not stop the sweep.
type SweepJob struct {
	Farms FarmLister
	Check func(ctx context.Context, farmID string) error
}

// Process implements Job
func (j SweepJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	farmIDs, err := j.Farms.ListFarmIDs(ctx)
	if err != nil {
		log.Error(LogMsgSweepJobFailed, "error", err)
		return err
	}

	for _, farmID := range farmIDs {
		if err := j.Check(ctx, farmID); err != nil {
			log.Error(LogMsgSweepFarmFailed, "farmID", farmID, "error", err)
		}
	}
	return nil
}
