package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agridesk/fieldbook/internal/worker"
)

type tickingJob struct {
	done chan struct{}
}

func (j *tickingJob) Process(ctx context.Context) error {
	select {
	case j.done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler_RunsJobOnInterval(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &tickingJob{done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)
	sched.Start()

	timeout := time.After(time.Second)
	runs := 0
	for runs < 2 {
		select {
		case <-job.done:
			runs++
		case <-timeout:
			t.Fatal("timeout waiting for scheduled job to run")
		}
	}

	assert.GreaterOrEqual(t, runs, 2)
}

func TestScheduler_NothingRunsBeforeStart(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &tickingJob{done: make(chan struct{}, 1)}
	sched.Schedule(5*time.Millisecond, job)

	select {
	case <-job.done:
		t.Fatal("job ran before Start")
	case <-time.After(30 * time.Millisecond):
	}
}
