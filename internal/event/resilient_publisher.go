package event

import (
	"context"
	"sync"
	"time"

	"github.com/agridesk/fieldbook/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// ResilientPublisher wraps a Bus so a failed publish retries in the
// background instead of failing the caller. Events that exhaust their
// retries land in the dead-letter file. It implements Bus, so services
// publish through it without knowing about the retry layer.
type ResilientPublisher struct {
	inner Bus
	cfg   ResilientConfig
	dead  *DeadLetterWriter

	wg   sync.WaitGroup
	quit chan struct{}
}

// NewResilientPublisher creates a publisher over inner, opening the
// dead-letter file at cfg.DeadLetterPath. Zero config values fall back
// to the package defaults.
func NewResilientPublisher(inner Bus, cfg ResilientConfig) (*ResilientPublisher, error) {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = RetryMaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = RetryInitialDelaySeconds * time.Second
	}

	dead, err := NewDeadLetterWriter(cfg.DeadLetterPath)
	if err != nil {
		return nil, err
	}

	return &ResilientPublisher{
		inner: inner,
		cfg:   cfg,
		dead:  dead,
		quit:  make(chan struct{}),
	}, nil
}

// Publish delivers through the inner bus. A failure is absorbed: the
// event moves to a background retry loop and the caller gets nil, so
// a broken listener never fails a mutation.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	err := p.inner.Publish(ctx, evt)
	if err == nil {
		return nil
	}

	logger.Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	p.wg.Add(1)
	go p.retry(evt, err)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) retry(evt Event, lastErr error) {
	defer p.wg.Done()

	// The request context that produced the event may already be gone
	ctx := context.Background()

	for attempt := 1; attempt <= p.cfg.MaxRetries; attempt++ {
		select {
		case <-time.After(CalculateRetryDelay(p.cfg.RetryDelay, attempt)):
		case <-p.quit:
			logger.Warn(LogMsgEventDroppedShutdown, "event_type", evt.Type, "attempt", attempt)
			p.writeDeadLetter(evt, attempt-1, lastErr)
			return
		}

		err := p.inner.Publish(ctx, evt)
		if err == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", evt.Type, "attempt", attempt)
			return
		}
		lastErr = err
		logger.Warn(LogMsgEventRetryFailed, "event_type", evt.Type, "attempt", attempt, "error", err)
	}

	logger.Warn(LogMsgEventRetryExhausted, "event_type", evt.Type, "attempts", p.cfg.MaxRetries)
	p.writeDeadLetter(evt, p.cfg.MaxRetries, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(evt Event, attempts int, lastErr error) {
	if err := p.dead.Write(evt, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "error", err, "event_type", evt.Type)
	}
}

// Close aborts in-flight retry loops, dead-lettering their events, and
// closes the dead-letter file.
func (p *ResilientPublisher) Close() error {
	close(p.quit)
	p.wg.Wait()
	return p.dead.Close()
}
