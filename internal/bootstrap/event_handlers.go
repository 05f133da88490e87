package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/agridesk/fieldbook/internal/event"
	"github.com/agridesk/fieldbook/internal/metrics"
)

// RegisterEventHandlers sets up all event subscribers. Currently this
// is the metrics collector, which turns published domain events into
// Prometheus counters and gauges.
func RegisterEventHandlers(eventBus event.Bus) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(eventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	return nil
}
