// Package connectivity probes the remote authority and feeds the
// online/offline state machine of the sync engine.
package connectivity

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/agridesk/fieldbook/internal/logger"
)

const probeTimeout = 5 * time.Second

// Prober checks whether the authority is reachable right now
type Prober interface {
	Probe(ctx context.Context) bool
}

// StateSink receives connectivity transitions. Implemented by the sync
// engine.
type StateSink interface {
	SetOnline(ctx context.Context, online bool)
}

type httpProber struct {
	url    string
	client *http.Client
}

// NewHTTPProber probes the authority's health endpoint. baseURL is the
// same server root the sync transport uses.
func NewHTTPProber(baseURL string, client *http.Client) Prober {
	if client == nil {
		client = &http.Client{Timeout: probeTimeout}
	}
	return &httpProber{url: baseURL + "/health", client: client}
}

func (p *httpProber) Probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Monitor polls the prober on a fixed interval and pushes transitions
// into the sink
type Monitor struct {
	prober   Prober
	sink     StateSink
	interval time.Duration

	quit chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewMonitor creates a connectivity monitor
func NewMonitor(prober Prober, sink StateSink, interval time.Duration) *Monitor {
	return &Monitor{
		prober:   prober,
		sink:     sink,
		interval: interval,
		quit:     make(chan struct{}),
	}
}

// Start probes once immediately, then on every tick until Stop
func (m *Monitor) Start(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgMonitorStarted, "interval", m.interval)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		m.sink.SetOnline(ctx, m.prober.Probe(ctx))

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sink.SetOnline(ctx, m.prober.Probe(ctx))
			case <-m.quit:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts probing and waits for the loop to exit
func (m *Monitor) Stop() {
	m.once.Do(func() { close(m.quit) })
	m.wg.Wait()
}
