package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/thecoder93/openclaw/internal/logging/events"
)

// prober is the slice of Client the monitor needs; tests substitute fakes.
type prober interface {
	Health(ctx context.Context) error
}

// Monitor tracks gateway connectivity by polling the health endpoint. It
// starts in Connecting and settles into Connected or Disconnected after the
// first probe.
type Monitor struct {
	client   prober
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	state  ConnState
	demand *throttle
}

// NewMonitor creates and starts a connectivity monitor polling every interval.
func NewMonitor(client prober, interval time.Duration) *Monitor {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Monitor{
		client:   client,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		state:    Connecting,
		demand:   newThrottle(interval / 4),
	}
	m.wg.Add(1)
	go m.loop()
	return m
}

// Current returns the connectivity state as of the latest probe.
func (m *Monitor) Current() ConnState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Probe runs an immediate health check, subject to a minimum interval so
// bursts of callers cannot hammer the gateway.
func (m *Monitor) Probe() {
	if !m.demand.allow() {
		return
	}
	m.check()
}

// Stop terminates the polling loop.
func (m *Monitor) Stop() {
	m.cancel()
}

// Wait blocks until the polling goroutine has exited. Call after Stop when a
// clean shutdown is required.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

func (m *Monitor) loop() {
	defer m.wg.Done()
	m.check()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.check()
		}
	}
}

func (m *Monitor) check() {
	ctx, cancel := context.WithTimeout(m.ctx, m.interval)
	err := m.client.Health(ctx)
	cancel()
	next := Connected
	if err != nil {
		next = Disconnected
	}
	m.mu.Lock()
	prev := m.state
	m.state = next
	m.mu.Unlock()
	if prev != next {
		events.Gateway.ConnectionChange(prev.String(), next.String())
	}
}
