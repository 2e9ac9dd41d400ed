// Package gauge layers a polling monitor and ALERT# servicing on top of the
// max1704x driver. The driver is synchronous and lock-free; this package owns
// the single goroutine that touches the device, so bus access stays
// serialised without any locking in the driver itself.
package gauge

import (
	"context"
	"time"

	"fuelgauge-go/drivers/max1704x"
	"fuelgauge-go/x/mathx"
)

// Kind tags an Event.
type Kind uint8

const (
	KindSample Kind = iota + 1 // periodic snapshot
	KindAlert                  // serviced ALERT# interrupt
)

// Event is delivered on the monitor's output channel.
type Event struct {
	Kind     Kind
	Snapshot max1704x.Snapshot   // KindSample
	Alert    max1704x.AlertEvent // KindAlert
	Err      error               // set when servicing failed
	TS       time.Time
}

// Config centralises timings and queue sizes. Zero values pick defaults.
type Config struct {
	Interval    time.Duration // poll cadence, clamped to [100ms, 10m]
	Debounce    time.Duration // minimum spacing between serviced alerts
	QueueLen    int           // output queue
	ISRQueueLen int           // ISR-side queue
}

// Monitor polls one gauge and services its alert line.
type Monitor struct {
	dev *max1704x.Device
	cfg Config

	// Written by ISR; MUST NOT block the ISR:
	isrQ chan struct{}
	// Consumed by the application:
	outQ chan Event

	lastAlert time.Time
	drops     uint32
}

func New(dev *max1704x.Device, cfg Config) *Monitor {
	if cfg.Interval == 0 {
		cfg.Interval = 30 * time.Second
	}
	cfg.Interval = mathx.Clamp(cfg.Interval, 100*time.Millisecond, 10*time.Minute)
	if cfg.QueueLen <= 0 {
		cfg.QueueLen = 16
	}
	if cfg.ISRQueueLen <= 0 {
		cfg.ISRQueueLen = 8
	}
	return &Monitor{
		dev:  dev,
		cfg:  cfg,
		isrQ: make(chan struct{}, cfg.ISRQueueLen),
		outQ: make(chan Event, cfg.QueueLen),
	}
}

// Events returns the output channel. Sends are non-blocking: events are
// dropped if the consumer falls behind, protecting the poll loop.
func (m *Monitor) Events() <-chan Event { return m.outQ }

// Run polls until ctx is cancelled. It emits one sample immediately, then on
// every tick, and services alert wakeups in between.
func (m *Monitor) Run(ctx context.Context) {
	tick := time.NewTicker(m.cfg.Interval)
	defer tick.Stop()

	m.sample()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			m.sample()
		case <-m.isrQ:
			m.serviceAlert()
		}
	}
}

func (m *Monitor) sample() {
	m.emit(Event{Kind: KindSample, Snapshot: m.dev.Snapshot(), TS: time.Now()})
}

func (m *Monitor) emit(ev Event) {
	select {
	case m.outQ <- ev:
	default:
		// drop to protect the loop if the consumer is slow
	}
}
