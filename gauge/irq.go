package gauge

import (
	"sync/atomic"
	"time"
)

// AlertHandler returns the function to bind to the ALERT# falling edge,
// typically through max1704x.NewWithAlert or a platform pin's SetIRQ. The
// handler only performs a non-blocking channel send, so it is safe to run in
// interrupt context; the bus I/O happens later on the Run goroutine.
func (m *Monitor) AlertHandler() func() {
	return func() {
		select {
		case m.isrQ <- struct{}{}:
		default:
			atomic.AddUint32(&m.drops, 1) // protect ISR path
		}
	}
}

// ISRDrops reports wakeups discarded because the ISR queue was full.
func (m *Monitor) ISRDrops() uint32 { return atomic.LoadUint32(&m.drops) }

// serviceAlert runs on the Run goroutine after an ISR wakeup. Edges arriving
// inside the debounce window collapse into the service already performed;
// the alert latch is level-held by the chip, so nothing is lost.
func (m *Monitor) serviceAlert() {
	now := time.Now()
	if m.cfg.Debounce > 0 && !m.lastAlert.IsZero() && now.Sub(m.lastAlert) < m.cfg.Debounce {
		return
	}
	m.lastAlert = now

	ev, err := m.dev.ServiceAlert()
	m.emit(Event{Kind: KindAlert, Alert: ev, Err: err, TS: now})
}
