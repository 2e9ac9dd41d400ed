package max1704x

import "tinygo.org/x/drivers"

// Edge selection for the ALERT# interrupt.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// IRQPin is the subset of a platform pin the driver needs to bind an ALERT#
// handler. machine.Pin wrappers and host fakes both fit.
type IRQPin interface {
	Get() bool
	SetIRQ(edge Edge, handler func()) error
}

// NewWithAlert constructs a Device and registers callback to fire on the
// falling edge of the ALERT# pin. Registration happens exactly once; the
// driver never re-registers nor detaches the handler and does not own the
// callback's lifetime. The callback runs in the platform's interrupt
// context and must not perform bus I/O; defer that to ServiceAlert.
func NewWithAlert(bus drivers.I2C, cfg Config, pin IRQPin, callback func()) (*Device, error) {
	d := New(bus, cfg)
	if err := pin.SetIRQ(EdgeFalling, callback); err != nil {
		return nil, err
	}
	return d, nil
}

// PinInput returns the logical level of an input pin.
type PinInput func() bool

// ALERT# is active-low; this helper keeps the driver portable.
func (d *Device) AlertActive(get PinInput) bool { return !get() }

// AlertEvent summarises the status byte at service time.
type AlertEvent struct {
	Fired     bool  // alert bit was latched
	Threshold uint8 // configured threshold percent [1,32]
	Asleep    bool
}

// ServiceAlert reads the status byte, reports the latched alert state, and
// clears the latch if it was set. It performs I²C I/O and must be called
// from non-ISR context. The clear preserves RCOMP, the sleep bit and the
// threshold field.
func (d *Device) ServiceAlert() (AlertEvent, error) {
	comp, status, err := d.readConfig()
	if err != nil {
		return AlertEvent{}, err
	}
	ev := AlertEvent{
		Fired:     status&statusAlert != 0,
		Threshold: decodeThreshold(status),
		Asleep:    status&statusSleep != 0,
	}
	if !ev.Fired {
		return ev, nil
	}
	return ev, d.writeConfig(comp, status&^statusAlert)
}
