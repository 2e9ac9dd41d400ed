package max1704x

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Variant selects the gauge model. It only affects the voltage scale: the two
// parts share the register map and the 0x36 bus address.
type Variant uint8

const (
	MAX17048 Variant = iota + 1 // 0-5 V range, 1.25 mV per LSB
	MAX17049                    // 0-10 V range, 2.5 mV per LSB (2S packs)
)

// Sentinel errors (TinyGo-safe; no fmt). Bus errors propagate as-is.
var ErrAsleep = errors.New("max1704x: gauge is asleep")

// Config controls driver behaviour. The zero value of Address and Variant
// defaults to AddressDefault and MAX17048 in New.
type Config struct {
	Address uint16
	Variant Variant

	// ForceRefresh issues Reset then QuickStart before every measurement
	// read so the chip reports a fresh estimate. This restarts the SOC
	// algorithm on each read, which costs estimation continuity; it is the
	// historical behaviour of this chip's host drivers and the
	// DefaultConfig default. Set false to let the gauge free-run.
	ForceRefresh bool

	// GuardSleep makes measurement calls return ErrAsleep while the last
	// commanded power state is asleep. The hardware itself silently ignores
	// conversions in sleep; this software guard is opt-in.
	GuardSleep bool
}

// DefaultConfig matches the chip's classic host drivers: forced refresh on,
// no sleep guard.
func DefaultConfig() Config {
	return Config{
		Address:      AddressDefault,
		Variant:      MAX17048,
		ForceRefresh: true,
	}
}

// Device represents a MAX17048/49 instance on an I²C bus.
//
// Methods are not safe for concurrent use from multiple goroutines, and the
// driver takes no bus lock; serialise access externally if the bus is shared.
// The device itself holds all persistent state: the driver caches nothing
// except the variant and, when GuardSleep is on, the last commanded power
// state.
type Device struct {
	bus     drivers.I2C
	addr    uint16
	variant Variant

	forceRefresh bool
	guardSleep   bool
	asleep       bool

	// Fixed buffers to avoid per-call heap allocations.
	w [3]byte
	r [2]byte
}

// New constructs a Device with the supplied config. It only binds the
// transport; it does not touch the device.
func New(bus drivers.I2C, cfg Config) *Device {
	addr := cfg.Address
	if addr == 0 {
		addr = AddressDefault
	}
	variant := cfg.Variant
	if variant == 0 {
		variant = MAX17048
	}
	return &Device{
		bus:          bus,
		addr:         addr,
		variant:      variant,
		forceRefresh: cfg.ForceRefresh,
		guardSleep:   cfg.GuardSleep,
	}
}

// Introspection.
func (d *Device) Variant() Variant { return d.variant }

// ---------------- Measurements ----------------

// MicroVolts returns the cell (pack, on the MAX17049) voltage in µV.
// With ForceRefresh set it restarts the gauge first; see Config.
func (d *Device) MicroVolts() (uint32, error) {
	if err := d.beginMeasurement(); err != nil {
		return 0, err
	}
	raw, err := d.readWord(regVCell)
	if err != nil {
		return 0, err
	}
	return microVoltsFromRaw(raw, d.variant), nil
}

// Voltage returns the measured voltage in volts. Prefer MicroVolts where
// floating point is unwelcome.
func (d *Device) Voltage() (float64, error) {
	uV, err := d.MicroVolts()
	return float64(uV) / 1e6, err
}

// SOCDeciPercent returns the relative state of charge in tenths of a percent.
// Values above 1000 occur on a full, still-charging battery.
func (d *Device) SOCDeciPercent() (int32, error) {
	if err := d.beginMeasurement(); err != nil {
		return 0, err
	}
	raw, err := d.readWord(regSOC)
	if err != nil {
		return 0, err
	}
	return socDeciPercentFromRaw(raw), nil
}

// StateOfCharge returns the relative state of charge as a percentage with
// the chip's full 1/256 % resolution.
func (d *Device) StateOfCharge() (float64, error) {
	if err := d.beginMeasurement(); err != nil {
		return 0, err
	}
	raw, err := d.readWord(regSOC)
	if err != nil {
		return 0, err
	}
	return float64(raw>>8) + float64(raw&0xFF)/256, nil
}

// Version returns the production version of the IC. No refresh side effect.
func (d *Device) Version() (uint16, error) {
	return d.readWord(regVersion)
}

// beginMeasurement applies the sleep guard and the optional forced refresh.
func (d *Device) beginMeasurement() error {
	if d.guardSleep && d.asleep {
		return ErrAsleep
	}
	if !d.forceRefresh {
		return nil
	}
	if err := d.Reset(); err != nil {
		return err
	}
	return d.QuickStart()
}

// ---------------- CONFIG register ----------------

// Compensation returns the RCOMP tuning byte, the high byte of CONFIG. The
// value is chip-internal; the driver passes it through untouched.
func (d *Device) Compensation() (byte, error) {
	comp, _, err := d.readConfig()
	return comp, err
}

// SetCompensation writes a new RCOMP byte, re-reading the status byte first
// so the rest of CONFIG survives the write.
func (d *Device) SetCompensation(comp byte) error {
	status, err := d.readStatus()
	if err != nil {
		return err
	}
	return d.writeConfig(comp, status)
}

// AlertThreshold returns the configured alert threshold in percent [1,32].
func (d *Device) AlertThreshold() (uint8, error) {
	status, err := d.readStatus()
	if err != nil {
		return 0, err
	}
	return decodeThreshold(status), nil
}

// SetAlertThreshold configures the SOC percentage below which the gauge
// asserts ALERT#. Out-of-range input clamps silently to [1,32]. RCOMP and
// the sleep bit are preserved across the write.
func (d *Device) SetAlertThreshold(percent uint8) error {
	comp, status, err := d.readConfig()
	if err != nil {
		return err
	}
	return d.writeConfig(comp, status&statusSleep|encodeThreshold(percent))
}

// ClearAlertInterrupt clears the latched alert bit, leaving the sleep bit
// and threshold field untouched. Call after servicing an ALERT# interrupt so
// the line can assert again.
func (d *Device) ClearAlertInterrupt() error {
	comp, status, err := d.readConfig()
	if err != nil {
		return err
	}
	return d.writeConfig(comp, status&^statusAlert)
}

// Status returns the raw low byte of CONFIG: bit 7 sleep, bit 5 alert
// latched, bits 4:0 encoded threshold. A primitive for composing checks the
// typed accessors don't cover.
func (d *Device) Status() (byte, error) {
	return d.readStatus()
}

// ConfigRegister returns both CONFIG bytes from one transaction. Compensation
// keeps the classic single-byte result; this accessor exists for callers who
// want the status byte the same transfer already paid for.
func (d *Device) ConfigRegister() (comp, status byte, err error) {
	return d.readConfig()
}

// ---------------- Power modes ----------------

// Sleep halts all gauge operations. The status byte is rebuilt from the
// decoded threshold, so the latched alert bit does not survive. This matches
// the fixed sleep/wake sequence the chip's host drivers have always used.
func (d *Device) Sleep() error {
	comp, status, err := d.readConfig()
	if err != nil {
		return err
	}
	enc := encodeThreshold(decodeThreshold(status))
	if err := d.writeConfig(comp, statusSleep|enc); err != nil {
		return err
	}
	d.asleep = true
	return nil
}

// Wake is the mirror of Sleep: clears the sleep bit, keeps the threshold.
func (d *Device) Wake() error {
	comp, status, err := d.readConfig()
	if err != nil {
		return err
	}
	enc := encodeThreshold(decodeThreshold(status))
	if err := d.writeConfig(comp, enc&^statusSleep); err != nil {
		return err
	}
	d.asleep = false
	return nil
}

// Sleeping reports whether the sleep bit is set on the device.
func (d *Device) Sleeping() (bool, error) {
	status, err := d.readStatus()
	if err != nil {
		return false, err
	}
	asleep := status&statusSleep != 0
	d.asleep = asleep
	return asleep, nil
}

// QuickStart restarts SOC estimation from an immediate voltage-based guess,
// skipping the normal first-estimate settling time.
func (d *Device) QuickStart() error {
	return d.writeWord(regMode, cmdQuickStart)
}

// Reset fully resets the gauge to power-on defaults. Threshold and RCOMP are
// lost; reconfigure afterwards if they matter.
func (d *Device) Reset() error {
	return d.writeWord(regCommand, cmdReset)
}
