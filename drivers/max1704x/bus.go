package max1704x

// I2C 16-bit register operations. Unlike SMBus parts, the MAX1704x transfers
// the high byte first. Every access is one write of the register pointer
// followed by a repeated-start read, or a single 3-byte write; the shared
// CONFIG register is only ever written whole.

func (d *Device) readWord(reg byte) (uint16, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:2]); err != nil {
		return 0, err
	}
	return uint16(d.r[0])<<8 | uint16(d.r[1]), nil
}

// readStatus fetches only the low (status) byte of CONFIG, addressing it
// directly at 0x0D.
func (d *Device) readStatus() (byte, error) {
	d.w[0] = regStatus
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

// readConfig fetches both CONFIG bytes in one transaction.
func (d *Device) readConfig() (comp, status byte, err error) {
	d.w[0] = regConfig
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:2]); err != nil {
		return 0, 0, err
	}
	return d.r[0], d.r[1], nil
}

// writeConfig writes both CONFIG bytes together. The register is a single
// atomic unit on the chip; callers must have composed comp and status from a
// fresh read to avoid clobbering unrelated bits.
func (d *Device) writeConfig(comp, status byte) error {
	d.w[0] = regConfig
	d.w[1] = comp
	d.w[2] = status
	return d.bus.Tx(d.addr, d.w[:3], nil)
}

func (d *Device) writeWord(reg byte, val uint16) error {
	d.w[0] = reg
	d.w[1] = byte(val >> 8) // high
	d.w[2] = byte(val)      // low
	return d.bus.Tx(d.addr, d.w[:3], nil)
}
