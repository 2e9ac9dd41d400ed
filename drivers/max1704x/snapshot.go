package max1704x

// Snapshot collects the commonly polled values in one batch.
// Zero values remain where individual reads fail.
type Snapshot struct {
	MicroVolts  uint32
	DeciPercent int32
	Version     uint16
	Threshold   uint8
	Asleep      bool
	AlertFired  bool
}

func (d *Device) Snapshot() Snapshot {
	var s Snapshot
	d.SnapshotInto(&s)
	return s
}

// SnapshotInto refreshes at most once for the whole batch, then reads the
// measurement and status registers directly.
func (d *Device) SnapshotInto(out *Snapshot) {
	var s Snapshot
	if d.forceRefresh {
		if err := d.Reset(); err == nil {
			_ = d.QuickStart()
		}
	}
	if raw, err := d.readWord(regVCell); err == nil {
		s.MicroVolts = microVoltsFromRaw(raw, d.variant)
	}
	if raw, err := d.readWord(regSOC); err == nil {
		s.DeciPercent = socDeciPercentFromRaw(raw)
	}
	if v, err := d.readWord(regVersion); err == nil {
		s.Version = v
	}
	if status, err := d.readStatus(); err == nil {
		s.Threshold = decodeThreshold(status)
		s.Asleep = status&statusSleep != 0
		s.AlertFired = status&statusAlert != 0
	}
	*out = s
}
