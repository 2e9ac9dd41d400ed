package max1704x

import "fuelgauge-go/x/mathx"

// Pure register codecs. Kept free of I/O so they can be tested in isolation.

// encodeThreshold packs an alert threshold percentage into the low five bits
// of the CONFIG status byte. The hardware stores (-percent) mod 32, so 1%
// encodes as 0x1F and 32% as 0x00. Out-of-range input clamps silently to
// [1,32]; that is the documented behaviour, not an error.
func encodeThreshold(percent uint8) byte {
	p := mathx.Clamp(percent, 1, 32)
	return byte(-p) & statusThreshold
}

// decodeThreshold inverts encodeThreshold: ((^raw) & 0x1F) + 1.
// Bits outside the threshold field are ignored.
func decodeThreshold(raw byte) uint8 {
	return (^raw & statusThreshold) + 1
}

// microVoltsFromRaw converts a VCELL register word to microvolts. The usable
// value sits in bits 15:4; one LSB is 1.25 mV on the MAX17048 and 2.5 mV on
// the MAX17049.
func microVoltsFromRaw(raw uint16, v Variant) uint32 {
	uVPerLSB := uint32(1250)
	if v == MAX17049 {
		uVPerLSB = 2500
	}
	return uint32(raw>>4) * uVPerLSB
}

// socDeciPercentFromRaw converts a SOC register word to tenths of a percent.
// The word is high byte integer percent, low byte 1/256 percent.
func socDeciPercentFromRaw(raw uint16) int32 {
	return int32(raw) * 10 / 256
}
