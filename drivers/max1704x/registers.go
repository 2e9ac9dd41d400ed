// Package max1704x provides constants for register addresses and bitfields
// used in the operation of the MAX17048/MAX17049 fuel gauges.
package max1704x

const (
	// 7-bit I2C address (0110_110b), shared by both variants.
	AddressDefault = 0x36

	// --- Register sub-addresses ---

	regVCell   = 0x02 // R, 12-bit cell voltage in bits 15:4
	regSOC     = 0x04 // R, high byte = %, low byte = 1/256 %
	regMode    = 0x06 // W, quick-start command
	regVersion = 0x08 // R, production version
	regConfig  = 0x0C // R/W, high = RCOMP, low = status
	regStatus  = 0x0D // R, low byte of CONFIG addressed directly
	regCommand = 0xFE // W, full reset command

	// --- Fixed command words ---

	cmdQuickStart = 0x4000 // MODE: restart SOC estimation from a voltage guess
	cmdReset      = 0x5400 // COMMAND: power-on reset, drops all configuration

	// --- CONFIG status byte (low byte) ---

	statusSleep     = 0x80 // bit 7: 1 = asleep
	statusAlert     = 0x20 // bit 5: latched when SOC crossed the threshold
	statusThreshold = 0x1F // bits 4:0: (-percent) mod 32
)
