package iqs231

// Constants from the datasheet (IQS231A/B, "I2C memory map" section)

// Register is a byte address in the IQS231 register file.
type Register byte

// Register Addresses
//
//goland:noinspection GoSnakeCaseUsage
const (
	// RegProductNumber always reads ProductNumber (0x40).
	RegProductNumber Register = 0x00
	// RegSoftwareVersion is 0x06 (IQS231A) or 0x07 (IQS231B).
	RegSoftwareVersion Register = 0x01
	// RegDebugEvents holds the DebugEvents bits.
	RegDebugEvents Register = 0x02

	RegReserved Register = 0x03
	// RegCommands takes Commands bits; see Device.SendCommands.
	RegCommands Register = 0x04

	// RegOTPBank1 through RegOTPBank3 mirror the OTP option banks.
	RegOTPBank1 Register = 0x05
	RegOTPBank2 Register = 0x06
	RegOTPBank3 Register = 0x07

	RegQuickRelease              Register = 0x08
	RegMovement                  Register = 0x09 // default 0x34
	RegTouchThreshold            Register = 0x0A // default 0x07
	RegProxThreshold             Register = 0x0B
	RegTempInterferenceThreshold Register = 0x0C // default 3
	RegCH0Multipliers            Register = 0x0D
	RegCH0Compensation           Register = 0x0E // 0 - 255
	RegCH1Multipliers            Register = 0x0F
	RegCH1Compensation           Register = 0x10 // 0 - 255

	RegSystemFlags Register = 0x11
	RegUIFlags     Register = 0x12
	RegATIFlags    Register = 0x13
	RegEventFlags  Register = 0x14

	// 16-bit values, high byte first. Counts are 0 - 2000.

	// Proximity channel: filtered count value.
	RegCH0_ACF_H Register = 0x15
	RegCH0_ACF_L Register = 0x16
	// Proximity channel: reference count value (long term average).
	RegCH0_LTA_H Register = 0x17
	RegCH0_LTA_L Register = 0x18
	// Proximity channel: quick release detect reference value.
	RegCH0_QRD_H Register = 0x19
	RegCH0_QRD_L Register = 0x1A
	// Movement channel: filtered count value.
	RegCH1_ACF_H Register = 0x1B
	RegCH1_ACF_L Register = 0x1C
	// Movement channel: upper reference count value.
	RegCH1_UMOV_H Register = 0x1D
	RegCH1_UMOV_L Register = 0x1E
	// Movement channel: lower reference count value.
	RegCH1_LMOV_H Register = 0x1F
	RegCH1_LMOV_L Register = 0x20
	// Temperature channel: unfiltered count value (temperature feature enabled).
	RegCH1_RAW_H Register = 0x21
	RegCH1_RAW_L Register = 0x22
	// Movement channel temperature reference.
	RegTemperature_H Register = 0x23
	RegTemperature_L Register = 0x24
	// LTA halt countdown, (0 - 255) x 100ms. Movement events reset it.
	RegLTAHaltTimer_H Register = 0x25
	RegLTAHaltTimer_L Register = 0x26

	// RegFilterHaltTimer counts down the fixed 5s filter halt, (0 - 50) x 100ms.
	RegFilterHaltTimer Register = 0x27
	// RegTimerReadInput signals a read on IO2, (0 - 10) x 100ms.
	RegTimerReadInput Register = 0x28
	// RegTimerRedoATI counts down to the next calibration attempt after an ATI error, (0 - 255) x 100ms.
	RegTimerRedoATI Register = 0x29

	// NumRegisters is the total number of registers.
	NumRegisters = 0x2A // 42 total (0 through 0x29)
)

// Address is one of the four 7-bit I2C addresses the chip can be strapped to.
type Address uint16

const (
	// AddressDefault is the factory address.
	AddressDefault Address = 0x44
	// AddressTest is not used in normal operation.
	AddressTest Address = 0x45
	AddressAlt1 Address = 0x46
	AddressAlt2 Address = 0x47
)

// ProductNumber is the fixed content of RegProductNumber.
const ProductNumber = 0x40

// SoftwareVersion identifies the silicon revision.
type SoftwareVersion byte

const (
	VersionIQS231A SoftwareVersion = 0x06
	// VersionIQS231B runs software identical to VersionIQS231A.
	VersionIQS231B SoftwareVersion = 0x07
)
