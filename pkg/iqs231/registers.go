package iqs231

import "fmt"

var registerNames = [NumRegisters]string{
	"PRODUCT_NUMBER", "SOFTWARE_VERSION", "DEBUG_EVENTS", "RESERVED",
	"COMMANDS", "OTP_BANK_1", "OTP_BANK_2", "OTP_BANK_3",
	"QUICK_RELEASE", "MOVEMENT", "TOUCH_THRESHOLD", "PROX_THRESHOLD",
	"TEMP_INTERFERENCE_THRESHOLD", "CH0_MULTIPLIERS", "CH0_COMPENSATION", "CH1_MULTIPLIERS",
	"CH1_COMPENSATION", "SYSTEM_FLAGS", "UI_FLAGS", "ATI_FLAGS",
	"EVENT_FLAGS", "CH0_ACF_H", "CH0_ACF_L", "CH0_LTA_H",
	"CH0_LTA_L", "CH0_QRD_H", "CH0_QRD_L", "CH1_ACF_H",
	"CH1_ACF_L", "CH1_UMOV_H", "CH1_UMOV_L", "CH1_LMOV_H",
	"CH1_LMOV_L", "CH1_RAW_H", "CH1_RAW_L", "TEMPERATURE_H",
	"TEMPERATURE_L", "LTA_HALT_TIMER_H", "LTA_HALT_TIMER_L", "FILTER_HALT_TIMER",
	"TIMER_READ_INPUT", "TIMER_REDO_ATI",
}

// RegisterFromByte returns the register at address b.
func RegisterFromByte(b byte) (Register, error) {
	if b >= NumRegisters {
		return 0, fmt.Errorf("%w: 0x%02X", ErrInvalidRegister, b)
	}
	return Register(b), nil
}

// Valid reports whether r is part of the register map.
func (r Register) Valid() bool { return r < NumRegisters }

// Addr returns the byte address sent on the bus.
func (r Register) Addr() byte { return byte(r) }

// Writable reports whether the register accepts writes. Everything outside
// 0x03 - 0x10 is read-only.
func (r Register) Writable() bool {
	switch r {
	case RegReserved,
		RegCommands,
		RegOTPBank1,
		RegOTPBank2,
		RegOTPBank3,
		RegQuickRelease,
		RegMovement,
		RegTouchThreshold,
		RegProxThreshold,
		RegTempInterferenceThreshold,
		RegCH0Multipliers,
		RegCH0Compensation,
		RegCH1Multipliers,
		RegCH1Compensation:
		return true
	default:
		return false
	}
}

// Next returns the register one address above r, i.e. the low byte when r
// is the high byte of a 16-bit value.
func (r Register) Next() (Register, error) {
	if !r.Valid() {
		return 0, fmt.Errorf("%w: 0x%02X", ErrInvalidRegister, byte(r))
	}
	return RegisterFromByte(byte(r) + 1)
}

func (r Register) String() string {
	if !r.Valid() {
		return fmt.Sprintf("(invalid register 0x%02X)", byte(r))
	}
	return registerNames[r]
}

// AddressFromByte converts a raw 7-bit address into an Address.
func AddressFromByte(b byte) (Address, error) {
	a := Address(b)
	if !a.Valid() {
		return 0, outOfRange("i2c address 0x%02X", b)
	}
	return a, nil
}

// Valid reports whether a is one of the four strappable addresses.
func (a Address) Valid() bool {
	switch a {
	case AddressDefault, AddressTest, AddressAlt1, AddressAlt2:
		return true
	default:
		return false
	}
}

func (a Address) String() string {
	switch a {
	case AddressDefault:
		return "0x44 (default)"
	case AddressTest:
		return "0x45 (test)"
	case AddressAlt1:
		return "0x46 (alt1)"
	case AddressAlt2:
		return "0x47 (alt2)"
	default:
		return fmt.Sprintf("(invalid address 0x%02X)", uint16(a))
	}
}

// SoftwareVersionFromByte converts the raw RegSoftwareVersion content.
func SoftwareVersionFromByte(b byte) (SoftwareVersion, error) {
	switch v := SoftwareVersion(b); v {
	case VersionIQS231A, VersionIQS231B:
		return v, nil
	default:
		return 0, &SoftwareVersionError{Got: b}
	}
}

func (v SoftwareVersion) String() string {
	switch v {
	case VersionIQS231A:
		return "IQS231A"
	case VersionIQS231B:
		return "IQS231B"
	default:
		return fmt.Sprintf("(unknown version 0x%02X)", byte(v))
	}
}
