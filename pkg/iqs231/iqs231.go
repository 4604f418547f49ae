// Package iqs231 provides a driver for the Azoteq IQS231A/B capacitive
// touch and proximity sensor.
//
// Design notes (datasheet references):
//   - I2C, 7-bit address 0x44 (0x45 test, 0x46/0x47 alternates).
//   - Every register read returns two bytes: the main events byte, then the
//     register value. Reads are wrapped in a Reading so the events are never lost.
//   - 16-bit values are two consecutive 8-bit registers, high byte first.
//   - Only 0x03 - 0x10 are writable.
//   - The STANDALONE command disables I2C until a power cycle; it is only
//     sent by IntoStandalone, which releases the Device.
//
// The driver never caches register values and never retries. A Device must
// not be used from more than one goroutine at a time.
package iqs231

import (
	"github.com/rs/zerolog"
	"tinygo.org/x/drivers"
)

// Config holds the driver options. All fields are optional.
type Config struct {
	// Address defaults to AddressDefault if zero.
	Address Address
	// Logger receives trace output for every transaction. Defaults to zerolog.Nop().
	Logger *zerolog.Logger
}

// DefaultConfig returns the factory configuration.
func DefaultConfig() Config {
	return Config{Address: AddressDefault}
}

// Validate checks the configured address.
func (c Config) Validate() error {
	if c.Address != 0 && !c.Address.Valid() {
		return outOfRange("i2c address 0x%02X", uint16(c.Address))
	}
	return nil
}

// Device is a handle to an IQS231 on an I2C bus.
type Device struct {
	bus  drivers.I2C
	addr Address
	log  zerolog.Logger

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [2]byte
}

// New creates a Device on bus. It does not touch the chip; call
// GetProductNumber to check that an IQS231 is present.
func New(bus drivers.I2C, cfg Config) (*Device, error) {
	if bus == nil {
		return nil, ErrNilBus
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Device{
		bus:  bus,
		addr: cfg.Address,
		log:  zerolog.Nop(),
	}
	if d.addr == 0 {
		d.addr = AddressDefault
	}
	if cfg.Logger != nil {
		d.log = cfg.Logger.With().Stringer("iqs231", d.addr).Logger()
	}
	return d, nil
}

// Address returns the I2C address of the Device.
func (d *Device) Address() Address { return d.addr }

// Released reports whether IntoStandalone or Destroy has been called.
func (d *Device) Released() bool { return d.bus == nil }

// ---------------- Identity ----------------

// GetProductNumber reads the product number and checks it against
// ProductNumber. A mismatch returns a *ProductNumberError, which means the
// wrong device (or none) is at this address.
func (d *Device) GetProductNumber() (Reading[uint8], error) {
	rv, err := d.ReadRegister(RegProductNumber)
	if err != nil {
		return rv, err
	}
	if rv.Value != ProductNumber {
		return rv, &ProductNumberError{Got: rv.Value}
	}
	return rv, nil
}

// GetSoftwareVersion reads the silicon revision. An unknown value returns
// a *SoftwareVersionError.
func (d *Device) GetSoftwareVersion() (Reading[SoftwareVersion], error) {
	rv, err := d.ReadRegister(RegSoftwareVersion)
	if err != nil {
		return Reading[SoftwareVersion]{}, err
	}
	ver, err := SoftwareVersionFromByte(rv.Value)
	if err != nil {
		return Reading[SoftwareVersion]{Events: rv.Events}, err
	}
	return Reading[SoftwareVersion]{Events: rv.Events, Value: ver}, nil
}

// ---------------- Configuration registers ----------------

// GetOTPBank1 reads the RAM copy of OTP bank 1.
func (d *Device) GetOTPBank1() (Reading[OTPBank1], error) {
	return readAs(d, RegOTPBank1, DecodeOTPBank1)
}

// SetOTPBank1 overrides OTP bank 1 until the next reset.
func (d *Device) SetOTPBank1(v OTPBank1) error {
	b, err := v.Encode()
	if err != nil {
		return err
	}
	return d.writeRegister(RegOTPBank1, b)
}

// GetOTPBank2 reads the RAM copy of OTP bank 2.
func (d *Device) GetOTPBank2() (Reading[OTPBank2], error) {
	return readAs(d, RegOTPBank2, DecodeOTPBank2)
}

// SetOTPBank2 overrides OTP bank 2 until the next reset.
func (d *Device) SetOTPBank2(v OTPBank2) error {
	b, err := v.Encode()
	if err != nil {
		return err
	}
	return d.writeRegister(RegOTPBank2, b)
}

// GetOTPBank3 reads the RAM copy of OTP bank 3.
func (d *Device) GetOTPBank3() (Reading[OTPBank3], error) {
	return readAs(d, RegOTPBank3, DecodeOTPBank3)
}

// SetOTPBank3 overrides OTP bank 3 until the next reset.
func (d *Device) SetOTPBank3(v OTPBank3) error {
	b, err := v.Encode()
	if err != nil {
		return err
	}
	return d.writeRegister(RegOTPBank3, b)
}

// GetQuickRelease reads the quick release base and threshold.
func (d *Device) GetQuickRelease() (Reading[QuickRelease], error) {
	return readAs(d, RegQuickRelease, DecodeQuickRelease)
}

// SetQuickRelease writes the quick release base and threshold.
func (d *Device) SetQuickRelease(v QuickRelease) error {
	b, err := v.Encode()
	if err != nil {
		return err
	}
	return d.writeRegister(RegQuickRelease, b)
}

// GetMovement reads the raw movement register (default 0x34).
func (d *Device) GetMovement() (Reading[uint8], error) {
	return d.ReadRegister(RegMovement)
}

// SetMovement writes the raw movement register.
func (d *Device) SetMovement(v uint8) error {
	return d.writeRegister(RegMovement, v)
}

// GetTouchThreshold returns the touch threshold in counts (4 - 1024).
func (d *Device) GetTouchThreshold() (Reading[uint16], error) {
	return readAs(d, RegTouchThreshold, DecodeTouchThreshold)
}

// SetTouchThreshold sets the touch threshold in counts. Values outside
// 4 - 1024 return ErrValueOutOfRange; others are rounded down to a
// multiple of 4 plus 4.
func (d *Device) SetTouchThreshold(counts uint16) error {
	code, err := EncodeTouchThreshold(counts)
	if err != nil {
		return err
	}
	return d.writeRegister(RegTouchThreshold, code)
}

// GetProximityThreshold reads the proximity threshold selector.
func (d *Device) GetProximityThreshold() (Reading[ProximityThreshold], error) {
	return readAs(d, RegProxThreshold, DecodeProximityThreshold)
}

// SetProximityThreshold writes the proximity threshold selector, up to Prox10Counts.
func (d *Device) SetProximityThreshold(v ProximityThreshold) error {
	if v > Prox10Counts {
		return outOfRange("proximity threshold %d", uint8(v))
	}
	return d.writeRegister(RegProxThreshold, byte(v))
}

// GetTempInterferenceThreshold reads the temperature interference threshold.
func (d *Device) GetTempInterferenceThreshold() (Reading[uint8], error) {
	return d.ReadRegister(RegTempInterferenceThreshold)
}

// SetTempInterferenceThreshold defaults to 3. Keep it low; raise it in a
// noisy environment.
func (d *Device) SetTempInterferenceThreshold(v uint8) error {
	return d.writeRegister(RegTempInterferenceThreshold, v)
}

// GetCH0Multipliers reads the proximity channel ATI multipliers.
func (d *Device) GetCH0Multipliers() (Reading[ChannelMultiplier], error) {
	return readAs(d, RegCH0Multipliers, DecodeChannelMultiplier)
}

// SetCH0Multipliers writes the proximity channel ATI multipliers.
func (d *Device) SetCH0Multipliers(v ChannelMultiplier) error {
	b, err := v.Encode()
	if err != nil {
		return err
	}
	return d.writeRegister(RegCH0Multipliers, b)
}

// GetCH0Compensation reads the proximity channel ATI compensation.
func (d *Device) GetCH0Compensation() (Reading[uint8], error) {
	return d.ReadRegister(RegCH0Compensation)
}

// SetCH0Compensation writes the proximity channel ATI compensation.
func (d *Device) SetCH0Compensation(v uint8) error {
	return d.writeRegister(RegCH0Compensation, v)
}

// GetCH1Multipliers reads the movement channel ATI multipliers.
func (d *Device) GetCH1Multipliers() (Reading[ChannelMultiplier], error) {
	return readAs(d, RegCH1Multipliers, DecodeChannelMultiplier)
}

// SetCH1Multipliers writes the movement channel ATI multipliers.
func (d *Device) SetCH1Multipliers(v ChannelMultiplier) error {
	b, err := v.Encode()
	if err != nil {
		return err
	}
	return d.writeRegister(RegCH1Multipliers, b)
}

// GetCH1Compensation reads the movement channel ATI compensation.
func (d *Device) GetCH1Compensation() (Reading[uint8], error) {
	return d.ReadRegister(RegCH1Compensation)
}

// SetCH1Compensation writes the movement channel ATI compensation.
func (d *Device) SetCH1Compensation(v uint8) error {
	return d.writeRegister(RegCH1Compensation, v)
}

// ---------------- Status registers ----------------

// GetDebugEvents reads the debug events register.
func (d *Device) GetDebugEvents() (Reading[DebugEvents], error) {
	return readAs(d, RegDebugEvents, func(b byte) DebugEvents { return DebugEvents(b) })
}

// GetSystemFlags reads the system flags register.
func (d *Device) GetSystemFlags() (Reading[SystemFlags], error) {
	return readAs(d, RegSystemFlags, func(b byte) SystemFlags { return SystemFlags(b) })
}

// GetUIFlags reads the UI flags register.
func (d *Device) GetUIFlags() (Reading[UIFlags], error) {
	return readAs(d, RegUIFlags, func(b byte) UIFlags { return UIFlags(b) })
}

// GetATIFlags returns the raw ATI flags register.
func (d *Device) GetATIFlags() (Reading[uint8], error) {
	return d.ReadRegister(RegATIFlags)
}

// GetEventFlags reads the event flags register.
func (d *Device) GetEventFlags() (Reading[EventFlags], error) {
	return readAs(d, RegEventFlags, func(b byte) EventFlags { return EventFlags(b) })
}

// ---------------- Channel data (0 - 2000 counts) ----------------

// GetProxFilteredCount reads the proximity channel filtered count.
func (d *Device) GetProxFilteredCount() (Reading[uint16], error) {
	return d.ReadRegister16(RegCH0_ACF_H)
}

// GetProxReferenceCount reads the proximity channel long term average.
func (d *Device) GetProxReferenceCount() (Reading[uint16], error) {
	return d.ReadRegister16(RegCH0_LTA_H)
}

// GetProxQuickReleaseReference reads the proximity channel quick release
// detect reference.
func (d *Device) GetProxQuickReleaseReference() (Reading[uint16], error) {
	return d.ReadRegister16(RegCH0_QRD_H)
}

// GetMoveFilteredCount reads the movement channel filtered count.
func (d *Device) GetMoveFilteredCount() (Reading[uint16], error) {
	return d.ReadRegister16(RegCH1_ACF_H)
}

// GetMoveUpperReference reads the movement channel upper reference.
func (d *Device) GetMoveUpperReference() (Reading[uint16], error) {
	return d.ReadRegister16(RegCH1_UMOV_H)
}

// GetMoveLowerReference reads the movement channel lower reference.
func (d *Device) GetMoveLowerReference() (Reading[uint16], error) {
	return d.ReadRegister16(RegCH1_LMOV_H)
}

// GetMoveUnfilteredCount reads the temperature channel unfiltered count
// (temperature feature enabled).
func (d *Device) GetMoveUnfilteredCount() (Reading[uint16], error) {
	return d.ReadRegister16(RegCH1_RAW_H)
}

// GetTempReference reads the movement channel temperature reference, a
// previous value of the temperature channel.
func (d *Device) GetTempReference() (Reading[uint16], error) {
	return d.ReadRegister16(RegTemperature_H)
}

// ---------------- Timers (x 100ms) ----------------

// GetLTAHaltTimer reads the LTA halt countdown (0 - 90min).
func (d *Device) GetLTAHaltTimer() (Reading[uint16], error) {
	return d.ReadRegister16(RegLTAHaltTimer_H)
}

// GetFilterHaltTimer reads the filter halt countdown (0 - 5s) that runs
// before proximity detect.
func (d *Device) GetFilterHaltTimer() (Reading[uint8], error) {
	return d.ReadRegister(RegFilterHaltTimer)
}

// GetTimerReadInput reads the IO2 read countdown (0 - 1s).
func (d *Device) GetTimerReadInput() (Reading[uint8], error) {
	return d.ReadRegister(RegTimerReadInput)
}

// GetTimerRedoATI reads the countdown to the next calibration attempt
// after an ATI error (0 - 25s).
func (d *Device) GetTimerRedoATI() (Reading[uint8], error) {
	return d.ReadRegister(RegTimerRedoATI)
}

func readAs[T any](d *Device, reg Register, decode func(byte) T) (Reading[T], error) {
	rv, err := d.ReadRegister(reg)
	if err != nil {
		return Reading[T]{}, err
	}
	return MapReading(rv, decode), nil
}
