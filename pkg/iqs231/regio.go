package iqs231

import (
	"fmt"
)

// ReadRegister reads a single register. Every read returns the MainEvents
// byte alongside the value.
func (d *Device) ReadRegister(reg Register) (Reading[uint8], error) {
	if d.bus == nil {
		return Reading[uint8]{}, ErrReleased
	}
	if !reg.Valid() {
		return Reading[uint8]{}, fmt.Errorf("%w: 0x%02X", ErrInvalidRegister, byte(reg))
	}
	return d.readRegister(reg)
}

// ReadRegister16 reads a 16-bit value from reg (high byte) and the register
// after it (low byte).
func (d *Device) ReadRegister16(reg Register) (Reading[uint16], error) {
	if d.bus == nil {
		return Reading[uint16]{}, ErrReleased
	}
	// Resolve the low byte first so a bad register never reaches the bus.
	lo, err := reg.Next()
	if err != nil {
		return Reading[uint16]{}, err
	}
	hiVal, err := d.readRegister(reg)
	if err != nil {
		return Reading[uint16]{}, err
	}
	loVal, err := d.readRegister(lo)
	if err != nil {
		return Reading[uint16]{}, err
	}
	return join16(hiVal, loVal), nil
}

// WriteRegister writes a single register. Read-only registers are rejected
// with ErrRegisterNotWritable without touching the bus, and writes to
// RegCommands go through the same filter as SendCommands.
func (d *Device) WriteRegister(reg Register, value byte) error {
	if reg == RegCommands {
		return d.SendCommands(Commands(value))
	}
	return d.writeRegister(reg, value)
}

// ReadMainEvents reads the events byte alone: a plain read with no register
// address written first.
func (d *Device) ReadMainEvents() (MainEvents, error) {
	if d.bus == nil {
		return 0, ErrReleased
	}
	if err := d.bus.Tx(uint16(d.addr), nil, d.r[:1]); err != nil {
		return 0, &BusError{Op: OpReadEvents, Err: err}
	}
	ev := MainEvents(d.r[0])
	d.log.Trace().Stringer("events", ev).Msg("read events")
	return ev, nil
}

// ---------------- Low-level I2C ----------------

func (d *Device) readRegister(reg Register) (Reading[uint8], error) {
	d.w[0] = reg.Addr()
	if err := d.bus.Tx(uint16(d.addr), d.w[:1], d.r[:2]); err != nil {
		return Reading[uint8]{}, &BusError{Op: OpRead, Register: reg, Err: err}
	}
	rv := readingFromBytes(d.r)
	d.log.Trace().
		Stringer("reg", reg).
		Hex("raw", d.r[:2]).
		Stringer("events", rv.Events).
		Uint8("value", rv.Value).
		Msg("read register")
	return rv, nil
}

func (d *Device) writeRegister(reg Register, value byte) error {
	if d.bus == nil {
		return ErrReleased
	}
	if !reg.Valid() {
		return fmt.Errorf("%w: 0x%02X", ErrInvalidRegister, byte(reg))
	}
	if !reg.Writable() {
		d.log.Debug().Stringer("reg", reg).Uint8("value", value).Msg("rejected write to read-only register")
		return fmt.Errorf("%w: %s", ErrRegisterNotWritable, reg)
	}
	d.w[0] = reg.Addr()
	d.w[1] = value
	d.log.Trace().Stringer("reg", reg).Uint8("value", value).Msg("write register")
	if err := d.bus.Tx(uint16(d.addr), d.w[:2], nil); err != nil {
		return &BusError{Op: OpWrite, Register: reg, Err: err}
	}
	return nil
}
