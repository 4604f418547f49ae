package ft232h

import (
	"errors"
	"fmt"
)

var ErrShortRead = errors.New("short I2C read")

// mpsse is the part of [ft232h.I2C] the bus needs.
type mpsse interface {
	Write(slave uint, data []uint8, start, stop bool) (uint, error)
	Read(slave uint, count uint, start, stop bool) ([]uint8, error)
}

// Bus adapts the FT232H MPSSE I²C engine to the single-method
// Tx(addr, w, r) transport used by tinygo.org/x/drivers and periph.
//
// A transaction with both w and r issues the write without a STOP, followed
// by a repeated START and the read.
type Bus struct {
	m    mpsse
	name string
}

// Tx writes w to addr then reads len(r) bytes into r.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if len(w) == 0 && len(r) == 0 {
		return fmt.Errorf("%s: empty transaction to 0x%02X", b.name, addr)
	}
	if len(w) > 0 {
		n, err := b.m.Write(uint(addr), w, true, len(r) == 0)
		if err != nil {
			return fmt.Errorf("%s: write to 0x%02X: %w", b.name, addr, err)
		}
		if int(n) != len(w) {
			return fmt.Errorf("%s: write to 0x%02X: wrote %d of %d bytes", b.name, addr, n, len(w))
		}
	}
	if len(r) == 0 {
		return nil
	}
	got, err := b.m.Read(uint(addr), uint(len(r)), true, true)
	if err != nil {
		return fmt.Errorf("%s: read from 0x%02X: %w", b.name, addr, err)
	}
	if len(got) < len(r) {
		return fmt.Errorf("%s: read from 0x%02X: %w (%d of %d)", b.name, addr, ErrShortRead, len(got), len(r))
	}
	copy(r, got)
	return nil
}

// String returns the name of the bridge the bus belongs to.
func (b *Bus) String() string {
	return b.name
}
