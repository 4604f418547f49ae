package iqs231

import (
	"errors"
	"fmt"
)

// Errors returned by the driver.
var (
	// ErrInvalidRegister means register arithmetic left the register map.
	ErrInvalidRegister = errors.New("iqs231: invalid register")
	// ErrRegisterNotWritable is returned before any bus transaction for read-only registers.
	ErrRegisterNotWritable = errors.New("iqs231: register not writable")
	// ErrForbiddenCommand is returned when CmdStandalone is passed to SendCommands.
	// Use Device.IntoStandalone instead.
	ErrForbiddenCommand = errors.New("iqs231: standalone command not allowed, use IntoStandalone")
	// ErrValueOutOfRange is returned when a value does not fit its encoding.
	ErrValueOutOfRange = errors.New("iqs231: value out of range")
	// ErrIncorrectProductNumber is matched by *ProductNumberError.
	ErrIncorrectProductNumber = errors.New("iqs231: incorrect product number")
	// ErrUnknownSoftwareVersion is matched by *SoftwareVersionError.
	ErrUnknownSoftwareVersion = errors.New("iqs231: unknown software version")
	// ErrReleased is returned by every operation after IntoStandalone or Destroy.
	ErrReleased = errors.New("iqs231: device released")
	// ErrNilBus is returned by New when no bus is given.
	ErrNilBus = errors.New("iqs231: nil bus")
	// ErrFailure is the detail-free error produced by Opaque.
	ErrFailure = errors.New("iqs231: failure")
)

// Op names the kind of bus transaction that failed.
type Op string

const (
	OpRead       Op = "read"
	OpWrite      Op = "write"
	OpReadEvents Op = "read events"
)

// BusError wraps an error returned by the I2C bus. The wrapped error is
// never interpreted by the driver.
type BusError struct {
	Op       Op
	Register Register
	Err      error
}

func (e *BusError) Error() string {
	if e.Op == OpReadEvents {
		return fmt.Sprintf("iqs231: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("iqs231: %s %s: %v", e.Op, e.Register, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }

// ProductNumberError reports the value read when the identity check fails.
type ProductNumberError struct {
	Got byte
}

func (e *ProductNumberError) Error() string {
	return fmt.Sprintf("iqs231: incorrect product number 0x%02X (expected 0x%02X)", e.Got, ProductNumber)
}

func (e *ProductNumberError) Is(target error) bool { return target == ErrIncorrectProductNumber }

// SoftwareVersionError reports a software version byte matching neither known revision.
type SoftwareVersionError struct {
	Got byte
}

func (e *SoftwareVersionError) Error() string {
	return fmt.Sprintf("iqs231: unknown software version 0x%02X", e.Got)
}

func (e *SoftwareVersionError) Is(target error) bool { return target == ErrUnknownSoftwareVersion }

// Opaque drops the detail of a non-nil error, returning ErrFailure.
// It is meant for callers that only care whether an operation succeeded.
func Opaque(err error) error {
	if err == nil {
		return nil
	}
	return ErrFailure
}

func outOfRange(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValueOutOfRange}, a...)...)
}
