package ft232h

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yunginnanet/ft232h"
)

var ErrBadDescriptor = errors.New("invalid FT232H descriptor provided")

// Descriptor represents a descriptor for the FT232H device. It is used to uniquely identify the device for connection.
type Descriptor struct {
	Index  int
	Serial string
	mask   *ft232h.Mask
}

// Validate checks if [Descriptor] is valid.
func (ftd Descriptor) Validate() error {
	if ftd.Index < 0 && ftd.Serial == "" && emptyMask(ftd.mask) {
		return ErrBadDescriptor
	}
	return nil
}

// Mask returns a pointer to the [ft232h.Mask] representation of the [Descriptor].
// The [Descriptor]'s own mask is copied, never modified.
func (ftd Descriptor) Mask() *ft232h.Mask {
	m := new(ft232h.Mask)
	if ftd.mask != nil {
		*m = *ftd.mask
	}
	if ftd.Serial != "" {
		m.Serial = ftd.Serial
	}
	if ftd.Index >= 0 {
		m.Index = strconv.Itoa(ftd.Index)
	}
	return m
}

// String returns a string representation of the [Descriptor].
func (ftd Descriptor) String() string {
	return fmt.Sprintf("Descriptor{Index:%d, Serial:%s, mask:%+v}", ftd.Index, ftd.Serial, ftd.mask)
}

// ByIndex returns a [Descriptor] with the specified index.
func ByIndex(index int) Descriptor {
	return Descriptor{Index: index}
}

// BySerial returns a [Descriptor] with the specified serial number.
func BySerial(serial string) Descriptor {
	return Descriptor{Serial: serial, Index: -1}
}

// ByDescription returns a [Descriptor] matching the USB product description
// (case-insensitive, exact).
func ByDescription(desc string) Descriptor {
	return ByMask(&ft232h.Mask{Desc: desc})
}

// ByMask returns a [Descriptor] with the specified mask.
func ByMask(mask *ft232h.Mask) Descriptor {
	return Descriptor{mask: mask, Index: -1}
}

// open picks the narrowest constructor the [Descriptor] allows.
func (ftd Descriptor) open() (*ft232h.FT232H, error) {
	switch {
	case ftd.Index >= 0 && ftd.Serial == "" && emptyMask(ftd.mask):
		return ft232h.OpenIndex(ftd.Index)
	case ftd.Index < 0 && ftd.Serial != "" && emptyMask(ftd.mask):
		return ft232h.OpenSerial(ftd.Serial)
	default:
		return ft232h.OpenMask(ftd.Mask())
	}
}
