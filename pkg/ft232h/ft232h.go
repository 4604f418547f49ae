// Package ft232h finds an FTDI FT232H USB bridge and exposes its MPSSE
// engine as an I²C bus.
package ft232h

import (
	"fmt"

	"github.com/yunginnanet/ft232h"
)

// DeviceInfo represents a snapshot of the device information for the [FT232H] device.
type DeviceInfo struct {
	Index       int
	Serial      string
	Description string
	ProductID   string
	VendorID    string
	IsOpen      bool
	IsHighSpeed bool
}

// String returns a string representation of the device information.
func (ft DeviceInfo) String() string {
	return fmt.Sprintf(
		"DeviceInfo{Index:%d, Serial:%s, Description:%s, ProductID:%s, VendorID:%s, IsOpen:%t, IsHighSpeed:%t}",
		ft.Index, ft.Serial, ft.Description, ft.ProductID, ft.VendorID, ft.IsOpen, ft.IsHighSpeed,
	)
}

// FT232H represents an FT232H device.
type FT232H struct {
	*ft232h.FT232H
	info DeviceInfo
	bus  *Bus
}

// Info returns a snapshot of the device information for the FT232H device. Read-only.
func (ft *FT232H) Info() DeviceInfo {
	vid, pid := ft.vidPid()
	return DeviceInfo{
		Index:       ft.Index(),
		Serial:      ft.Serial(),
		Description: ft.Desc(),
		ProductID:   pid,
		VendorID:    vid,
		IsOpen:      ft.IsOpen(),
		IsHighSpeed: ft.IsHiSpeed(),
	}
}

// String returns a string representation of the FT232H device. It includes the vendor ID, product ID, and description.
func (ft *FT232H) String() string {
	info := ft.Info()
	return fmt.Sprintf("FT232H[%s:%s]: %s", info.VendorID, info.ProductID, info.Description)
}

// I2CBus switches the MPSSE engine to I²C with cfg (nil for the library
// defaults: 400kHz, SDA driven low only) and returns the bus. D0 is SCL,
// D1 and D2 tied together are SDA. Calling it again returns the same bus.
func (ft *FT232H) I2CBus(cfg *ft232h.I2CConfig) (*Bus, error) {
	if ft.bus != nil {
		return ft.bus, nil
	}
	if err := ft.FT232H.I2C.Config(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize I2C on %s: %w", ft, err)
	}
	ft.bus = &Bus{m: ft.FT232H.I2C, name: ft.String()}
	return ft.bus, nil
}

// Close closes the connection with the FT232H.
func (ft *FT232H) Close() error {
	ft.bus = nil
	return ft.FT232H.Close()
}

// ConnectFT232h opens the FT232H matching choice, or the first one found if
// choice is empty.
func ConnectFT232h(choice ...Descriptor) (ft *FT232H, err error) {
	ft = &FT232H{}

	switch len(choice) {
	case 0:
		ft.FT232H, err = ft232h.OpenMask(nil)
	case 1:
		if err = choice[0].Validate(); err != nil {
			return nil, err
		}
		ft.FT232H, err = choice[0].open()
	default:
		return nil, fmt.Errorf("invalid number of arguments")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open FT232H: %w", err)
	}
	ft.info = ft.Info()
	return ft, nil
}
