package iqs231

import (
	"tinygo.org/x/drivers"
)

// SendCommands writes commands to RegCommands.
//
// CmdStandalone is refused with ErrForbiddenCommand, whatever else is set,
// because it turns off the chip's I2C interface. Use IntoStandalone.
func (d *Device) SendCommands(cmds Commands) error {
	if cmds&CmdStandalone != 0 {
		d.log.Debug().Stringer("commands", cmds).Msg("refused standalone command")
		return ErrForbiddenCommand
	}
	return d.writeRegister(RegCommands, byte(cmds))
}

// IntoStandalone puts the chip in standalone mode and hands back the bus.
// The chip stops answering on I2C until it is power cycled, so the Device
// is released: every later call on it returns ErrReleased.
//
// The device is released even if the write fails, since the state of the
// chip is then unknown.
func (d *Device) IntoStandalone() (drivers.I2C, error) {
	err := d.writeRegister(RegCommands, byte(CmdStandalone))
	bus := d.Destroy()
	if err != nil {
		return bus, err
	}
	d.log.Info().Stringer("addr", d.addr).Msg("entered standalone mode")
	return bus, nil
}

// Destroy releases the Device and returns its bus. It returns nil if the
// Device was already released.
func (d *Device) Destroy() drivers.I2C {
	bus := d.bus
	d.bus = nil
	return bus
}
