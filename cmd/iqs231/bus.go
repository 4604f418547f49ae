package main

import (
	"fmt"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"github.com/yunginnanet/ftdi-iqs231/pkg/ft232h"
)

const busFT232H = "ft232h"

// openBus opens either an FT232H (name "ft232h") or a host I²C adapter by
// name. An empty name picks the first adapter registered. The returned
// close func releases everything opened.
func openBus(name string, desc ft232h.Descriptor) (drivers.I2C, func() error, error) {
	if name == busFT232H {
		ft, err := ft232h.ConnectFT232h(desc)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Any("info", ft.Info()).
			Msgf("connected to FT232H: %s", ft)

		bus, err := ft.I2CBus(nil)
		if err != nil {
			_ = ft.Close()
			return nil, nil, err
		}
		return bus, ft.Close, nil
	}

	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize host drivers: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open I2C bus %q: %w", name, err)
	}
	log.Info().Str("bus", bus.String()).Msg("opened I2C bus")
	return bus, bus.Close, nil
}

func listBuses() {
	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize host drivers")
	}
	for _, ref := range i2creg.All() {
		log.Info().Str("name", ref.Name).Strs("aliases", ref.Aliases).Int("number", ref.Number).Msg("I2C bus")
	}
}
