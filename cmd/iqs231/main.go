package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/l0nax/go-spew/spew"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/i2c"

	"github.com/yunginnanet/ftdi-iqs231/pkg/ft232h"
	"github.com/yunginnanet/ftdi-iqs231/pkg/iqs231"
)

var log zerolog.Logger

var pprint = spew.ConfigState{
	Indent:                  "\t",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	ContinueOnMethod:        true,
	SortKeys:                true,
	HighlightValues:         true,
	HighlightHex:            true,
}

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	log = zerolog.New(cw).With().Timestamp().Logger()
}

type options struct {
	bus      string
	desc     ft232h.Descriptor
	addr     i2c.Addr
	interval time.Duration
	count    int
	action   string
	args     []string
}

func flags() options {
	opts := options{addr: i2c.Addr(iqs231.AddressDefault)}
	flag.StringVar(&opts.bus, "bus", busFT232H, "I2C bus: \"ft232h\" or a host adapter name (empty for the first one)")
	fti := flag.Int("ft-index", 0, "FT232H Index")
	fts := flag.String("ft-serial", "", "FT232H Serial (overrides -ft-index)")
	ftd := flag.String("ft-desc", "", "FT232H USB description (overrides -ft-index and -ft-serial)")
	flag.Var(&opts.addr, "addr", "IQS231 I2C address (0x44 - 0x47)")
	flag.DurationVar(&opts.interval, "interval", 100*time.Millisecond, "poll interval for watch")
	flag.IntVar(&opts.count, "count", 0, "number of polls for watch, 0 runs until interrupted")
	v := flag.Bool("v", false, "debug logging")
	vv := flag.Bool("vv", false, "trace logging (every register access)")
	flag.Usage = func() {
		_, _ = fmt.Fprintf(flag.CommandLine.Output(),
			"usage: %s [flags] info|dump|watch|recal|touch <counts>|standalone|buses\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	switch {
	case *vv:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case *v:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	opts.desc = ft232h.ByIndex(*fti)
	if *fts != "" {
		opts.desc = ft232h.BySerial(*fts)
	}
	if *ftd != "" {
		opts.desc = ft232h.ByDescription(*ftd)
	}

	opts.action = "info"
	if flag.NArg() > 0 {
		opts.action = flag.Arg(0)
		opts.args = flag.Args()[1:]
	}
	return opts
}

func main() {
	opts := flags()

	if opts.action == "buses" {
		listBuses()
		return
	}

	bus, closeBus, err := openBus(opts.bus, opts.desc)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open I2C bus")
	}

	addr, err := parseAddress(opts.addr)
	if err != nil {
		_ = closeBus()
		log.Fatal().Err(err).Stringer("addr", opts.addr).Msg("bad IQS231 address")
	}

	dev, err := iqs231.New(bus, iqs231.Config{Address: addr, Logger: &log})
	if err != nil {
		_ = closeBus()
		log.Fatal().Err(err).Msg("failed to initialize IQS231")
	}

	err = run(dev, opts)
	if cerr := closeBus(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("failed to close I2C bus: %w", cerr))
	}
	if err != nil {
		log.Fatal().Err(err).Str("action", opts.action).Msg("IQS231")
	}
}

// parseAddress narrows a 7-bit bus address to one of the IQS231 addresses.
func parseAddress(a i2c.Addr) (iqs231.Address, error) {
	if uint16(a) > 0xFF {
		return 0, fmt.Errorf("%w: 0x%X", iqs231.ErrValueOutOfRange, uint16(a))
	}
	return iqs231.AddressFromByte(byte(a))
}

func run(dev *iqs231.Device, opts options) error {
	switch opts.action {
	case "info":
		return info(dev)
	case "dump":
		s, err := dev.Snapshot()
		pprint.Fdump(os.Stdout, s)
		return err
	case "watch":
		return watch(dev, opts.interval, opts.count)
	case "recal":
		if err := dev.SendCommands(iqs231.CmdATICh0); err != nil {
			return err
		}
		log.Info().Msg("channel 0 ATI requested")
		return nil
	case "touch":
		if len(opts.args) != 1 {
			return errors.New("touch needs a threshold in counts")
		}
		return touch(dev, opts.args[0])
	case "standalone":
		if _, err := dev.IntoStandalone(); err != nil {
			return err
		}
		log.Warn().Msg("IQS231 is in standalone mode, power cycle it to use I2C again")
		return nil
	default:
		flag.Usage()
		return fmt.Errorf("unknown action %q", opts.action)
	}
}

func info(dev *iqs231.Device) error {
	pn, err := dev.GetProductNumber()
	if err != nil {
		return err
	}
	ver, err := dev.GetSoftwareVersion()
	if err != nil {
		return err
	}
	log.Info().
		Stringer("addr", dev.Address()).
		Hex("product", []byte{pn.Value}).
		Stringer("version", ver.Value).
		Stringer("events", pn.Events|ver.Events).
		Msg("IQS231 found")
	return nil
}

func touch(dev *iqs231.Device, arg string) error {
	counts, err := strconv.ParseUint(arg, 10, 16)
	if err != nil {
		return fmt.Errorf("bad touch threshold %q: %w", arg, err)
	}
	if err = dev.SetTouchThreshold(uint16(counts)); err != nil {
		return err
	}
	rv, err := dev.GetTouchThreshold()
	if err != nil {
		return err
	}
	log.Info().Uint64("requested", counts).Uint16("counts", rv.Value).Msg("touch threshold set")
	return nil
}

// watch polls the events byte and logs every change.
func watch(dev *iqs231.Device, interval time.Duration, count int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		last iqs231.MainEvents
		seen bool
	)
	for n := 0; count == 0 || n < count; n++ {
		ev, err := dev.ReadMainEvents()
		if err != nil {
			return err
		}
		if !seen || ev != last {
			log.Info().
				Stringer("events", ev).
				Bool("prox", ev.Has(iqs231.EventProx)).
				Bool("touch", ev.Has(iqs231.EventTouch)).
				Msg("events")
			last, seen = ev, true
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}
