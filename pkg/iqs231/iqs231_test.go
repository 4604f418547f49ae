package iqs231

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

const testAddr = uint16(AddressDefault)

func read(reg Register, events, value byte) i2ctest.IO {
	return i2ctest.IO{Addr: testAddr, W: []byte{reg.Addr()}, R: []byte{events, value}}
}

func write(reg Register, value byte) i2ctest.IO {
	return i2ctest.IO{Addr: testAddr, W: []byte{reg.Addr(), value}}
}

func newPlayback(t *testing.T, ops ...i2ctest.IO) (*Device, *i2ctest.Playback) {
	t.Helper()
	pb := &i2ctest.Playback{Ops: ops, DontPanic: true}
	d, err := New(pb, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		if err := pb.Close(); err != nil {
			t.Error(err)
		}
	})
	return d, pb
}

type errBus struct{ err error }

func (b errBus) Tx(uint16, []byte, []byte) error { return b.err }

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		d, err := New(&i2ctest.Playback{}, Config{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Address() != AddressDefault {
			t.Errorf("expected default address, got %s", d.Address())
		}
		if d.Released() {
			t.Error("new device should not be released")
		}
	})
	t.Run("Address", func(t *testing.T) {
		d, err := New(&i2ctest.Playback{}, Config{Address: AddressAlt2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Address() != AddressAlt2 {
			t.Errorf("expected alt2 address, got %s", d.Address())
		}
	})
	t.Run("InvalidAddress", func(t *testing.T) {
		if _, err := New(&i2ctest.Playback{}, Config{Address: 0x50}); !errors.Is(err, ErrValueOutOfRange) {
			t.Errorf("expected ErrValueOutOfRange, got %v", err)
		}
	})
	t.Run("NilBus", func(t *testing.T) {
		if _, err := New(nil, DefaultConfig()); !errors.Is(err, ErrNilBus) {
			t.Errorf("expected ErrNilBus, got %v", err)
		}
	})
	t.Run("Logger", func(t *testing.T) {
		var buf bytes.Buffer
		l := zerolog.New(&buf).Level(zerolog.DebugLevel)
		d, err := New(&i2ctest.Playback{DontPanic: true}, Config{Logger: &l})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err = d.WriteRegister(RegUIFlags, 0x01); !errors.Is(err, ErrRegisterNotWritable) {
			t.Fatalf("expected ErrRegisterNotWritable, got %v", err)
		}
		if !bytes.Contains(buf.Bytes(), []byte("UI_FLAGS")) {
			t.Errorf("expected debug output to name the register, got %s", buf.String())
		}
	})
}

func TestProductNumber(t *testing.T) {
	t.Run("Match", func(t *testing.T) {
		d, _ := newPlayback(t, read(RegProductNumber, 0x01, 0x40))
		rv, err := d.GetProductNumber()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rv.Events != EventProx || rv.Value != 0x40 {
			t.Errorf("unexpected reading: %s", pprint.Sdump(rv))
		}
	})
	t.Run("Mismatch", func(t *testing.T) {
		d, _ := newPlayback(t, read(RegProductNumber, 0x00, 0x41))
		_, err := d.GetProductNumber()
		var pn *ProductNumberError
		if !errors.As(err, &pn) {
			t.Fatalf("expected *ProductNumberError, got %v", err)
		}
		if pn.Got != 0x41 {
			t.Errorf("expected 0x41, got 0x%02X", pn.Got)
		}
		if !errors.Is(err, ErrIncorrectProductNumber) {
			t.Error("expected ErrIncorrectProductNumber to match")
		}
	})
}

// Identity and status getters must read their own register.
func TestGetterAddresses(t *testing.T) {
	t.Run("SoftwareVersion", func(t *testing.T) {
		d, _ := newPlayback(t, read(RegSoftwareVersion, 0x00, 0x06))
		rv, err := d.GetSoftwareVersion()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rv.Value != VersionIQS231A {
			t.Errorf("expected IQS231A, got %s", rv.Value)
		}
	})
	t.Run("SoftwareVersionUnknown", func(t *testing.T) {
		d, _ := newPlayback(t, read(RegSoftwareVersion, 0x02, 0x40))
		rv, err := d.GetSoftwareVersion()
		if !errors.Is(err, ErrUnknownSoftwareVersion) {
			t.Fatalf("expected ErrUnknownSoftwareVersion, got %v", err)
		}
		if rv.Events != EventTouch {
			t.Errorf("expected events to be kept, got %s", rv.Events)
		}
	})
	t.Run("DebugEvents", func(t *testing.T) {
		d, _ := newPlayback(t, read(RegDebugEvents, 0x00, 0x41))
		rv, err := d.GetDebugEvents()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !rv.Value.Has(DebugMovement | DebugATIError) {
			t.Errorf("unexpected debug events %s", rv.Value)
		}
	})
	t.Run("MoveLowerReference", func(t *testing.T) {
		d, _ := newPlayback(t,
			read(RegCH1_LMOV_H, 0x00, 0x01),
			read(RegCH1_LMOV_L, 0x00, 0x02),
		)
		rv, err := d.GetMoveLowerReference()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rv.Value != 0x0102 {
			t.Errorf("expected 0x0102, got 0x%04X", rv.Value)
		}
	})
	t.Run("Flags", func(t *testing.T) {
		d, _ := newPlayback(t,
			read(RegSystemFlags, 0x00, 0x80),
			read(RegUIFlags, 0x00, 0x08),
			read(RegATIFlags, 0x00, 0x33),
			read(RegEventFlags, 0x00, 0x12),
		)
		if rv, err := d.GetSystemFlags(); err != nil || !rv.Value.Has(SysI2C) {
			t.Errorf("system flags: %s %v", rv.Value, err)
		}
		if rv, err := d.GetUIFlags(); err != nil || !rv.Value.Has(UISensingDisabled) {
			t.Errorf("ui flags: %s %v", rv.Value, err)
		}
		if rv, err := d.GetATIFlags(); err != nil || rv.Value != 0x33 {
			t.Errorf("ati flags: 0x%02X %v", rv.Value, err)
		}
		if rv, err := d.GetEventFlags(); err != nil || rv.Value != EvCH0Touch|EvCH1Movement {
			t.Errorf("event flags: %s %v", rv.Value, err)
		}
	})
	t.Run("Configuration", func(t *testing.T) {
		d, _ := newPlayback(t,
			read(RegOTPBank3, 0x00, 0x64),
			read(RegTouchThreshold, 0x00, 0xFF),
			read(RegProxThreshold, 0x00, 0xFD),
			read(RegQuickRelease, 0x00, 0xB4),
			read(RegCH1Multipliers, 0x00, 0x6C),
		)
		if rv, err := d.GetOTPBank3(); err != nil || rv.Value.ChargeTransferFreq != Freq125kHz || !rv.Value.TempInterferenceComp {
			t.Errorf("otp bank 3: %s %v", pprint.Sdump(rv), err)
		}
		if rv, err := d.GetTouchThreshold(); err != nil || rv.Value != 1024 {
			t.Errorf("touch threshold: %d %v", rv.Value, err)
		}
		if rv, err := d.GetProximityThreshold(); err != nil || rv.Value != Prox6Counts {
			t.Errorf("proximity threshold: %s %v", rv.Value, err)
		}
		if rv, err := d.GetQuickRelease(); err != nil || rv.Value.Threshold.Counts() != 400 {
			t.Errorf("quick release: %s %v", pprint.Sdump(rv), err)
		}
		if rv, err := d.GetCH1Multipliers(); err != nil || rv.Value.Compensation != 0xC || rv.Value.Sensitivity != 2 {
			t.Errorf("ch1 multipliers: %s %v", pprint.Sdump(rv), err)
		}
	})
}

func TestReadRegister16(t *testing.T) {
	t.Run("Merge", func(t *testing.T) {
		d, _ := newPlayback(t,
			read(RegCH0_ACF_H, 0x02, 0x03),
			read(RegCH0_ACF_L, 0x04, 0x05),
		)
		rv, err := d.GetProxFilteredCount()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rv.Value != 0x0305 {
			t.Errorf("expected 0x0305, got 0x%04X", rv.Value)
		}
		if rv.Events != EventTouch|EventRelease {
			t.Errorf("expected TOUCH|RELEASE, got %s", rv.Events)
		}
	})
	t.Run("NoLowByte", func(t *testing.T) {
		d, pb := newPlayback(t)
		if _, err := d.ReadRegister16(RegTimerRedoATI); !errors.Is(err, ErrInvalidRegister) {
			t.Errorf("expected ErrInvalidRegister, got %v", err)
		}
		if pb.Count != 0 {
			t.Errorf("expected no transaction, got %d", pb.Count)
		}
	})
	t.Run("HighByteFails", func(t *testing.T) {
		nack := errors.New("nack")
		d, err := New(errBus{err: nack}, Config{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = d.GetLTAHaltTimer()
		var be *BusError
		if !errors.As(err, &be) || be.Register != RegLTAHaltTimer_H || be.Op != OpRead {
			t.Fatalf("expected *BusError on LTA_HALT_TIMER_H, got %v", err)
		}
		if !errors.Is(err, nack) {
			t.Error("expected the bus error to be wrapped untouched")
		}
	})
}

func TestReadRegister(t *testing.T) {
	d, pb := newPlayback(t)
	if _, err := d.ReadRegister(Register(NumRegisters)); !errors.Is(err, ErrInvalidRegister) {
		t.Errorf("expected ErrInvalidRegister, got %v", err)
	}
	if pb.Count != 0 {
		t.Errorf("expected no transaction, got %d", pb.Count)
	}
}

func TestReadMainEvents(t *testing.T) {
	d, _ := newPlayback(t, i2ctest.IO{Addr: testAddr, R: []byte{0x49}})
	ev, err := d.ReadMainEvents()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev != EventProx|EventColdBoot|0x40 {
		t.Errorf("expected PROX|COLD_BOOT|0x40, got %s", ev)
	}
}

func TestCommands(t *testing.T) {
	t.Run("Forbidden", func(t *testing.T) {
		d, pb := newPlayback(t)
		for _, cmds := range []Commands{CmdStandalone, CmdWarmBoot | CmdATICh0, 0xFF} {
			if err := d.SendCommands(cmds); !errors.Is(err, ErrForbiddenCommand) {
				t.Errorf("%s: expected ErrForbiddenCommand, got %v", cmds, err)
			}
		}
		if err := d.WriteRegister(RegCommands, 0x01); !errors.Is(err, ErrForbiddenCommand) {
			t.Errorf("expected ErrForbiddenCommand, got %v", err)
		}
		if pb.Count != 0 {
			t.Errorf("expected no transaction, got %d", pb.Count)
		}
		if d.Released() {
			t.Error("a refused command must not release the device")
		}
	})
	t.Run("Allowed", func(t *testing.T) {
		d, _ := newPlayback(t,
			write(RegCommands, 0x80),
			write(RegCommands, 0x60),
			write(RegCommands, 0x10),
		)
		if err := d.SendCommands(CmdATICh0); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if err := d.SendCommands(CmdEnableSensing | CmdDisableSensing); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if err := d.WriteRegister(RegCommands, byte(CmdToggleACFilter)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestWriteRegister(t *testing.T) {
	t.Run("ReadOnly", func(t *testing.T) {
		d, pb := newPlayback(t)
		for i := 0; i < NumRegisters; i++ {
			reg := Register(i)
			if reg.Writable() {
				continue
			}
			if err := d.WriteRegister(reg, 0xAA); !errors.Is(err, ErrRegisterNotWritable) {
				t.Errorf("%s: expected ErrRegisterNotWritable, got %v", reg, err)
			}
		}
		if pb.Count != 0 {
			t.Errorf("expected no transaction, got %d", pb.Count)
		}
	})
	t.Run("Invalid", func(t *testing.T) {
		d, _ := newPlayback(t)
		if err := d.WriteRegister(0x30, 0x00); !errors.Is(err, ErrInvalidRegister) {
			t.Errorf("expected ErrInvalidRegister, got %v", err)
		}
	})
	t.Run("Reserved", func(t *testing.T) {
		d, _ := newPlayback(t, write(RegReserved, 0x00))
		if err := d.WriteRegister(RegReserved, 0x00); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestSetters(t *testing.T) {
	for _, tc := range []struct {
		name string
		set  func(d *Device) error
		want i2ctest.IO
	}{
		{"OTPBank1", func(d *Device) error {
			return d.SetOTPBank1(OTPBank1{TouchThreshold: 1, ACFilter: 2, ProxThreshold: Prox10Counts, I2CAddress: 1})
		}, write(RegOTPBank1, 0x79)},
		{"OTPBank2", func(d *Device) error {
			return d.SetOTPBank2(OTPBank2{UISelect: UIProxWithMovTouchOnIO2, QuickRelease: true, BaseValue: Base150, IncreaseDebounce: true})
		}, write(RegOTPBank2, 0xA7)},
		{"OTPBank3", func(d *Device) error {
			return d.SetOTPBank3(OTPBank3{ChargeTransferFreq: Freq64kHz, SampleRate: Rate8Hz})
		}, write(RegOTPBank3, 0x82)},
		{"QuickRelease", func(d *Device) error {
			return d.SetQuickRelease(QuickRelease{Base: 5, Threshold: QRT200})
		}, write(RegQuickRelease, 0x95)},
		{"Movement", func(d *Device) error { return d.SetMovement(0x34) }, write(RegMovement, 0x34)},
		{"TouchThreshold", func(d *Device) error { return d.SetTouchThreshold(8) }, write(RegTouchThreshold, 0x01)},
		{"ProximityThreshold", func(d *Device) error { return d.SetProximityThreshold(Prox8Counts) }, write(RegProxThreshold, 0x02)},
		{"TempInterferenceThreshold", func(d *Device) error { return d.SetTempInterferenceThreshold(3) }, write(RegTempInterferenceThreshold, 0x03)},
		{"CH0Multipliers", func(d *Device) error {
			return d.SetCH0Multipliers(ChannelMultiplier{Compensation: 0xC, Sensitivity: 2, Reserved: 1})
		}, write(RegCH0Multipliers, 0x6C)},
		{"CH0Compensation", func(d *Device) error { return d.SetCH0Compensation(0x80) }, write(RegCH0Compensation, 0x80)},
		{"CH1Multipliers", func(d *Device) error {
			return d.SetCH1Multipliers(ChannelMultiplier{Sensitivity: 3})
		}, write(RegCH1Multipliers, 0x30)},
		{"CH1Compensation", func(d *Device) error { return d.SetCH1Compensation(0x7F) }, write(RegCH1Compensation, 0x7F)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d, pb := newPlayback(t, tc.want)
			if err := tc.set(d); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pb.Count != 1 {
				t.Errorf("expected exactly one transaction, got %d", pb.Count)
			}
		})
	}

	t.Run("Rejected", func(t *testing.T) {
		d, pb := newPlayback(t)
		for name, err := range map[string]error{
			"TouchThreshold":     d.SetTouchThreshold(2),
			"TouchThresholdHigh": d.SetTouchThreshold(2000),
			"ProximityThreshold": d.SetProximityThreshold(4),
			"QuickRelease":       d.SetQuickRelease(QuickRelease{Base: 16}),
			"CH0Multipliers":     d.SetCH0Multipliers(ChannelMultiplier{Compensation: 0x10}),
			"OTPBank1":           d.SetOTPBank1(OTPBank1{I2CAddress: 4}),
		} {
			if !errors.Is(err, ErrValueOutOfRange) {
				t.Errorf("%s: expected ErrValueOutOfRange, got %v", name, err)
			}
		}
		if pb.Count != 0 {
			t.Errorf("expected no transaction, got %d", pb.Count)
		}
	})
}

func TestIntoStandalone(t *testing.T) {
	t.Run("Release", func(t *testing.T) {
		d, pb := newPlayback(t, write(RegCommands, 0x01))
		bus, err := d.IntoStandalone()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if bus != pb {
			t.Error("expected the bus to be handed back")
		}
		if !d.Released() {
			t.Error("expected the device to be released")
		}
		if _, err = d.GetProductNumber(); !errors.Is(err, ErrReleased) {
			t.Errorf("expected ErrReleased, got %v", err)
		}
		if err = d.SendCommands(CmdATICh0); !errors.Is(err, ErrReleased) {
			t.Errorf("expected ErrReleased, got %v", err)
		}
		if _, err = d.ReadMainEvents(); !errors.Is(err, ErrReleased) {
			t.Errorf("expected ErrReleased, got %v", err)
		}
		if _, err = d.Snapshot(); !errors.Is(err, ErrReleased) {
			t.Errorf("expected ErrReleased, got %v", err)
		}
		if _, err = d.IntoStandalone(); !errors.Is(err, ErrReleased) {
			t.Errorf("expected ErrReleased, got %v", err)
		}
		if pb.Count != 1 {
			t.Errorf("expected one transaction, got %d", pb.Count)
		}
	})
	t.Run("WriteFails", func(t *testing.T) {
		nack := errors.New("nack")
		d, err := New(errBus{err: nack}, Config{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		bus, err := d.IntoStandalone()
		if !errors.Is(err, nack) {
			t.Errorf("expected bus error, got %v", err)
		}
		if bus == nil || !d.Released() {
			t.Error("expected the device to be released and the bus returned")
		}
	})
	t.Run("Destroy", func(t *testing.T) {
		d, pb := newPlayback(t)
		if bus := d.Destroy(); bus != pb {
			t.Error("expected the bus to be handed back")
		}
		if bus := d.Destroy(); bus != nil {
			t.Error("expected nil after the second Destroy")
		}
		if _, err := d.GetUIFlags(); !errors.Is(err, ErrReleased) {
			t.Errorf("expected ErrReleased, got %v", err)
		}
	})
}
