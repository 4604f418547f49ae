package iqs231

// Composite registers are packed LSB first: the first field listed in each
// layout comment occupies bit 0.
//
// Encode rejects sub-field values wider than their bit width with
// ErrValueOutOfRange. Decode is total.

// packer accumulates sub-fields into one register byte and keeps the first
// width violation.
type packer struct {
	b   byte
	err error
}

func (p *packer) put(name string, v uint8, width, shift uint) {
	if p.err != nil {
		return
	}
	if v >= 1<<width {
		p.err = outOfRange("%s=%d does not fit in %d bits", name, v, width)
		return
	}
	p.b |= v << shift
}

func (p *packer) flag(v bool, shift uint) {
	if v {
		p.b |= 1 << shift
	}
}

func (p *packer) result() (byte, error) {
	if p.err != nil {
		return 0, p.err
	}
	return p.b, nil
}

func field(b byte, width, shift uint) uint8 {
	return (b >> shift) & (1<<width - 1)
}

func flag(b byte, shift uint) bool {
	return b&(1<<shift) != 0
}

// ---------------- OTP bank 1 ----------------

// OTPBank1 layout: TouchThreshold[1:0] ACFilter[3:2] ProxThreshold[5:4] I2CAddress[7:6].
type OTPBank1 struct {
	// TouchThreshold selects one of the four OTP touch threshold presets.
	TouchThreshold uint8
	ACFilter       uint8
	ProxThreshold  ProximityThreshold
	// I2CAddress selects AddressDefault + I2CAddress (standalone / I2C option).
	I2CAddress uint8
}

// Encode packs o into the OTP bank 1 register byte.
func (o OTPBank1) Encode() (byte, error) {
	var p packer
	p.put("touch threshold", o.TouchThreshold, 2, 0)
	p.put("ac filter", o.ACFilter, 2, 2)
	p.put("proximity threshold", uint8(o.ProxThreshold), 2, 4)
	p.put("i2c address", o.I2CAddress, 2, 6)
	return p.result()
}

// DecodeOTPBank1 unpacks an OTP bank 1 register byte.
func DecodeOTPBank1(b byte) OTPBank1 {
	return OTPBank1{
		TouchThreshold: field(b, 2, 0),
		ACFilter:       field(b, 2, 2),
		ProxThreshold:  ProximityThreshold(field(b, 2, 4)),
		I2CAddress:     field(b, 2, 6),
	}
}

// ---------------- OTP bank 2 ----------------

// UISelect picks the user interface on the outputs.
type UISelect uint8

const (
	UIProxNoMov UISelect = iota
	UIProxWithMov
	UIProxWithMovTouchNoMov
	UIProxWithMovTouchOnIO2
)

func (u UISelect) String() string {
	switch u {
	case UIProxNoMov:
		return "prox (no movement)"
	case UIProxWithMov:
		return "prox with movement"
	case UIProxWithMovTouchNoMov:
		return "prox with movement, touch without movement"
	case UIProxWithMovTouchOnIO2:
		return "prox with movement, touch on IO2"
	default:
		return "(invalid ui select)"
	}
}

// BaseValue is the channel 0 ATI base value.
type BaseValue uint8

const (
	Base100 BaseValue = iota
	Base75
	Base150
	Base200
)

// Counts returns the base value in counts.
func (b BaseValue) Counts() uint16 {
	switch b {
	case Base100:
		return 100
	case Base75:
		return 75
	case Base150:
		return 150
	case Base200:
		return 200
	default:
		return 0
	}
}

// OTPBank2 layout: UISelect[1:0] QuickRelease[2] FailsafePulsesIO1[3]
// BaseValue[5:4] Target[6] IncreaseDebounce[7].
type OTPBank2 struct {
	UISelect          UISelect
	QuickRelease      bool
	FailsafePulsesIO1 bool
	BaseValue         BaseValue
	Target            bool
	IncreaseDebounce  bool
}

// Encode packs o into the OTP bank 2 register byte.
func (o OTPBank2) Encode() (byte, error) {
	var p packer
	p.put("ui select", uint8(o.UISelect), 2, 0)
	p.flag(o.QuickRelease, 2)
	p.flag(o.FailsafePulsesIO1, 3)
	p.put("base value", uint8(o.BaseValue), 2, 4)
	p.flag(o.Target, 6)
	p.flag(o.IncreaseDebounce, 7)
	return p.result()
}

// DecodeOTPBank2 unpacks an OTP bank 2 register byte.
func DecodeOTPBank2(b byte) OTPBank2 {
	return OTPBank2{
		UISelect:          UISelect(field(b, 2, 0)),
		QuickRelease:      flag(b, 2),
		FailsafePulsesIO1: flag(b, 3),
		BaseValue:         BaseValue(field(b, 2, 4)),
		Target:            flag(b, 6),
		IncreaseDebounce:  flag(b, 7),
	}
}

// ---------------- OTP bank 3 ----------------

// SampleRate is the main sampling rate; the response time is in the comment.
type SampleRate uint8

const (
	Rate30Hz  SampleRate = iota // 57ms
	Rate100Hz                   // 34ms
	Rate8Hz                     // 154ms
	Rate4Hz                     // 280ms
)

func (s SampleRate) String() string {
	switch s {
	case Rate30Hz:
		return "30Hz"
	case Rate100Hz:
		return "100Hz"
	case Rate8Hz:
		return "8Hz"
	case Rate4Hz:
		return "4Hz"
	default:
		return "(invalid sample rate)"
	}
}

// IO2Function selects what the IO2 pin does.
type IO2Function uint8

const (
	// IO2Sensitivity is a sensitivity input (proximity threshold adjust).
	IO2Sensitivity IO2Function = iota
	IO2Synchronize
	IO2MovementOut
	// IO2Ignore ignores the input and drives no output.
	IO2Ignore
)

func (f IO2Function) String() string {
	switch f {
	case IO2Sensitivity:
		return "sensitivity input"
	case IO2Synchronize:
		return "synchronize input"
	case IO2MovementOut:
		return "movement output"
	case IO2Ignore:
		return "ignore"
	default:
		return "(invalid io2 function)"
	}
}

// ChargeTransferFrequency is the charge transfer clock.
type ChargeTransferFrequency uint8

const (
	Freq500kHz ChargeTransferFrequency = iota
	Freq125kHz
	Freq64kHz
	Freq16kHz // 16.5kHz
)

func (f ChargeTransferFrequency) String() string {
	switch f {
	case Freq500kHz:
		return "500kHz"
	case Freq125kHz:
		return "125kHz"
	case Freq64kHz:
		return "64kHz"
	case Freq16kHz:
		return "16.5kHz"
	default:
		return "(invalid charge transfer frequency)"
	}
}

// OTPBank3 layout: SampleRate[1:0] ATIEventsOnIO1[2] IO2Function[4:3]
// TempInterferenceComp[5] ChargeTransferFreq[7:6].
type OTPBank3 struct {
	SampleRate           SampleRate
	ATIEventsOnIO1       bool
	IO2Function          IO2Function
	TempInterferenceComp bool
	ChargeTransferFreq   ChargeTransferFrequency
}

// Encode packs o into the OTP bank 3 register byte.
func (o OTPBank3) Encode() (byte, error) {
	var p packer
	p.put("sample rate", uint8(o.SampleRate), 2, 0)
	p.flag(o.ATIEventsOnIO1, 2)
	p.put("io2 function", uint8(o.IO2Function), 2, 3)
	p.flag(o.TempInterferenceComp, 5)
	p.put("charge transfer frequency", uint8(o.ChargeTransferFreq), 2, 6)
	return p.result()
}

// DecodeOTPBank3 unpacks an OTP bank 3 register byte.
func DecodeOTPBank3(b byte) OTPBank3 {
	return OTPBank3{
		SampleRate:           SampleRate(field(b, 2, 0)),
		ATIEventsOnIO1:       flag(b, 2),
		IO2Function:          IO2Function(field(b, 2, 3)),
		TempInterferenceComp: flag(b, 5),
		ChargeTransferFreq:   ChargeTransferFrequency(field(b, 2, 6)),
	}
}

// ---------------- Quick release ----------------

// QuickRelease layout: Base[3:0] Threshold[7:4].
type QuickRelease struct {
	// Base is the quick release beta.
	Base      uint8
	Threshold QuickReleaseThreshold
}

// Encode packs q into the quick release register byte.
func (q QuickRelease) Encode() (byte, error) {
	var p packer
	p.put("quick release base", q.Base, 4, 0)
	p.put("quick release threshold", uint8(q.Threshold), 4, 4)
	return p.result()
}

// DecodeQuickRelease unpacks a quick release register byte.
func DecodeQuickRelease(b byte) QuickRelease {
	return QuickRelease{
		Base:      field(b, 4, 0),
		Threshold: QuickReleaseThreshold(field(b, 4, 4)),
	}
}

// ---------------- Channel multipliers ----------------

// ChannelMultiplier layout: Compensation[3:0] Sensitivity[5:4] Reserved[7:6].
// Reserved has no meaning but is written back as given.
type ChannelMultiplier struct {
	Compensation uint8
	Sensitivity  uint8
	Reserved     uint8
}

// Encode packs c into a channel multipliers register byte.
func (c ChannelMultiplier) Encode() (byte, error) {
	var p packer
	p.put("compensation multiplier", c.Compensation, 4, 0)
	p.put("sensitivity multiplier", c.Sensitivity, 2, 4)
	p.put("reserved", c.Reserved, 2, 6)
	return p.result()
}

// DecodeChannelMultiplier unpacks a channel multipliers register byte.
func DecodeChannelMultiplier(b byte) ChannelMultiplier {
	return ChannelMultiplier{
		Compensation: field(b, 4, 0),
		Sensitivity:  field(b, 2, 4),
		Reserved:     field(b, 2, 6),
	}
}
