package iqs231

import (
	"fmt"
	"strings"
)

// Every flag type keeps the raw byte, including reserved and unknown bits.

// MainEvents is the status byte the chip returns ahead of every register read.
type MainEvents byte

const (
	EventProx MainEvents = 1 << iota
	EventTouch
	EventRelease
	EventColdBoot
	EventWarmBoot
	EventSensingDisabled
)

// Commands are transient actions written to RegCommands.
type Commands byte

const (
	// CmdStandalone (a.k.a. warm boot) switches the chip to standalone mode and
	// disables I2C until a power cycle. Only Device.IntoStandalone sends it.
	CmdStandalone     Commands = 0x01
	CmdToggleULPMode  Commands = 0x04
	CmdToggleACFilter Commands = 0x10
	CmdEnableSensing  Commands = 0x20
	CmdDisableSensing Commands = 0x40
	// CmdATICh0 redoes ATI (recalibration) on channel 0.
	CmdATICh0 Commands = 0x80

	CmdWarmBoot = CmdStandalone
)

// DebugEvents is the content of RegDebugEvents.
type DebugEvents byte

const (
	DebugMovement       DebugEvents = 0x01
	DebugEnterMovDetect DebugEvents = 0x02
	DebugExitMovDetect  DebugEvents = 0x04
	DebugQuickRelease   DebugEvents = 0x08
	DebugCH0ATI         DebugEvents = 0x20
	DebugATIError       DebugEvents = 0x40
)

// SystemFlags is the content of RegSystemFlags.
type SystemFlags byte

const (
	SysZoomMode     SystemFlags = 0x01
	SysATIMode      SystemFlags = 0x02
	SysCH0LTAHalted SystemFlags = 0x04
	SysNoSync       SystemFlags = 0x08
	SysCurrentCh    SystemFlags = 0x10
	SysCH0Active    SystemFlags = 0x20
	SysTemp         SystemFlags = 0x40
	SysI2C          SystemFlags = 0x80
)

// UIFlags is the content of RegUIFlags.
type UIFlags byte

const (
	UIOutputActive      UIFlags = 0x01
	UIQuickRelease      UIFlags = 0x04
	UISensingDisabled   UIFlags = 0x08
	UIAutoATIOff        UIFlags = 0x10
	UITemperatureReseed UIFlags = 0x40
	UITempChannelATI    UIFlags = 0x80
)

// EventFlags is the content of RegEventFlags, a per-channel view of the events.
type EventFlags byte

const (
	EvCH0Prox        EventFlags = 0x01
	EvCH0Touch       EventFlags = 0x02
	EvCH0Undebounced EventFlags = 0x04
	EvCH0ATIError    EventFlags = 0x08
	EvCH1Movement    EventFlags = 0x10
	EvCH1ATIError    EventFlags = 0x80
)

// ---------------- Bitmask helpers ----------------

// Has reports whether every bit of flag is set in b.
func (b MainEvents) Has(flag MainEvents) bool   { return b&flag == flag }
func (b Commands) Has(flag Commands) bool       { return b&flag == flag }
func (b DebugEvents) Has(flag DebugEvents) bool { return b&flag == flag }
func (b SystemFlags) Has(flag SystemFlags) bool { return b&flag == flag }
func (b UIFlags) Has(flag UIFlags) bool         { return b&flag == flag }
func (b EventFlags) Has(flag EventFlags) bool   { return b&flag == flag }

type bitName struct {
	bit  byte
	name string
}

var (
	mainEventNames = []bitName{
		{byte(EventProx), "PROX"},
		{byte(EventTouch), "TOUCH"},
		{byte(EventRelease), "RELEASE"},
		{byte(EventColdBoot), "COLD_BOOT"},
		{byte(EventWarmBoot), "WARM_BOOT"},
		{byte(EventSensingDisabled), "SENSING_DISABLED"},
	}
	commandNames = []bitName{
		{byte(CmdStandalone), "STANDALONE"},
		{byte(CmdToggleULPMode), "TOGGLE_ULP_MODE"},
		{byte(CmdToggleACFilter), "TOGGLE_AC_FILTER"},
		{byte(CmdEnableSensing), "ENABLE_SENSING"},
		{byte(CmdDisableSensing), "DISABLE_SENSING"},
		{byte(CmdATICh0), "ATI_CH0"},
	}
	debugEventNames = []bitName{
		{byte(DebugMovement), "MOVEMENT"},
		{byte(DebugEnterMovDetect), "ENTER_MOV_DETECT"},
		{byte(DebugExitMovDetect), "EXIT_MOV_DETECT"},
		{byte(DebugQuickRelease), "QUICK_RELEASE"},
		{byte(DebugCH0ATI), "CH0_ATI"},
		{byte(DebugATIError), "ATI_ERROR"},
	}
	systemFlagNames = []bitName{
		{byte(SysZoomMode), "ZOOM_MODE"},
		{byte(SysATIMode), "ATI_MODE"},
		{byte(SysCH0LTAHalted), "CH0_LTA_HALTED"},
		{byte(SysNoSync), "NO_SYNC"},
		{byte(SysCurrentCh), "CURRENT_CH"},
		{byte(SysCH0Active), "CH0_ACTIVE"},
		{byte(SysTemp), "TEMP"},
		{byte(SysI2C), "I2C"},
	}
	uiFlagNames = []bitName{
		{byte(UIOutputActive), "OUTPUT_ACTIVE"},
		{byte(UIQuickRelease), "QUICK_RELEASE"},
		{byte(UISensingDisabled), "SENSING_DISABLED"},
		{byte(UIAutoATIOff), "AUTO_ATI_OFF"},
		{byte(UITemperatureReseed), "TEMPERATURE_RESEED"},
		{byte(UITempChannelATI), "TEMP_CHANNEL_ATI"},
	}
	eventFlagNames = []bitName{
		{byte(EvCH0Prox), "CH0_PROX"},
		{byte(EvCH0Touch), "CH0_TOUCH"},
		{byte(EvCH0Undebounced), "CH0_UNDEBOUNCED"},
		{byte(EvCH0ATIError), "CH0_ATI_ERROR"},
		{byte(EvCH1Movement), "CH1_MOVEMENT"},
		{byte(EvCH1ATIError), "CH1_ATI_ERROR"},
	}
)

// formatBits joins the names of the set bits with '|'. Bits without a name
// are appended in hex.
func formatBits(v byte, names []bitName) string {
	if v == 0 {
		return "0"
	}
	var sb strings.Builder
	for _, n := range names {
		if v&n.bit == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(n.name)
		v &^= n.bit
	}
	if v != 0 {
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		_, _ = fmt.Fprintf(&sb, "0x%02X", v)
	}
	return sb.String()
}

func (b MainEvents) String() string  { return formatBits(byte(b), mainEventNames) }
func (b Commands) String() string    { return formatBits(byte(b), commandNames) }
func (b DebugEvents) String() string { return formatBits(byte(b), debugEventNames) }
func (b SystemFlags) String() string { return formatBits(byte(b), systemFlagNames) }
func (b UIFlags) String() string     { return formatBits(byte(b), uiFlagNames) }
func (b EventFlags) String() string  { return formatBits(byte(b), eventFlagNames) }
