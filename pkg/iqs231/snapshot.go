package iqs231

import "errors"

// Snapshot holds one read of every readable register group.
// Zero values remain where individual reads fail.
type Snapshot struct {
	// Events is the union of the events bytes of every read.
	Events MainEvents

	// ProductNumber and SoftwareVersion are raw so that an unexpected
	// value still shows up.
	ProductNumber   uint8
	SoftwareVersion uint8

	OTPBank1                  OTPBank1
	OTPBank2                  OTPBank2
	OTPBank3                  OTPBank3
	QuickRelease              QuickRelease
	Movement                  uint8
	TouchThreshold            uint16
	ProxThreshold             ProximityThreshold
	TempInterferenceThreshold uint8
	CH0Multipliers            ChannelMultiplier
	CH0Compensation           uint8
	CH1Multipliers            ChannelMultiplier
	CH1Compensation           uint8

	DebugEvents DebugEvents
	SystemFlags SystemFlags
	UIFlags     UIFlags
	ATIFlags    uint8
	EventFlags  EventFlags

	ProxFilteredCount         uint16
	ProxReferenceCount        uint16
	ProxQuickReleaseReference uint16
	MoveFilteredCount         uint16
	MoveUpperReference        uint16
	MoveLowerReference        uint16
	MoveUnfilteredCount       uint16
	TempReference             uint16

	LTAHaltTimer    uint16
	FilterHaltTimer uint8
	TimerReadInput  uint8
	TimerRedoATI    uint8
}

// Snapshot reads every register group once. Nothing is cached. Read
// failures are joined into the returned error and the rest of the
// snapshot is still filled in.
func (d *Device) Snapshot() (Snapshot, error) {
	var s Snapshot
	if d.bus == nil {
		return s, ErrReleased
	}
	var errs []error
	rec := func(ev MainEvents, err error) bool {
		if err != nil {
			errs = append(errs, err)
			return false
		}
		s.Events |= ev
		return true
	}

	if v, err := d.ReadRegister(RegProductNumber); rec(v.Events, err) {
		s.ProductNumber = v.Value
	}
	if v, err := d.ReadRegister(RegSoftwareVersion); rec(v.Events, err) {
		s.SoftwareVersion = v.Value
	}

	into(rec, &s.OTPBank1)(d.GetOTPBank1())
	into(rec, &s.OTPBank2)(d.GetOTPBank2())
	into(rec, &s.OTPBank3)(d.GetOTPBank3())
	into(rec, &s.QuickRelease)(d.GetQuickRelease())
	into(rec, &s.Movement)(d.GetMovement())
	into(rec, &s.TouchThreshold)(d.GetTouchThreshold())
	into(rec, &s.ProxThreshold)(d.GetProximityThreshold())
	into(rec, &s.TempInterferenceThreshold)(d.GetTempInterferenceThreshold())
	into(rec, &s.CH0Multipliers)(d.GetCH0Multipliers())
	into(rec, &s.CH0Compensation)(d.GetCH0Compensation())
	into(rec, &s.CH1Multipliers)(d.GetCH1Multipliers())
	into(rec, &s.CH1Compensation)(d.GetCH1Compensation())

	into(rec, &s.DebugEvents)(d.GetDebugEvents())
	into(rec, &s.SystemFlags)(d.GetSystemFlags())
	into(rec, &s.UIFlags)(d.GetUIFlags())
	into(rec, &s.ATIFlags)(d.GetATIFlags())
	into(rec, &s.EventFlags)(d.GetEventFlags())

	into(rec, &s.ProxFilteredCount)(d.GetProxFilteredCount())
	into(rec, &s.ProxReferenceCount)(d.GetProxReferenceCount())
	into(rec, &s.ProxQuickReleaseReference)(d.GetProxQuickReleaseReference())
	into(rec, &s.MoveFilteredCount)(d.GetMoveFilteredCount())
	into(rec, &s.MoveUpperReference)(d.GetMoveUpperReference())
	into(rec, &s.MoveLowerReference)(d.GetMoveLowerReference())
	into(rec, &s.MoveUnfilteredCount)(d.GetMoveUnfilteredCount())
	into(rec, &s.TempReference)(d.GetTempReference())

	into(rec, &s.LTAHaltTimer)(d.GetLTAHaltTimer())
	into(rec, &s.FilterHaltTimer)(d.GetFilterHaltTimer())
	into(rec, &s.TimerReadInput)(d.GetTimerReadInput())
	into(rec, &s.TimerRedoATI)(d.GetTimerRedoATI())

	return s, errors.Join(errs...)
}

func into[T any](rec func(MainEvents, error) bool, dst *T) func(Reading[T], error) {
	return func(r Reading[T], err error) {
		if rec(r.Events, err) {
			*dst = r.Value
		}
	}
}
