package iqs231

import "fmt"

// Touch threshold limits in counts.
const (
	TouchThresholdMin = 4
	TouchThresholdMax = 1024
)

// EncodeTouchThreshold converts a touch threshold in counts to the register
// code (counts-4)/4. The conversion loses up to 3 counts.
func EncodeTouchThreshold(counts uint16) (uint8, error) {
	if counts < TouchThresholdMin || counts > TouchThresholdMax {
		return 0, outOfRange("touch threshold %d not in %d..%d", counts, TouchThresholdMin, TouchThresholdMax)
	}
	return uint8((counts - TouchThresholdMin) >> 2), nil
}

// DecodeTouchThreshold converts a register code to counts: code*4+4.
func DecodeTouchThreshold(code uint8) uint16 {
	return uint16(code)<<2 + TouchThresholdMin
}

// ProximityThreshold is a 2-bit proximity threshold selection.
type ProximityThreshold uint8

const (
	Prox4Counts ProximityThreshold = iota
	Prox6Counts
	Prox8Counts
	Prox10Counts
)

// DecodeProximityThreshold uses the low two bits of b.
func DecodeProximityThreshold(b byte) ProximityThreshold {
	return ProximityThreshold(b & 0x03)
}

// Counts returns the threshold in counts, or 0 for an invalid value.
func (p ProximityThreshold) Counts() uint16 {
	if p > Prox10Counts {
		return 0
	}
	return 4 + 2*uint16(p)
}

func (p ProximityThreshold) String() string {
	if p > Prox10Counts {
		return fmt.Sprintf("(invalid proximity threshold %d)", uint8(p))
	}
	return fmt.Sprintf("%d counts", p.Counts())
}

// QuickReleaseThreshold is the 4-bit quick release threshold code.
type QuickReleaseThreshold uint8

const (
	QRT100 QuickReleaseThreshold = iota
	QRT150
	QRT50
	QRT250
	QRT10
	QRT20
	QRT25
	QRT30
	QRT75
	QRT200
	QRT300
	QRT400
	QRT500
	QRT750
	QRT850
	QRT1000
)

// quickReleaseCounts is indexed by code; quickReleaseCodes is its inverse.
var (
	quickReleaseCounts = [16]uint16{
		100, 150, 50, 250, 10, 20, 25, 30,
		75, 200, 300, 400, 500, 750, 850, 1000,
	}
	quickReleaseCodes = func() map[uint16]QuickReleaseThreshold {
		m := make(map[uint16]QuickReleaseThreshold, len(quickReleaseCounts))
		for code, counts := range quickReleaseCounts {
			m[counts] = QuickReleaseThreshold(code)
		}
		return m
	}()
)

// Counts returns the threshold in counts, or 0 for an invalid code.
func (q QuickReleaseThreshold) Counts() uint16 {
	if int(q) >= len(quickReleaseCounts) {
		return 0
	}
	return quickReleaseCounts[q]
}

// QuickReleaseThresholdFromCounts returns the code for one of the sixteen
// supported thresholds.
func QuickReleaseThresholdFromCounts(counts uint16) (QuickReleaseThreshold, error) {
	q, ok := quickReleaseCodes[counts]
	if !ok {
		return 0, outOfRange("quick release threshold %d counts not supported", counts)
	}
	return q, nil
}

func (q QuickReleaseThreshold) String() string {
	if int(q) >= len(quickReleaseCounts) {
		return fmt.Sprintf("(invalid quick release threshold 0x%X)", uint8(q))
	}
	return fmt.Sprintf("%d counts", quickReleaseCounts[q])
}
