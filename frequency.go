package audiometry

import (
	"fmt"
	"slices"
)

// Frequency is a pure-tone test frequency in Hz.
type Frequency int

// Frequencies is the fixed set of test frequencies, ascending.
var Frequencies = [...]Frequency{250, 500, 1000, 1500, 2000, 3000, 4000, 6000, 8000}

// IsValid reports whether f is one of the nine test frequencies.
func (f Frequency) IsValid() bool {
	return f.index() >= 0
}

// String returns the frequency with its unit, e.g. "1000 Hz".
func (f Frequency) String() string {
	return fmt.Sprintf("%d Hz", int(f))
}

// index returns the position of f in Frequencies, or -1.
func (f Frequency) index() int {
	return slices.Index(Frequencies[:], f)
}

// ValidateFrequency returns ErrInvalidFrequency unless f is a test frequency.
func ValidateFrequency(f Frequency) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidFrequency, int(f))
	}
	return nil
}

// Intensity limits of a typical clinical audiometer, in dB HL.
const (
	MinIntensity = -10
	MaxIntensity = 120
)

// ClampIntensity limits i to [MinIntensity, MaxIntensity]. The engine never
// clamps; callers apply this before dispatching a level to a device.
func ClampIntensity(i int) int {
	return min(max(i, MinIntensity), MaxIntensity)
}
