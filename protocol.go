package audiometry

import (
	"fmt"
	"slices"
)

// ProtocolOrder is the order in which frequencies are tested in each ear.
type ProtocolOrder [len(Frequencies)]Frequency

var (
	// StandardOrder tests 1000 Hz first, rises through the high
	// frequencies, then fills in 1500 Hz and the low frequencies.
	StandardOrder = ProtocolOrder{1000, 2000, 3000, 4000, 6000, 8000, 1500, 500, 250}

	// AscendingMidOrder tests 1500 Hz in sequence between 1000 and 2000 Hz.
	AscendingMidOrder = ProtocolOrder{1000, 1500, 2000, 3000, 4000, 6000, 8000, 500, 250}
)

var ordersByName = map[string]ProtocolOrder{
	"standard":      StandardOrder,
	"ascending-mid": AscendingMidOrder,
}

// ParseProtocolOrder returns the named order ("standard" or "ascending-mid").
func ParseProtocolOrder(name string) (ProtocolOrder, error) {
	o, ok := ordersByName[name]
	if !ok {
		return ProtocolOrder{}, fmt.Errorf("%w: unknown protocol order %q", ErrInvalidConfig, name)
	}
	return o, nil
}

// Validate checks that o contains each test frequency exactly once.
func (o ProtocolOrder) Validate() error {
	sorted := o
	slices.Sort(sorted[:])
	if sorted != ProtocolOrder(Frequencies) {
		return fmt.Errorf("%w: protocol order %v is not a permutation of the test frequencies", ErrInvalidConfig, o)
	}
	return nil
}

// First returns the first frequency of the order.
func (o ProtocolOrder) First() Frequency {
	return o[0]
}

// After returns the frequency following f in the order.
// It returns false when f is last or not part of the order.
func (o ProtocolOrder) After(f Frequency) (Frequency, bool) {
	i := o.index(f)
	if i < 0 || i == len(o)-1 {
		return 0, false
	}
	return o[i+1], true
}

func (o ProtocolOrder) index(f Frequency) int {
	return slices.Index(o[:], f)
}
