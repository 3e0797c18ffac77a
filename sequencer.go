package audiometry

import "math"

// Sessions holds the threshold sessions of a training run.
type Sessions map[Key]Session

// Progress summarizes testing in one ear. All lists are in protocol order.
type Progress struct {
	Tested     []Frequency `json:"tested"`     // frequencies with a session
	Completed  []Frequency `json:"completed"`  // frequencies with a marked threshold
	Incomplete []Frequency `json:"incomplete"` // presented but not yet marked
}

// Sequencer advises which frequency to test next.
type Sequencer struct {
	order ProtocolOrder
}

// DefaultStartingIntensity is the first level presented at a frequency when
// nothing else is known about the ear.
const DefaultStartingIntensity = 30

// NewSequencer creates a Sequencer for the order. A zero order selects
// StandardOrder.
func NewSequencer(order ProtocolOrder) (Sequencer, error) {
	if order == (ProtocolOrder{}) {
		order = StandardOrder
	}
	if err := order.Validate(); err != nil {
		return Sequencer{}, err
	}
	return Sequencer{order: order}, nil
}

// Order returns the protocol order.
func (q Sequencer) Order() ProtocolOrder {
	return q.order
}

// Progress reports tested, completed and incomplete frequencies for the ear.
func (q Sequencer) Progress(ear Ear, sessions Sessions, audiogram *Audiogram) Progress {
	var p Progress
	for _, f := range q.order {
		s, tested := sessions[Key{Ear: ear, Frequency: f}]
		done := audiogram.Has(ear, f)
		if tested {
			p.Tested = append(p.Tested, f)
		}
		if done {
			p.Completed = append(p.Completed, f)
		}
		if tested && !done && s.ResponseCount() > 0 {
			p.Incomplete = append(p.Incomplete, f)
		}
	}
	return p
}

// NextFrequency returns the first incomplete frequency, else the first
// frequency in protocol order without a marked threshold. When every
// frequency is marked it returns the first frequency of the order; use
// IsEarComplete to tell the two apart.
func (q Sequencer) NextFrequency(ear Ear, sessions Sessions, audiogram *Audiogram) Frequency {
	p := q.Progress(ear, sessions, audiogram)
	if len(p.Incomplete) > 0 {
		return p.Incomplete[0]
	}
	for _, f := range q.order {
		if !audiogram.Has(ear, f) {
			return f
		}
	}
	return q.order.First()
}

// NextInOrder returns the frequency after freq in protocol order, and false
// when freq is the last one.
func (q Sequencer) NextInOrder(freq Frequency) (Frequency, bool) {
	return q.order.After(freq)
}

// IsEarComplete reports whether every test frequency is marked for the ear.
func (q Sequencer) IsEarComplete(ear Ear, audiogram *Audiogram) bool {
	for _, f := range q.order {
		if !audiogram.Has(ear, f) {
			return false
		}
	}
	return true
}

// StartingIntensity suggests the first level to present at freq: 10 dB
// above the mean of the marked neighbouring frequencies, else 10 dB above
// the mean of everything marked in the ear, else DefaultStartingIntensity.
// The first protocol frequency always starts at the default.
func (q Sequencer) StartingIntensity(ear Ear, freq Frequency, audiogram *Audiogram) int {
	entries := audiogram.Entries(ear)
	if len(entries) == 0 || freq == q.order.First() {
		return DefaultStartingIntensity
	}

	var adjacent []int
	if i := freq.index(); i >= 0 {
		if i > 0 {
			if v, ok := audiogram.Get(ear, Frequencies[i-1]); ok {
				adjacent = append(adjacent, v)
			}
		}
		if i < len(Frequencies)-1 {
			if v, ok := audiogram.Get(ear, Frequencies[i+1]); ok {
				adjacent = append(adjacent, v)
			}
		}
	}
	if len(adjacent) > 0 {
		return roundMean(adjacent) + 10
	}

	all := make([]int, len(entries))
	for i, e := range entries {
		all[i] = e.Intensity
	}
	return roundMean(all) + 10
}

// roundMean returns the mean of vs rounded half up.
func roundMean(vs []int) int {
	sum := 0
	for _, v := range vs {
		sum += v
	}
	return int(math.Floor(float64(sum)/float64(len(vs)) + 0.5))
}
