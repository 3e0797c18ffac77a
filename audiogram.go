package audiometry

import "fmt"

// Entry is a marked threshold.
type Entry struct {
	Ear       Ear       `json:"ear"`
	Frequency Frequency `json:"frequency"`
	Intensity int       `json:"intensity"` // dB HL.
}

// Audiogram stores the thresholds the trainee has marked.
// The zero value is not usable; call NewAudiogram.
type Audiogram struct {
	thresholds map[Key]int
}

// NewAudiogram returns an empty audiogram.
func NewAudiogram() *Audiogram {
	return &Audiogram{thresholds: make(map[Key]int)}
}

// Mark records intensity as the threshold for the session's ear and
// frequency. It returns ErrNotReady, leaving the audiogram unchanged, unless
// the session has reached Complete. The stored intensity is the one given,
// which need not equal the session's PotentialThreshold.
func (a *Audiogram) Mark(ear Ear, freq Frequency, intensity int, session Session) error {
	if session.Ear != ear || session.Frequency != freq {
		return fmt.Errorf("%w: marking %s/%s with session %s/%s",
			ErrSessionMismatch, ear, freq, session.Ear, session.Frequency)
	}
	if session.Phase != Complete {
		return fmt.Errorf("%w: %s ear at %s is %s", ErrNotReady, ear, freq, session.Phase)
	}
	a.thresholds[Key{Ear: ear, Frequency: freq}] = intensity
	return nil
}

// Get returns the marked threshold for the ear and frequency.
func (a *Audiogram) Get(ear Ear, freq Frequency) (int, bool) {
	v, ok := a.thresholds[Key{Ear: ear, Frequency: freq}]
	return v, ok
}

// Has reports whether a threshold is marked for the ear and frequency.
func (a *Audiogram) Has(ear Ear, freq Frequency) bool {
	_, ok := a.Get(ear, freq)
	return ok
}

// Len returns the number of marked frequencies for the ear.
func (a *Audiogram) Len(ear Ear) int {
	n := 0
	for k := range a.thresholds {
		if k.Ear == ear {
			n++
		}
	}
	return n
}

// Entries returns the marked thresholds for the ear in ascending frequency.
func (a *Audiogram) Entries(ear Ear) []Entry {
	var out []Entry
	for _, f := range Frequencies {
		if v, ok := a.Get(ear, f); ok {
			out = append(out, Entry{Ear: ear, Frequency: f, Intensity: v})
		}
	}
	return out
}

// Clear removes every marked threshold.
func (a *Audiogram) Clear() {
	clear(a.thresholds)
}
