package audiometry

import "maps"

// Profile is a simulated patient. Thresholds holds the latent hearing
// threshold in dB HL per ear and frequency; entries may be missing.
type Profile struct {
	ID                 int                       `json:"id"`
	Name               string                    `json:"name"`
	Age                int                       `json:"age"`
	Gender             string                    `json:"gender"`
	Occupation         string                    `json:"occupation"`
	Notes              string                    `json:"notes"`
	PatternDescription string                    `json:"pattern_description"`
	Thresholds         map[Ear]map[Frequency]int `json:"thresholds"`
}

// Threshold returns the latent threshold for the ear and frequency.
// A nil profile has no thresholds.
func (p *Profile) Threshold(ear Ear, freq Frequency) (int, bool) {
	if p == nil {
		return 0, false
	}
	level, ok := p.Thresholds[ear][freq]
	return level, ok
}

// Clone returns a deep copy of p. Clone of nil is nil.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	if p.Thresholds != nil {
		out.Thresholds = make(map[Ear]map[Frequency]int, len(p.Thresholds))
		for ear, levels := range p.Thresholds {
			out.Thresholds[ear] = maps.Clone(levels)
		}
	}
	return &out
}

// ProfileRepository looks up patients by ID.
type ProfileRepository interface {
	Profile(id int) (*Profile, error)
}
