package grading

import (
	"fmt"

	"github.com/sky-flux/audiometry"
)

// Miss is a presentation that did not use the recommended intensity.
type Miss struct {
	Index       int `json:"index"` // position in the session history
	Recommended int `json:"recommended"`
	Presented   int `json:"presented"`
}

// AdherenceReport describes how closely a session followed the procedure.
type AdherenceReport struct {
	Presentations int    `json:"presentations"`
	Checked       int    `json:"checked"` // presentations that had a recommendation
	Followed      int    `json:"followed"`
	Misses        []Miss `json:"misses"`
}

// Rate returns Followed/Checked, or 1 when nothing was checked.
func (r AdherenceReport) Rate() float64 {
	if r.Checked == 0 {
		return 1
	}
	return float64(r.Followed) / float64(r.Checked)
}

// Adherence replays session's history through engine from a fresh session
// and compares each presentation with the intensity the engine recommended
// after the previous one. The first presentation is the trainee's choice
// and is not checked, nor is anything presented after the threshold was
// established.
func Adherence(engine *audiometry.Engine, session audiometry.Session) (AdherenceReport, error) {
	r := AdherenceReport{Presentations: len(session.History)}
	s := audiometry.NewSession(session.Ear, session.Frequency)

	var prev audiometry.Step
	for i, p := range session.History {
		if i > 0 && prev.HasNext {
			r.Checked++
			if p.Intensity == prev.Next {
				r.Followed++
			} else {
				r.Misses = append(r.Misses, Miss{Index: i, Recommended: prev.Next, Presented: p.Intensity})
			}
		}

		var err error
		s, prev, err = engine.Advance(s, p.Intensity, p.Heard)
		if err != nil {
			return r, fmt.Errorf("grading: replay presentation %d: %w", i, err)
		}
	}
	return r, nil
}
