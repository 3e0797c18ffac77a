package grading

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sky-flux/audiometry"
)

var (
	// ErrNoProfile is returned when grading without a patient profile.
	ErrNoProfile = errors.New("grading: no patient profile")

	// ErrNoTrials is returned when a simulation is asked for zero trials.
	ErrNoTrials = errors.New("grading: trials must be positive")
)

// maxDifference is the mean deviation in dB that scores zero.
const maxDifference = 100

// Deviation compares one marked threshold with the latent threshold.
type Deviation struct {
	Ear       audiometry.Ear       `json:"ear"`
	Frequency audiometry.Frequency `json:"frequency"`
	Marked    int                  `json:"marked"`
	Latent    int                  `json:"latent"`
}

// Diff returns Marked - Latent. Positive means the mark was too high.
func (d Deviation) Diff() int {
	return d.Marked - d.Latent
}

// Report is the result of grading an audiogram.
type Report struct {
	Deviations  []Deviation `json:"deviations"`
	Skipped     int         `json:"skipped"` // marks with no latent threshold to compare
	MeanAbsDiff float64     `json:"mean_abs_diff"`
	Accuracy    int         `json:"accuracy"` // 0..100
}

// Grade compares entries against the profile's latent thresholds.
// Entries whose ear and frequency have no latent threshold are skipped and
// do not affect the score. With nothing to compare the accuracy is 0.
func Grade(entries []audiometry.Entry, profile *audiometry.Profile) (Report, error) {
	if profile == nil {
		return Report{}, ErrNoProfile
	}

	var r Report
	total := 0
	for _, e := range entries {
		latent, ok := profile.Threshold(e.Ear, e.Frequency)
		if !ok {
			r.Skipped++
			continue
		}
		d := Deviation{Ear: e.Ear, Frequency: e.Frequency, Marked: e.Intensity, Latent: latent}
		r.Deviations = append(r.Deviations, d)
		total += abs(d.Diff())
	}
	if len(r.Deviations) == 0 {
		return r, nil
	}

	r.MeanAbsDiff = float64(total) / float64(len(r.Deviations))
	r.Accuracy = int(math.Floor(100 - math.Min(maxDifference, r.MeanAbsDiff)*100/maxDifference + 0.5))
	return r, nil
}

// Summarize formats entries as "250 Hz: 20 dB HL, 500 Hz: 25 dB HL".
// Entries are expected in ascending frequency order, as returned by
// Audiogram.Entries.
func Summarize(entries []audiometry.Entry) string {
	if len(entries) == 0 {
		return "No thresholds marked"
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s: %d dB HL", e.Frequency, e.Intensity)
	}
	return strings.Join(parts, ", ")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
