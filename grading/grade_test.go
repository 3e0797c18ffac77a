package grading

import (
	"errors"
	"testing"

	"github.com/sky-flux/audiometry"
)

func testProfile() *audiometry.Profile {
	return &audiometry.Profile{
		Name: "Test",
		Thresholds: map[audiometry.Ear]map[audiometry.Frequency]int{
			audiometry.Left:  {1000: 25, 2000: 30, 4000: 45},
			audiometry.Right: {1000: 10},
		},
	}
}

func TestGradeAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		entries []audiometry.Entry
		want    int
		mean    float64
	}{
		{"exact", []audiometry.Entry{{Ear: audiometry.Left, Frequency: 1000, Intensity: 25}}, 100, 0},
		{"mean 5 dB", []audiometry.Entry{
			{Ear: audiometry.Left, Frequency: 1000, Intensity: 25},
			{Ear: audiometry.Left, Frequency: 2000, Intensity: 40},
		}, 95, 5},
		{"rounds half up", []audiometry.Entry{
			{Ear: audiometry.Left, Frequency: 1000, Intensity: 25},
			{Ear: audiometry.Left, Frequency: 2000, Intensity: 25},
		}, 98, 2.5},
		{"too low counts the same", []audiometry.Entry{
			{Ear: audiometry.Right, Frequency: 1000, Intensity: 0},
		}, 90, 10},
		// |120-45| = 75 and |120-10| = 110 give a mean of 92.5.
		{"large deviations", []audiometry.Entry{
			{Ear: audiometry.Left, Frequency: 4000, Intensity: 120},
			{Ear: audiometry.Right, Frequency: 1000, Intensity: 120},
		}, 8, 92.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Grade(tt.entries, testProfile())
			if err != nil {
				t.Fatalf("Grade: %v", err)
			}
			if r.Accuracy != tt.want {
				t.Errorf("Accuracy = %d, want %d", r.Accuracy, tt.want)
			}
			if r.MeanAbsDiff != tt.mean {
				t.Errorf("MeanAbsDiff = %v, want %v", r.MeanAbsDiff, tt.mean)
			}
		})
	}
}

func TestGradeFarOff(t *testing.T) {
	p := &audiometry.Profile{Thresholds: map[audiometry.Ear]map[audiometry.Frequency]int{
		audiometry.Left: {1000: -10},
	}}
	r, err := Grade([]audiometry.Entry{{Ear: audiometry.Left, Frequency: 1000, Intensity: 110}}, p)
	if err != nil {
		t.Fatal(err)
	}
	if r.Accuracy != 0 {
		t.Errorf("Accuracy = %d, want 0 for a 120 dB miss", r.Accuracy)
	}
}

func TestGradeSkipsUnknownThresholds(t *testing.T) {
	entries := []audiometry.Entry{
		{Ear: audiometry.Left, Frequency: 1000, Intensity: 30},
		{Ear: audiometry.Right, Frequency: 1500, Intensity: 20},
	}
	r, err := Grade(entries, testProfile())
	if err != nil {
		t.Fatal(err)
	}
	if r.Skipped != 1 || len(r.Deviations) != 1 {
		t.Fatalf("Skipped = %d, Deviations = %d; want 1, 1", r.Skipped, len(r.Deviations))
	}
	d := r.Deviations[0]
	if d.Latent != 25 || d.Marked != 30 || d.Diff() != 5 {
		t.Errorf("deviation = %+v, diff %d", d, d.Diff())
	}
}

func TestGradeNothingComparable(t *testing.T) {
	r, err := Grade(nil, testProfile())
	if err != nil {
		t.Fatal(err)
	}
	if r.Accuracy != 0 || r.MeanAbsDiff != 0 {
		t.Errorf("empty report = %+v", r)
	}
}

func TestGradeNoProfile(t *testing.T) {
	if _, err := Grade(nil, nil); !errors.Is(err, ErrNoProfile) {
		t.Errorf("error = %v, want ErrNoProfile", err)
	}
}

func TestSummarize(t *testing.T) {
	if got := Summarize(nil); got != "No thresholds marked" {
		t.Errorf("Summarize(nil) = %q", got)
	}

	entries := []audiometry.Entry{
		{Ear: audiometry.Left, Frequency: 250, Intensity: 20},
		{Ear: audiometry.Left, Frequency: 1000, Intensity: 35},
	}
	want := "250 Hz: 20 dB HL, 1000 Hz: 35 dB HL"
	if got := Summarize(entries); got != want {
		t.Errorf("Summarize = %q, want %q", got, want)
	}
}
