package audiometry

import (
	"encoding/json"
	"testing"
)

func TestPhaseValues(t *testing.T) {
	if Initial != 1 || Descending != 2 || Ascending != 3 || Complete != 4 {
		t.Errorf("phase values = %d %d %d %d, want 1 2 3 4", Initial, Descending, Ascending, Complete)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{Initial, "Initial"},
		{Descending, "Descending"},
		{Ascending, "Ascending"},
		{Complete, "Complete"},
		{Phase(0), "Phase(0)"},
		{Phase(5), "Phase(5)"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.p), got, tt.want)
		}
	}
}

func TestPhaseJSONRoundTrip(t *testing.T) {
	for _, p := range []Phase{Initial, Descending, Ascending, Complete} {
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", p, err)
		}
		var got Phase
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if got != p {
			t.Errorf("round trip %v → %s → %v", p, data, got)
		}
	}
}

func TestPhaseJSONInvalid(t *testing.T) {
	if _, err := json.Marshal(Phase(0)); err == nil {
		t.Error("Marshal(Phase(0)) should fail")
	}
	var p Phase
	if err := json.Unmarshal([]byte(`"Confirmation"`), &p); err == nil {
		t.Error("Unmarshal of unknown phase should fail")
	}
	if err := json.Unmarshal([]byte(`2`), &p); err == nil {
		t.Error("Unmarshal of number should fail")
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{DirectionNone, "none"},
		{DirectionAscending, "ascending"},
		{DirectionDescending, "descending"},
		{Direction(9), "Direction(9)"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", int(tt.d), got, tt.want)
		}
	}
}

func TestDirectionJSON(t *testing.T) {
	for _, d := range []Direction{DirectionNone, DirectionAscending, DirectionDescending} {
		data, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", d, err)
		}
		if want := `"` + d.String() + `"`; string(data) != want {
			t.Errorf("Marshal(%v) = %s, want %s", d, data, want)
		}
		var got Direction
		if err := json.Unmarshal(data, &got); err != nil || got != d {
			t.Errorf("Unmarshal(%s) = %v, %v; want %v", data, got, err, d)
		}
	}

	if _, err := json.Marshal(Direction(7)); err == nil {
		t.Error("Marshal of invalid direction should fail")
	}
	var d Direction
	if err := json.Unmarshal([]byte(`"sideways"`), &d); err == nil {
		t.Error("Unmarshal of unknown direction should fail")
	}
	if err := json.Unmarshal([]byte(`1`), &d); err == nil {
		t.Error("Unmarshal of number should fail")
	}
}
