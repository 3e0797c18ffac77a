package audiometry

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Phase is the stage of the staircase for one (ear, frequency) pair.
type Phase int

const (
	Initial    Phase = iota + 1 // No response yet; searching upward in 10 dB steps.
	Descending                  // Dropping 10 dB after each response.
	Ascending                   // Rising 5 dB after each miss.
	Complete                    // Threshold established. Terminal.
)

var (
	phaseNames  = [...]string{Initial: "Initial", Descending: "Descending", Ascending: "Ascending", Complete: "Complete"}
	phaseByName = map[string]Phase{
		"Initial":    Initial,
		"Descending": Descending,
		"Ascending":  Ascending,
		"Complete":   Complete,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Phase(0)
	_ json.Marshaler           = Phase(0)
	_ json.Unmarshaler         = (*Phase)(nil)
	_ encoding.TextMarshaler   = Phase(0)
	_ encoding.TextUnmarshaler = (*Phase)(nil)
	_ fmt.Stringer             = Direction(0)
	_ json.Marshaler           = Direction(0)
	_ json.Unmarshaler         = (*Direction)(nil)
	_ encoding.TextMarshaler   = Direction(0)
	_ encoding.TextUnmarshaler = (*Direction)(nil)
)

func (p Phase) isValid() bool {
	return p >= Initial && p <= Complete
}

// String returns the name of the phase. For invalid values it returns "Phase(n)".
func (p Phase) String() string {
	if p.isValid() {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.isValid() {
		return nil, fmt.Errorf("audiometry: invalid phase: %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	v, ok := phaseByName[string(text)]
	if !ok {
		return fmt.Errorf("audiometry: invalid phase: %q", text)
	}
	*p = v
	return nil
}

// MarshalJSON implements json.Marshaler. Phase serializes as a JSON string.
func (p Phase) MarshalJSON() ([]byte, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("audiometry: invalid phase: %s", data)
	}
	return p.UnmarshalText([]byte(s))
}

// Direction is the direction of the presentation that produced the current
// phase.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionAscending
	DirectionDescending
)

var (
	directionNames  = [...]string{DirectionNone: "none", DirectionAscending: "ascending", DirectionDescending: "descending"}
	directionByName = map[string]Direction{
		"none":       DirectionNone,
		"ascending":  DirectionAscending,
		"descending": DirectionDescending,
	}
)

func (d Direction) isValid() bool {
	return d >= DirectionNone && d <= DirectionDescending
}

// String returns "none", "ascending" or "descending".
func (d Direction) String() string {
	if d.isValid() {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.isValid() {
		return nil, fmt.Errorf("audiometry: invalid direction: %d", int(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	v, ok := directionByName[string(text)]
	if !ok {
		return fmt.Errorf("audiometry: invalid direction: %q", text)
	}
	*d = v
	return nil
}

// MarshalJSON implements json.Marshaler. Direction serializes as a JSON string.
func (d Direction) MarshalJSON() ([]byte, error) {
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("audiometry: invalid direction: %s", data)
	}
	return d.UnmarshalText([]byte(s))
}
