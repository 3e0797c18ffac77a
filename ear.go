package audiometry

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Ear identifies the test ear.
type Ear int

const (
	Left  Ear = iota + 1 // Plotted as X on a standard audiogram.
	Right                // Plotted as O.
)

// Ears lists both ears in conventional test order.
var Ears = [...]Ear{Left, Right}

var (
	earNames  = [...]string{Left: "left", Right: "right"}
	earByName = map[string]Ear{
		"left":  Left,
		"right": Right,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Ear(0)
	_ json.Marshaler           = Ear(0)
	_ json.Unmarshaler         = (*Ear)(nil)
	_ encoding.TextMarshaler   = Ear(0)
	_ encoding.TextUnmarshaler = (*Ear)(nil)
)

// IsValid reports whether e is Left or Right.
func (e Ear) IsValid() bool {
	return e >= Left && e <= Right
}

// String returns "left" or "right". For invalid values it returns "Ear(n)".
func (e Ear) String() string {
	if e.IsValid() {
		return earNames[e]
	}
	return fmt.Sprintf("Ear(%d)", int(e))
}

// Other returns the opposite ear. Invalid ears are returned unchanged.
func (e Ear) Other() Ear {
	switch e {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return e
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Ear) MarshalText() ([]byte, error) {
	if !e.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEar, int(e))
	}
	return []byte(earNames[e]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Ear) UnmarshalText(text []byte) error {
	v, ok := earByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidEar, text)
	}
	*e = v
	return nil
}

// MarshalJSON implements json.Marshaler. Ear serializes as a JSON string.
func (e Ear) MarshalJSON() ([]byte, error) {
	text, err := e.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (e *Ear) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidEar, data)
	}
	return e.UnmarshalText([]byte(s))
}
