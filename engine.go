package audiometry

import (
	"encoding/json"
	"fmt"
)

// EngineConfig configures an Engine.
// Zero values produce the clinical defaults; see field comments.
type EngineConfig struct {
	DescendStep      int  `json:"descend_step"`       // zero → 10 dB drop after a response
	AscendStep       int  `json:"ascend_step"`        // zero → 5 dB rise after a miss once bracketing
	SearchStep       int  `json:"search_step"`        // zero → 10 dB rise while no response has been seen
	RequiredHits     int  `json:"required_hits"`      // zero → 2 ascending responses at one level
	MaxPresentations int  `json:"max_presentations"`  // zero → 60; negative → unbounded
	CountFirstAscent bool `json:"count_first_ascent"` // count responses before the first reversal
}

// Step describes what the trainee should do after a presentation.
type Step struct {
	Next            int  `json:"next"`             // next intensity, valid when HasNext
	HasNext         bool `json:"has_next"`         // false once the threshold is established
	Established     bool `json:"established"`      // this presentation established the threshold
	AlreadyComplete bool `json:"already_complete"` // the session was Complete before this presentation
}

// Engine advances threshold sessions through the Hughson-Westlake staircase.
// An Engine holds no per-session state and is safe for concurrent use.
type Engine struct {
	descendStep      int
	ascendStep       int
	searchStep       int
	requiredHits     int
	maxPresentations int
	countFirstAscent bool
}

const defaultMaxPresentations = 60

// NewEngine creates an Engine from the given config.
// Zero-value fields are filled with defaults; invalid values return an error.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	e := &Engine{
		descendStep:      cfg.DescendStep,
		ascendStep:       cfg.AscendStep,
		searchStep:       cfg.SearchStep,
		requiredHits:     cfg.RequiredHits,
		maxPresentations: cfg.MaxPresentations,
		countFirstAscent: cfg.CountFirstAscent,
	}
	if e.descendStep == 0 {
		e.descendStep = 10
	}
	if e.ascendStep == 0 {
		e.ascendStep = 5
	}
	if e.searchStep == 0 {
		e.searchStep = 10
	}
	if e.requiredHits == 0 {
		e.requiredHits = 2
	}
	if e.maxPresentations == 0 {
		e.maxPresentations = defaultMaxPresentations
	}

	if e.descendStep < 0 || e.ascendStep < 0 || e.searchStep < 0 {
		return nil, fmt.Errorf("%w: step sizes must be positive (descend %d, ascend %d, search %d)",
			ErrInvalidConfig, e.descendStep, e.ascendStep, e.searchStep)
	}
	if e.requiredHits < 0 {
		return nil, fmt.Errorf("%w: required hits %d must be positive", ErrInvalidConfig, e.requiredHits)
	}
	return e, nil
}

// Config returns the effective configuration, defaults included.
func (e *Engine) Config() EngineConfig {
	return EngineConfig{
		DescendStep:      e.descendStep,
		AscendStep:       e.ascendStep,
		SearchStep:       e.searchStep,
		RequiredHits:     e.requiredHits,
		MaxPresentations: e.maxPresentations,
		CountFirstAscent: e.countFirstAscent,
	}
}

// Advance records a presentation at intensity and applies the staircase
// transition for the patient's response. It returns the updated session and
// the next step. The input session is not mutated.
//
// Advancing a Complete session only appends to its history; Step.AlreadyComplete
// is set and the threshold is left as it was. Once an incomplete session holds
// MaxPresentations presentations Advance returns ErrPresentationLimit.
func (e *Engine) Advance(session Session, intensity int, heard bool) (Session, Step, error) {
	s := session.clone()
	if !s.Phase.isValid() {
		return s, Step{}, fmt.Errorf("audiometry: invalid phase: %d", int(s.Phase))
	}
	if s.Phase != Complete && e.maxPresentations > 0 && len(s.History) >= e.maxPresentations {
		return s, Step{}, fmt.Errorf("%w: %s ear at %s after %d presentations",
			ErrPresentationLimit, s.Ear, s.Frequency, len(s.History))
	}

	s.History = append(s.History, Presentation{
		Ear:       s.Ear,
		Frequency: s.Frequency,
		Intensity: intensity,
		Heard:     heard,
	})
	return s, e.transition(&s, intensity, heard), nil
}

// Preview returns the step that would follow a response and a miss at
// intensity, without changing the session. It returns the error Advance
// would return, such as ErrPresentationLimit.
func (e *Engine) Preview(session Session, intensity int) (heard, missed Step, err error) {
	if _, heard, err = e.Advance(session, intensity, true); err != nil {
		return Step{}, Step{}, err
	}
	if _, missed, err = e.Advance(session, intensity, false); err != nil {
		return Step{}, Step{}, err
	}
	return heard, missed, nil
}

// Replay applies the given presentations in order to rebuild the session.
// Returns ErrSessionMismatch if any presentation is for another ear or
// frequency.
func (e *Engine) Replay(session Session, history []Presentation) (Session, error) {
	s := session.clone()
	for i, p := range history {
		if p.Ear != s.Ear || p.Frequency != s.Frequency {
			return Session{}, fmt.Errorf("%w: session %s/%s, presentation %d is %s/%s",
				ErrSessionMismatch, s.Ear, s.Frequency, i, p.Ear, p.Frequency)
		}
		var err error
		s, _, err = e.Advance(s, p.Intensity, p.Heard)
		if err != nil {
			return Session{}, err
		}
	}
	return s, nil
}

// MarshalJSON implements json.Marshaler.
func (e *Engine) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Config())
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Engine) UnmarshalJSON(data []byte) error {
	var cfg EngineConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}
	rebuilt, err := NewEngine(cfg)
	if err != nil {
		return err
	}
	*e = *rebuilt
	return nil
}
