package audiometry

import "maps"

// Session is the staircase state for one (ear, frequency) pair.
type Session struct {
	Ear                     Ear            `json:"ear"`
	Frequency               Frequency      `json:"frequency"`
	Phase                   Phase          `json:"phase"`
	PreviousDirection       Direction      `json:"previous_direction"`
	ExcursionCount          int            `json:"excursion_count"`
	LastResponseLevel       *int           `json:"last_response_level"`    // nil until the first response.
	LastNoResponseLevel     *int           `json:"last_no_response_level"` // nil until the first miss.
	ValidAscendingResponses map[int]int    `json:"valid_ascending_responses"`
	PotentialThreshold      *int           `json:"potential_threshold"` // set only when Phase=Complete.
	History                 []Presentation `json:"history"`
}

// Key identifies a session.
type Key struct {
	Ear       Ear
	Frequency Frequency
}

// NewSession creates a session in the Initial phase.
func NewSession(ear Ear, freq Frequency) Session {
	return Session{
		Ear:                     ear,
		Frequency:               freq,
		Phase:                   Initial,
		PreviousDirection:       DirectionNone,
		ValidAscendingResponses: make(map[int]int),
	}
}

// Key returns the (ear, frequency) pair of the session.
func (s Session) Key() Key {
	return Key{Ear: s.Ear, Frequency: s.Frequency}
}

// ResponseCount returns the number of presentations made in this session.
func (s Session) ResponseCount() int {
	return len(s.History)
}

// IsComplete reports whether a threshold has been established.
func (s Session) IsComplete() bool {
	return s.Phase == Complete
}

// clone returns a deep copy of the session.
func (s Session) clone() Session {
	out := s
	if s.LastResponseLevel != nil {
		v := *s.LastResponseLevel
		out.LastResponseLevel = &v
	}
	if s.LastNoResponseLevel != nil {
		v := *s.LastNoResponseLevel
		out.LastNoResponseLevel = &v
	}
	if s.PotentialThreshold != nil {
		v := *s.PotentialThreshold
		out.PotentialThreshold = &v
	}
	out.ValidAscendingResponses = maps.Clone(s.ValidAscendingResponses)
	if out.ValidAscendingResponses == nil {
		out.ValidAscendingResponses = make(map[int]int)
	}
	out.History = append([]Presentation(nil), s.History...)
	return out
}

func (s *Session) setLastResponse(level int) {
	s.LastResponseLevel = &level
}

func (s *Session) setLastNoResponse(level int) {
	s.LastNoResponseLevel = &level
}

func (s *Session) setThreshold(level int) {
	s.PotentialThreshold = &level
}
