package audiometry

// transition applies the state machine for one response and returns the
// next step. The presentation has already been appended to the history.
func (e *Engine) transition(s *Session, intensity int, heard bool) Step {
	switch s.Phase {
	case Initial:
		return e.transitionInitial(s, intensity, heard)
	case Descending:
		return e.transitionDescending(s, intensity, heard)
	case Ascending:
		return e.transitionAscending(s, intensity, heard)
	default:
		return Step{AlreadyComplete: true}
	}
}

// transitionInitial handles the first search for any response.
func (e *Engine) transitionInitial(s *Session, intensity int, heard bool) Step {
	if heard {
		s.Phase = Descending
		s.setLastResponse(intensity)
		s.PreviousDirection = DirectionDescending
		return next(intensity - e.descendStep)
	}

	// Stay Initial until the patient responds.
	s.setLastNoResponse(intensity)
	s.PreviousDirection = DirectionAscending
	return next(intensity + e.searchStep)
}

// transitionDescending drops after each response and turns upward on a miss.
func (e *Engine) transitionDescending(s *Session, intensity int, heard bool) Step {
	if heard {
		return e.descend(s, intensity)
	}
	s.Phase = Ascending
	s.setLastNoResponse(intensity)
	s.PreviousDirection = DirectionAscending
	return next(intensity + e.ascendStep)
}

// transitionAscending counts qualifying responses and establishes the
// threshold once one level has collected RequiredHits of them.
func (e *Engine) transitionAscending(s *Session, intensity int, heard bool) Step {
	if !heard {
		s.setLastNoResponse(intensity)
		s.PreviousDirection = DirectionAscending
		if s.LastResponseLevel == nil {
			return next(intensity + e.searchStep)
		}
		return next(intensity + e.ascendStep)
	}

	if e.qualifies(s) {
		s.ValidAscendingResponses[intensity]++
		if s.ValidAscendingResponses[intensity] >= e.requiredHits {
			s.Phase = Complete
			s.setThreshold(intensity)
			return Step{Established: true}
		}
	}
	return e.descend(s, intensity)
}

// descend starts (or continues) a descending run after a response.
func (e *Engine) descend(s *Session, intensity int) Step {
	s.Phase = Descending
	s.setLastResponse(intensity)
	s.ExcursionCount++
	s.PreviousDirection = DirectionDescending
	return next(intensity - e.descendStep)
}

// qualifies reports whether an ascending response counts toward threshold.
// Responses before the first full reversal are exploratory unless
// CountFirstAscent is set.
func (e *Engine) qualifies(s *Session) bool {
	if s.PreviousDirection != DirectionAscending {
		return false
	}
	return s.ExcursionCount >= 1 || e.countFirstAscent
}

func next(level int) Step {
	return Step{Next: level, HasNext: true}
}
