package audiometry

import (
	"math/rand"
	"testing"
)

var allowedTransitions = map[Phase][]Phase{
	Initial:    {Initial, Descending},
	Descending: {Descending, Ascending},
	Ascending:  {Ascending, Descending, Complete},
	Complete:   {Complete},
}

func transitionAllowed(from, to Phase) bool {
	for _, p := range allowedTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

func totalValid(s Session) int {
	n := 0
	for _, c := range s.ValidAscendingResponses {
		n += c
	}
	return n
}

// checkStep verifies the invariants that must hold between two consecutive
// sessions.
func checkStep(t *testing.T, e *Engine, prev, cur Session, heard bool, step Step) {
	t.Helper()
	if !transitionAllowed(prev.Phase, cur.Phase) {
		t.Fatalf("illegal transition %v → %v", prev.Phase, cur.Phase)
	}

	qualified := prev.Phase == Ascending && heard &&
		prev.PreviousDirection == DirectionAscending && prev.ExcursionCount >= 1
	delta := totalValid(cur) - totalValid(prev)
	switch {
	case qualified && delta != 1:
		t.Fatalf("qualifying response changed valid count by %d", delta)
	case !qualified && delta != 0:
		t.Fatalf("non-qualifying presentation changed valid count by %d (prev %+v)", delta, prev)
	}

	if prev.Phase == Complete {
		if cur.ExcursionCount != prev.ExcursionCount || *cur.PotentialThreshold != *prev.PotentialThreshold {
			t.Fatal("Complete session changed")
		}
		if !step.AlreadyComplete {
			t.Fatal("AlreadyComplete not set on Complete session")
		}
	}

	if cur.Phase == Complete {
		if cur.PotentialThreshold == nil {
			t.Fatal("Complete without PotentialThreshold")
		}
		if cur.ValidAscendingResponses[*cur.PotentialThreshold] < e.requiredHits {
			t.Fatalf("threshold %d has only %d valid responses",
				*cur.PotentialThreshold, cur.ValidAscendingResponses[*cur.PotentialThreshold])
		}
	} else {
		if cur.PotentialThreshold != nil {
			t.Fatalf("PotentialThreshold set in phase %v", cur.Phase)
		}
		for level, n := range cur.ValidAscendingResponses {
			if n >= e.requiredHits {
				t.Fatalf("level %d reached %d valid responses without completing", level, n)
			}
		}
		if !step.HasNext {
			t.Fatal("incomplete session has no next intensity")
		}
	}

	if cur.ResponseCount() != prev.ResponseCount()+1 {
		t.Fatalf("history grew by %d", cur.ResponseCount()-prev.ResponseCount())
	}
}

func TestInvariantsRandomResponses(t *testing.T) {
	e := mustEngine(t, EngineConfig{MaxPresentations: -1})
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		s := NewSession(Left, 1000)
		level := 30
		for i := 0; i < 80; i++ {
			heard := rng.Intn(2) == 0
			next, step, err := e.Advance(s, level, heard)
			if err != nil {
				t.Fatalf("trial %d step %d: %v", trial, i, err)
			}
			checkStep(t, e, s, next, heard, step)
			s = next
			if step.HasNext {
				level = step.Next
			}
		}
	}
}

func TestInvariantsSimulatedPatient(t *testing.T) {
	e := mustEngine(t, EngineConfig{})
	m := NewResponseModel(ResponseConfig{})
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 300; trial++ {
		latent := rng.Intn(100) - 5
		profile := &Profile{Thresholds: map[Ear]map[Frequency]int{Right: {4000: latent}}}
		s := NewSession(Right, 4000)
		level := DefaultStartingIntensity

		for !s.IsComplete() {
			heard := m.Respond(Right, 4000, level, profile, rng)
			next, step, err := e.Advance(s, level, heard)
			if err != nil {
				t.Fatalf("trial %d (latent %d): %v", trial, latent, err)
			}
			checkStep(t, e, s, next, heard, step)
			s = next
			level = step.Next
		}

		got := *s.PotentialThreshold
		if got < latent-m.Variability || got > latent+m.Variability+e.ascendStep {
			t.Errorf("trial %d: threshold %d too far from latent %d", trial, got, latent)
		}
	}
}

func TestSimulationReproducible(t *testing.T) {
	run := func(seed int64) []Presentation {
		e := mustEngine(t, EngineConfig{})
		m := NewResponseModel(ResponseConfig{})
		rng := rand.New(rand.NewSource(seed))
		s := NewSession(Left, 2000)
		level := 30
		for !s.IsComplete() {
			heard := m.Respond(Left, 2000, level, nil, rng)
			var step Step
			s, step = advance(t, e, s, level, heard)
			level = step.Next
		}
		return s.History
	}

	a, b := run(123), run(123)
	if len(a) != len(b) {
		t.Fatalf("history lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("presentation %d: %+v != %+v with same seed", i, a[i], b[i])
		}
	}
}
