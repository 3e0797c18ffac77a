package audiometry

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ControllerConfig configures a Controller.
// Zero values produce sensible defaults; see field comments.
type ControllerConfig struct {
	Engine   EngineConfig   `json:"engine"`
	Response ResponseConfig `json:"response"`
	Order    ProtocolOrder  `json:"order"` // zero → StandardOrder
	Seed     int64          `json:"seed"`  // zero → seeded from the clock; ignored with WithRNG
}

// Option customizes a Controller.
type Option func(*Controller)

// WithRNG sets the random source for patient responses.
func WithRNG(rng RNG) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithLogger sets the logger. The default, also used for nil, discards
// everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log == nil {
			log = zap.NewNop()
		}
		c.log = log
	}
}

// WithMetrics sets the metric instruments. The default records nothing.
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// ToneResult is the outcome of presenting one tone.
type ToneResult struct {
	Heard   bool    `json:"heard"`
	Session Session `json:"session"`
	Step    Step    `json:"step"`
}

// Controller owns the sessions and audiogram of one training run.
// It is safe for concurrent use; presentations are serialized.
type Controller struct {
	engine  *Engine
	model   ResponseModel
	seq     Sequencer
	rng     RNG
	log     *zap.Logger
	metrics *Metrics

	mu        sync.Mutex
	profile   *Profile
	sessions  Sessions
	audiogram *Audiogram
}

// NewController creates a Controller with no patient selected. Until a
// patient is selected every response uses the fallback threshold.
func NewController(cfg ControllerConfig, opts ...Option) (*Controller, error) {
	engine, err := NewEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}
	seq, err := NewSequencer(cfg.Order)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		engine:    engine,
		model:     NewResponseModel(cfg.Response),
		seq:       seq,
		log:       zap.NewNop(),
		sessions:  make(Sessions),
		audiogram: NewAudiogram(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		c.rng = rand.New(rand.NewSource(seed))
	}
	return c, nil
}

// Engine returns the staircase engine.
func (c *Controller) Engine() *Engine {
	return c.engine
}

// Sequencer returns the frequency sequencer.
func (c *Controller) Sequencer() Sequencer {
	return c.seq
}

func validatePair(ear Ear, freq Frequency) error {
	if !ear.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidEar, int(ear))
	}
	return ValidateFrequency(freq)
}

// PresentTone presents a tone to the patient, advances the matching session
// (creating it on first use) and returns the response with the updated
// session and next step.
func (c *Controller) PresentTone(ear Ear, freq Frequency, intensity int) (ToneResult, error) {
	if err := validatePair(ear, freq); err != nil {
		return ToneResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key{Ear: ear, Frequency: freq}
	s, ok := c.sessions[key]
	if !ok {
		s = NewSession(ear, freq)
		c.sessions[key] = s
		c.log.Debug("session created", zap.Stringer("ear", ear), zap.Int("frequency", int(freq)))
	}

	if _, known := c.model.LatentThreshold(ear, freq, c.profile); !known {
		c.log.Debug("no latent threshold for patient, using fallback",
			zap.Stringer("ear", ear),
			zap.Int("frequency", int(freq)),
			zap.Int("fallback", c.model.FallbackThreshold))
	}
	heard := c.model.Respond(ear, freq, intensity, c.profile, c.rng)

	next, step, err := c.engine.Advance(s, intensity, heard)
	if err != nil {
		c.log.Warn("presentation rejected",
			zap.Stringer("ear", ear), zap.Int("frequency", int(freq)), zap.Error(err))
		return ToneResult{Heard: heard, Session: s.clone()}, err
	}
	c.sessions[key] = next

	c.log.Debug("tone presented",
		zap.Stringer("ear", ear),
		zap.Int("frequency", int(freq)),
		zap.Int("intensity", intensity),
		zap.Bool("heard", heard),
		zap.Stringer("phase", next.Phase),
		zap.Int("excursions", next.ExcursionCount))
	if step.Established {
		c.log.Info("threshold established",
			zap.Stringer("ear", ear),
			zap.Int("frequency", int(freq)),
			zap.Int("threshold", *next.PotentialThreshold),
			zap.Int("presentations", next.ResponseCount()))
	}
	c.metrics.recordPresentation(context.Background(), next, heard, step.Established)

	return ToneResult{Heard: heard, Session: next.clone(), Step: step}, nil
}

// MarkThreshold records intensity on the audiogram. It returns ErrNotReady,
// leaving the audiogram unchanged, unless the session's threshold has been
// established.
func (c *Controller) MarkThreshold(ear Ear, freq Frequency, intensity int) error {
	if err := validatePair(ear, freq); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	s, ok := c.sessions[Key{Ear: ear, Frequency: freq}]
	if !ok {
		err = fmt.Errorf("%w: %s ear at %s has not been tested", ErrNotReady, ear, freq)
	} else {
		err = c.audiogram.Mark(ear, freq, intensity, s)
	}
	c.metrics.recordMark(context.Background(), ear, freq, err)
	if err != nil {
		c.log.Warn("mark rejected", zap.Stringer("ear", ear), zap.Int("frequency", int(freq)), zap.Error(err))
		return err
	}

	c.log.Info("threshold marked",
		zap.Stringer("ear", ear), zap.Int("frequency", int(freq)), zap.Int("intensity", intensity))
	return nil
}

// Progress reports testing progress for the ear.
func (c *Controller) Progress(ear Ear) Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.Progress(ear, c.sessions, c.audiogram)
}

// NextFrequencyToTest returns the frequency the trainee should test next in
// the ear. See Sequencer.NextFrequency.
func (c *Controller) NextFrequencyToTest(ear Ear) Frequency {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.NextFrequency(ear, c.sessions, c.audiogram)
}

// IsEarComplete reports whether every frequency is marked for the ear.
func (c *Controller) IsEarComplete(ear Ear) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.IsEarComplete(ear, c.audiogram)
}

// IsAudiogramComplete reports whether both ears are complete.
func (c *Controller) IsAudiogramComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ear := range Ears {
		if !c.seq.IsEarComplete(ear, c.audiogram) {
			return false
		}
	}
	return true
}

// SuggestedIntensity returns the level to start testing freq at, based on
// what is already marked in the ear.
func (c *Controller) SuggestedIntensity(ear Ear, freq Frequency) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.StartingIntensity(ear, freq, c.audiogram)
}

// Session returns a copy of the session for the ear and frequency.
func (c *Controller) Session(ear Ear, freq Frequency) (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[Key{Ear: ear, Frequency: freq}]
	if !ok {
		return Session{}, false
	}
	return s.clone(), true
}

// Threshold returns the marked threshold for the ear and frequency.
func (c *Controller) Threshold(ear Ear, freq Frequency) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.audiogram.Get(ear, freq)
}

// Entries returns the marked thresholds for the ear in ascending frequency.
func (c *Controller) Entries(ear Ear) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.audiogram.Entries(ear)
}

// Profile returns a copy of the selected patient, or nil.
func (c *Controller) Profile() *Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Clone()
}

// Reset clears all sessions and the audiogram. The patient is kept.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.log.Info("training run reset")
}

// SelectPatient switches to a copy of the given patient and clears all
// sessions and the audiogram.
func (c *Controller) SelectPatient(p *Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = p.Clone()
	c.resetLocked()
	if p != nil {
		c.log.Info("patient selected", zap.Int("patient_id", p.ID), zap.String("pattern", p.PatternDescription))
	}
}

// SelectPatientByID looks the patient up in repo and selects it.
func (c *Controller) SelectPatientByID(repo ProfileRepository, id int) error {
	if repo == nil {
		return fmt.Errorf("%w: no profile repository", ErrNoPatient)
	}
	p, err := repo.Profile(id)
	if err != nil {
		return fmt.Errorf("select patient %d: %w", id, err)
	}
	c.SelectPatient(p)
	return nil
}

func (c *Controller) resetLocked() {
	c.sessions = make(Sessions)
	c.audiogram.Clear()
}
