package audiometry

// RNG is the source of randomness for patient responses.
// *math/rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
}

// ResponseModel simulates whether a patient perceives a tone.
type ResponseModel struct {
	// Variability is the half-width in dB of the uniform jitter applied to
	// the latent threshold on every presentation.
	Variability int `json:"variability"`
	// FallbackThreshold is used when the profile has no entry for the ear
	// and frequency.
	FallbackThreshold int `json:"fallback_threshold"`
}

// ResponseConfig configures a ResponseModel.
type ResponseConfig struct {
	Variability       int  `json:"variability"`        // zero → 3 dB unless Deterministic
	FallbackThreshold int  `json:"fallback_threshold"` // zero → 20 dB HL
	Deterministic     bool `json:"deterministic"`      // no jitter at all
}

// NewResponseModel returns a ResponseModel with defaults applied.
func NewResponseModel(cfg ResponseConfig) ResponseModel {
	m := ResponseModel{
		Variability:       cfg.Variability,
		FallbackThreshold: cfg.FallbackThreshold,
	}
	if cfg.Deterministic {
		m.Variability = 0
	} else if m.Variability == 0 {
		m.Variability = 3
	}
	if m.FallbackThreshold == 0 {
		m.FallbackThreshold = 20
	}
	return m
}

// LatentThreshold returns the patient's threshold for the ear and frequency
// and whether it came from the profile rather than the fallback.
func (m ResponseModel) LatentThreshold(ear Ear, freq Frequency, profile *Profile) (int, bool) {
	if level, ok := profile.Threshold(ear, freq); ok {
		return level, true
	}
	return m.FallbackThreshold, false
}

// Respond reports whether the patient hears a tone at intensity.
// heard = intensity >= latent + U[-Variability, +Variability].
func (m ResponseModel) Respond(ear Ear, freq Frequency, intensity int, profile *Profile, rng RNG) bool {
	latent, _ := m.LatentThreshold(ear, freq, profile)
	return intensity >= latent+m.jitter(rng)
}

// jitter draws a uniform integer in [-Variability, +Variability].
func (m ResponseModel) jitter(rng RNG) int {
	if m.Variability <= 0 {
		return 0
	}
	return rng.Intn(2*m.Variability+1) - m.Variability
}
