package audiometry

import "errors"

// Sentinel errors for the audiometry package.
// Use errors.Is to check: errors.Is(err, audiometry.ErrNotReady)
var (
	ErrInvalidEar        = errors.New("audiometry: invalid ear")
	ErrInvalidFrequency  = errors.New("audiometry: frequency not in test set")
	ErrNotReady          = errors.New("audiometry: threshold not established")
	ErrPresentationLimit = errors.New("audiometry: presentation limit reached")
	ErrSessionMismatch   = errors.New("audiometry: presentation does not belong to session")
	ErrInvalidConfig     = errors.New("audiometry: invalid configuration")
	ErrNoPatient         = errors.New("audiometry: no patient available")
)
