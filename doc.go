// Package audiometry simulates pure-tone threshold testing for clinical
// training.
//
// A trainee presents tones to a simulated patient and follows a
// Hughson-Westlake staircase (10 dB down after every response, 5 dB up
// after every miss) until the patient responds twice at the same level on
// separate ascending runs. The package provides the per-(ear, frequency)
// [Engine] state machine, the [ResponseModel] that decides whether the
// patient heard a tone, a [Sequencer] for the clinical frequency order and
// an [Audiogram] of marked thresholds. [Controller] ties them together for
// one training run.
//
// Basic usage:
//
//	c, err := audiometry.NewController(audiometry.ControllerConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c.SelectPatient(profile)
//	res, err := c.PresentTone(audiometry.Left, 1000, 30)
//	if res.Step.Established {
//	    err = c.MarkThreshold(audiometry.Left, 1000, *res.Session.PotentialThreshold)
//	}
package audiometry
