package grading

import (
	"context"
	"fmt"

	"github.com/sky-flux/audiometry"
)

// BiasReport summarizes repeated runs of the procedure against one
// simulated latent threshold.
type BiasReport struct {
	Trials            int     `json:"trials"`
	Established       int     `json:"established"`
	Unfinished        int     `json:"unfinished"`         // stopped by the presentation limit
	MeanError         float64 `json:"mean_error"`         // established minus latent, dB
	MeanAbsError      float64 `json:"mean_abs_error"`     // dB
	MeanPresentations float64 `json:"mean_presentations"` // over established runs
}

// EstimateBias runs trials automated sessions at 1000 Hz in the left ear
// against a patient whose latent threshold is latent, each starting at
// start and following every recommended step. Responses come from model
// and rng.
//
// The context is checked between trials.
func EstimateBias(ctx context.Context, engine *audiometry.Engine, model audiometry.ResponseModel,
	latent, start int, rng audiometry.RNG, trials int) (BiasReport, error) {
	if trials <= 0 {
		return BiasReport{}, ErrNoTrials
	}

	const (
		ear  = audiometry.Left
		freq = audiometry.Frequency(1000)
	)
	patient := &audiometry.Profile{
		Thresholds: map[audiometry.Ear]map[audiometry.Frequency]int{ear: {freq: latent}},
	}

	r := BiasReport{Trials: trials}
	var sumErr, sumAbs, sumPres int
	for t := 0; t < trials; t++ {
		if err := ctx.Err(); err != nil {
			return BiasReport{}, err
		}

		s := audiometry.NewSession(ear, freq)
		intensity := start
		for {
			heard := model.Respond(ear, freq, intensity, patient, rng)
			var (
				step audiometry.Step
				err  error
			)
			s, step, err = engine.Advance(s, intensity, heard)
			if err != nil {
				r.Unfinished++
				break
			}
			if step.Established {
				diff := *s.PotentialThreshold - latent
				sumErr += diff
				sumAbs += abs(diff)
				sumPres += s.ResponseCount()
				r.Established++
				break
			}
			if !step.HasNext {
				return BiasReport{}, fmt.Errorf("grading: trial %d stopped without a threshold", t)
			}
			intensity = step.Next
		}
	}

	if r.Established > 0 {
		n := float64(r.Established)
		r.MeanError = float64(sumErr) / n
		r.MeanAbsError = float64(sumAbs) / n
		r.MeanPresentations = float64(sumPres) / n
	}
	return r, nil
}
