package grading

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/sky-flux/audiometry"
)

func TestEstimateBiasDeterministic(t *testing.T) {
	e := mustEngine(t)
	model := audiometry.NewResponseModel(audiometry.ResponseConfig{Deterministic: true})

	tests := []struct {
		latent    int
		wantError float64
	}{
		{25, 0},
		{23, 2}, // the 5 dB grid from 30 settles on 25
		{40, 0},
	}
	for _, tt := range tests {
		r, err := EstimateBias(context.Background(), e, model, tt.latent, 30, rand.New(rand.NewSource(1)), 10)
		if err != nil {
			t.Fatalf("latent %d: %v", tt.latent, err)
		}
		if r.Established != 10 || r.Unfinished != 0 {
			t.Errorf("latent %d: established %d, unfinished %d", tt.latent, r.Established, r.Unfinished)
		}
		if r.MeanError != tt.wantError || r.MeanAbsError != tt.wantError {
			t.Errorf("latent %d: MeanError = %v, MeanAbsError = %v; want %v",
				tt.latent, r.MeanError, r.MeanAbsError, tt.wantError)
		}
	}
}

func TestEstimateBiasPresentations(t *testing.T) {
	model := audiometry.NewResponseModel(audiometry.ResponseConfig{Deterministic: true})
	r, err := EstimateBias(context.Background(), mustEngine(t), model, 25, 30, rand.New(rand.NewSource(1)), 3)
	if err != nil {
		t.Fatal(err)
	}
	if r.MeanPresentations != 9 {
		t.Errorf("MeanPresentations = %v, want 9", r.MeanPresentations)
	}
}

func TestEstimateBiasWithJitter(t *testing.T) {
	model := audiometry.NewResponseModel(audiometry.ResponseConfig{Variability: 3})
	r, err := EstimateBias(context.Background(), mustEngine(t), model, 35, 50, rand.New(rand.NewSource(42)), 500)
	if err != nil {
		t.Fatal(err)
	}
	if r.Established+r.Unfinished != r.Trials {
		t.Errorf("established %d + unfinished %d != %d", r.Established, r.Unfinished, r.Trials)
	}
	if r.Established == 0 {
		t.Fatal("no trial established a threshold")
	}
	// Established levels stay within [latent-3, latent+8].
	if r.MeanError < -3 || r.MeanError > 8 {
		t.Errorf("MeanError = %v out of range", r.MeanError)
	}
	if math.Abs(r.MeanError) > r.MeanAbsError+1e-9 {
		t.Errorf("|MeanError| %v > MeanAbsError %v", r.MeanError, r.MeanAbsError)
	}
}

func TestEstimateBiasUnfinished(t *testing.T) {
	e, err := audiometry.NewEngine(audiometry.EngineConfig{MaxPresentations: 2})
	if err != nil {
		t.Fatal(err)
	}
	model := audiometry.NewResponseModel(audiometry.ResponseConfig{Deterministic: true})
	r, err := EstimateBias(context.Background(), e, model, 25, 30, rand.New(rand.NewSource(1)), 4)
	if err != nil {
		t.Fatal(err)
	}
	if r.Unfinished != 4 || r.Established != 0 || r.MeanPresentations != 0 {
		t.Errorf("report = %+v", r)
	}
}

func TestEstimateBiasErrors(t *testing.T) {
	e := mustEngine(t)
	model := audiometry.NewResponseModel(audiometry.ResponseConfig{})
	rng := rand.New(rand.NewSource(1))

	if _, err := EstimateBias(context.Background(), e, model, 20, 30, rng, 0); !errors.Is(err, ErrNoTrials) {
		t.Errorf("zero trials: error = %v, want ErrNoTrials", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := EstimateBias(ctx, e, model, 20, 30, rng, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: error = %v, want context.Canceled", err)
	}
}
