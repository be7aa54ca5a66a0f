package engine

import (
	"context"
	"math"
	"testing"
)

type countingMetric struct {
	observations int
}

func (c *countingMetric) Name() string                  { return "count" }
func (c *countingMetric) Observe(s *Session, t float64) { c.observations++ }
func (c *countingMetric) Value() float64                { return float64(c.observations) }
func (c *countingMetric) Reset()                        { c.observations = 0 }

func TestRunnerRun(t *testing.T) {
	s, err := NewSession(testConfig(10))
	if err != nil {
		t.Fatal(err)
	}

	r := NewRunner(s)
	m := &countingMetric{}
	r.AddMetric(m)

	result, err := r.Run(context.Background(), RunConfig{Dt: 0.01, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", result.StepsTaken)
	}
	if len(result.Frames) != 101 {
		t.Errorf("expected 101 frames, got %d", len(result.Frames))
	}
	if len(result.Times) != len(result.Frames) {
		t.Errorf("times and frames out of step: %d vs %d", len(result.Times), len(result.Frames))
	}
	if len(result.Frames[0]) != 10*4 {
		t.Errorf("expected xyzw frame of 40 floats, got %d", len(result.Frames[0]))
	}
	// one observation per step plus the final state
	if got := result.Metrics["count"]; got != 101 {
		t.Errorf("expected 101 observations, got %f", got)
	}
}

func TestRunnerSampleEvery(t *testing.T) {
	s, err := NewSession(testConfig(5))
	if err != nil {
		t.Fatal(err)
	}

	result, err := NewRunner(s).Run(context.Background(), RunConfig{Dt: 0.01, Duration: 1.0, SampleEvery: 10})
	if err != nil {
		t.Fatal(err)
	}

	// initial frame plus every 10th of 100 steps
	if len(result.Frames) != 11 {
		t.Errorf("expected 11 frames, got %d", len(result.Frames))
	}
}

func TestRunnerValidatesConfig(t *testing.T) {
	s, err := NewSession(testConfig(2))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(s)

	if _, err := r.Run(context.Background(), RunConfig{Dt: 0, Duration: 1}); err != ErrInvalidTimestep {
		t.Errorf("expected ErrInvalidTimestep for dt=0, got %v", err)
	}
	if _, err := r.Run(context.Background(), RunConfig{Dt: math.NaN(), Duration: 1}); err != ErrInvalidTimestep {
		t.Errorf("expected ErrInvalidTimestep for NaN dt, got %v", err)
	}
	if _, err := r.Run(context.Background(), RunConfig{Dt: 0.01, Duration: -1}); err != ErrInvalidTimestep {
		t.Errorf("expected ErrInvalidTimestep for negative duration, got %v", err)
	}
}

func TestRunnerCancellation(t *testing.T) {
	s, err := NewSession(testConfig(5))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewRunner(s).Run(ctx, RunConfig{Dt: 0.01, Duration: 1.0})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil {
		t.Fatal("expected partial result on cancellation")
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected no steps after pre-canceled context, got %d", result.StepsTaken)
	}
}

func TestRunnerValidateStateAborts(t *testing.T) {
	s, err := NewSession(testConfig(3))
	if err != nil {
		t.Fatal(err)
	}

	s.Population().Pos[0].X = math.NaN()

	result, err := NewRunner(s).Run(context.Background(), RunConfig{
		Dt: 0.01, Duration: 1.0, ValidateState: true,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Errors) == 0 {
		t.Fatal("expected a divergence error")
	}
	if result.StepsTaken != 1 {
		t.Errorf("expected abort after first step, took %d", result.StepsTaken)
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	s, err := NewSession(testConfig(5))
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	err = NewRunner(s).RunWithCallback(context.Background(), RunConfig{Dt: 0.01, Duration: 10.0},
		func(s *Session, t float64) bool {
			calls++
			return calls < 3
		})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 callback calls, got %d", calls)
	}
	if s.Steps() != 2 {
		t.Errorf("expected 2 steps before stop, got %d", s.Steps())
	}
}
