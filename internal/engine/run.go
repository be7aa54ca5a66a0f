package engine

import (
	"context"
	"math"
)

// Metric observes the session between completed steps and reduces the
// observations to a single value.
type Metric interface {
	Name() string
	Observe(s *Session, t float64)
	Value() float64
	Reset()
}

// RunConfig drives a multi-step run.
type RunConfig struct {
	Dt       float64
	Duration float64

	// SampleEvery records a position frame every k-th step; 0 or 1
	// records every step.
	SampleEvery int

	// ValidateState aborts the run when NaN/Inf positions or
	// velocities appear between steps. Off by default: divergence
	// detection is an extension, blow-up normally just propagates.
	ValidateState bool
}

// Result is the record of a completed (or aborted) run.
type Result struct {
	Times       []float64
	Frames      []Frame
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

// Frame is a sampled position snapshot: one xyzw entry per body, the
// same packing the population stores.
type Frame []float64

// Runner loops Advance over a duration, feeding metrics and recording
// sampled frames.
type Runner struct {
	session *Session
	metrics []Metric
}

func NewRunner(s *Session) *Runner {
	return &Runner{session: s, metrics: make([]Metric, 0)}
}

func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

// Run advances the session for cfg.Duration in steps of cfg.Dt.
// Metrics observe before each step and once more at the end, so they
// see both the initial and final states. Cancellation via ctx tears
// the run down between steps, never mid-step.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	sample := cfg.SampleEvery
	if sample < 1 {
		sample = 1
	}

	result := &Result{
		Times:   make([]float64, 0, steps/sample+1),
		Frames:  make([]Frame, 0, steps/sample+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	s := r.session
	initialEnergy := s.grav.Energy(s.pop)
	r.record(result)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(s, s.time)
		}

		s.Advance(cfg.Dt)
		result.StepsTaken++

		if cfg.ValidateState && !s.pop.IsValid() {
			err := &StepError{Step: i, Time: s.time, Wrapped: ErrDiverged}
			result.Errors = append(result.Errors, err)
			break
		}

		if s.steps%sample == 0 {
			r.record(result)
		}
	}

	for _, m := range r.metrics {
		m.Observe(s, s.time)
		result.Metrics[m.Name()] = m.Value()
	}

	finalEnergy := s.grav.Energy(s.pop)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	return result, nil
}

// RunWithCallback advances the session until the callback returns
// false or the duration elapses. The callback runs between completed
// steps, when reading the population is safe; the live view is built
// on this.
func (r *Runner) RunWithCallback(ctx context.Context, cfg RunConfig, callback func(s *Session, t float64) bool) error {
	if err := validateRunConfig(cfg); err != nil {
		return err
	}

	s := r.session
	for s.time < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(s, s.time) {
			return nil
		}

		s.Advance(cfg.Dt)

		if cfg.ValidateState && !s.pop.IsValid() {
			return &StepError{Step: s.steps, Time: s.time, Wrapped: ErrDiverged}
		}
	}

	return nil
}

func (r *Runner) record(result *Result) {
	s := r.session
	frame := make(Frame, 0, s.pop.Len()*4)
	for _, p := range s.pop.Pos {
		frame = append(frame, p.X, p.Y, p.Z, p.W)
	}
	result.Frames = append(result.Frames, frame)
	result.Times = append(result.Times, s.time)
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return ErrInvalidTimestep
	}
	if cfg.Duration <= 0 {
		return ErrInvalidTimestep
	}
	return nil
}
