package engine

import (
	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/gravity"
	"github.com/san-kum/orbitsim/internal/scene"
)

// Config describes a simulation session.
type Config struct {
	Bodies   int
	Seed     int64
	Scale    float64
	BodyMass float64
	Gravity  gravity.Params
	Workers  int // 0 means one per CPU
}

// Session owns a body population and is the single mutating entry
// point into it. It is not safe for concurrent Advance calls; readers
// must only look at the population between completed steps.
type Session struct {
	pop     *body.Population
	grav    gravity.Params
	workers int
	steps   int
	time    float64
}

// NewSession validates cfg, allocates the population and runs the
// scene initializer. The body count is fixed from here on.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Bodies < 0 {
		return nil, ErrInvalidBodyCount
	}
	if cfg.Gravity.Softening <= 0 {
		return nil, ErrInvalidSoftening
	}
	if cfg.BodyMass < 0 || cfg.Gravity.CentralMass < 0 {
		return nil, ErrInvalidMass
	}

	pop := scene.Disk(scene.DiskParams{
		N:        cfg.Bodies,
		Seed:     cfg.Seed,
		Scale:    cfg.Scale,
		BodyMass: cfg.BodyMass,
	}, cfg.Gravity)

	return &Session{
		pop:     pop,
		grav:    cfg.Gravity,
		workers: cfg.Workers,
	}, nil
}

// Advance runs exactly one integration step and returns once both
// phases are complete.
//
// Phase 1 fills the acceleration array from the pre-step position
// snapshot; the force evaluator only reads positions, so any execution
// order within the phase is equivalent. Phase 2 then commits
//
//	v' = v + a*dt
//	p' = p + (v + v')*dt/2
//
// per body: symplectic Euler for the velocity, trapezoidal for the
// position. The two parallelFor calls each end in a full barrier, so
// no body enters phase 2 until every body has finished phase 1.
func (s *Session) Advance(dt float64) {
	pop := s.pop
	n := pop.Len()

	parallelFor(n, s.workers, func(start, end int) {
		for i := start; i < end; i++ {
			pop.Acc[i] = s.grav.Accel(pop, i)
		}
	})

	parallelFor(n, s.workers, func(start, end int) {
		for i := start; i < end; i++ {
			v := pop.Vel[i]
			vNew := v.Add(pop.Acc[i].Scale(dt))
			step := v.Add(vNew).Scale(dt * 0.5)

			pop.Vel[i] = vNew
			pop.Pos[i].X += step.X
			pop.Pos[i].Y += step.Y
			pop.Pos[i].Z += step.Z
		}
	})

	s.steps++
	s.time += dt
}

// Population exposes the body store for reading between steps. The
// returned value aliases live state: it is valid until the next
// Advance call and must not be read during one.
func (s *Session) Population() *body.Population { return s.pop }

// Gravity returns the session's gravitational constants.
func (s *Session) Gravity() gravity.Params { return s.grav }

// Bodies reports the fixed body count N.
func (s *Session) Bodies() int { return s.pop.Len() }

// Time reports accumulated simulated time.
func (s *Session) Time() float64 { return s.time }

// Steps reports how many Advance calls have completed.
func (s *Session) Steps() int { return s.steps }
