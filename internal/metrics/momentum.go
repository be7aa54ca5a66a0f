package metrics

import (
	"github.com/san-kum/orbitsim/internal/engine"
)

// Momentum reports the magnitude of total linear momentum at the last
// observation. The central mass absorbs momentum without moving, so
// this is not conserved; it is a sanity gauge, not an invariant.
type Momentum struct {
	name string
	last float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(s *engine.Session, t float64) {
	m.last = s.Gravity().Momentum(s.Population()).Norm()
}

func (m *Momentum) Value() float64 { return m.last }

func (m *Momentum) Reset() { m.last = 0 }

// AngularMomentum reports the z component of total angular momentum
// about the origin at the last observation.
type AngularMomentum struct {
	name string
	last float64
}

func NewAngularMomentum() *AngularMomentum {
	return &AngularMomentum{name: "angular_momentum"}
}

func (m *AngularMomentum) Name() string { return m.name }

func (m *AngularMomentum) Observe(s *engine.Session, t float64) {
	m.last = s.Gravity().AngularMomentum(s.Population())
}

func (m *AngularMomentum) Value() float64 { return m.last }

func (m *AngularMomentum) Reset() { m.last = 0 }
