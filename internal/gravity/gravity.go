package gravity

import (
	"math"

	"github.com/san-kum/orbitsim/internal/body"
)

// Params collects the gravitational constants of a simulation. The
// central mass is a fixed attractor at the origin; it exerts force on
// every body but is not a member of the population, so the all-pairs
// cost stays bounded by the dynamic body count.
type Params struct {
	G           float64
	Softening   float64
	CentralMass float64
}

func DefaultParams() Params {
	return Params{
		G:           1.0,
		Softening:   0.1,
		CentralMass: 100.0,
	}
}

// Accel computes the net gravitational acceleration on body i from
// every other body plus the central mass, using the softened
// inverse-square law a += G*m_j*r / (|r|^2 + eps^2)^1.5.
//
// Pure over the population snapshot: it reads positions and masses
// only and mutates nothing. The softening term keeps the result finite
// even when two bodies coincide.
func (p Params) Accel(pop *body.Population, i int) body.Vec3 {
	eps2 := p.Softening * p.Softening
	pi := pop.Pos[i].Vec3()

	var a body.Vec3
	for j := range pop.Pos {
		if j == i {
			continue
		}
		r := pop.Pos[j].Vec3().Sub(pi)
		d2 := r.Norm2() + eps2
		inv := 1.0 / math.Sqrt(d2)
		a = a.Add(r.Scale(p.G * pop.Pos[j].W * inv * inv * inv))
	}

	// Central mass sits at the origin: r points back along -position.
	r := pi.Scale(-1)
	d2 := r.Norm2() + eps2
	inv := 1.0 / math.Sqrt(d2)
	a = a.Add(r.Scale(p.G * p.CentralMass * inv * inv * inv))

	return a
}

// Energy returns total kinetic plus potential energy, with the
// potential softened the same way as the force and including the
// central-mass term. Used for drift diagnostics, not for stepping.
func (p Params) Energy(pop *body.Population) float64 {
	eps2 := p.Softening * p.Softening
	ke := 0.0
	pe := 0.0

	for i := range pop.Pos {
		ke += 0.5 * pop.Pos[i].W * pop.Vel[i].Norm2()

		ri := math.Sqrt(pop.Pos[i].Vec3().Norm2() + eps2)
		pe -= p.G * p.CentralMass * pop.Pos[i].W / ri

		for j := i + 1; j < len(pop.Pos); j++ {
			d := pop.Pos[j].Vec3().Sub(pop.Pos[i].Vec3())
			r := math.Sqrt(d.Norm2() + eps2)
			pe -= p.G * pop.Pos[i].W * pop.Pos[j].W / r
		}
	}

	return ke + pe
}

// Momentum returns the population's total linear momentum.
func (p Params) Momentum(pop *body.Population) body.Vec3 {
	var m body.Vec3
	for i := range pop.Vel {
		m = m.Add(pop.Vel[i].Scale(pop.Pos[i].W))
	}
	return m
}

// AngularMomentum returns the z component of total angular momentum
// about the origin, the axis the initial disk rotates around.
func (p Params) AngularMomentum(pop *body.Population) float64 {
	l := 0.0
	for i := range pop.Pos {
		pos := pop.Pos[i].Vec3()
		l += pop.Pos[i].W * (pos.X*pop.Vel[i].Y - pos.Y*pop.Vel[i].X)
	}
	return l
}
