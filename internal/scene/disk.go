// Package scene builds deterministic initial body populations.
//
// Generation is reproducible: the same (seed, n, scale, mass) always
// yields bit-identical positions and velocities, which keeps scenes
// testable and lets a run be replayed from its recorded seed alone.
package scene

import (
	"math"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/gravity"
)

// DiskParams configures the randomized planar disk.
type DiskParams struct {
	N        int
	Seed     int64
	Scale    float64 // side length of the square the disk is drawn in
	BodyMass float64 // uniform mass assigned to every body
}

// up is the fixed reference axis velocities are built around; the disk
// lies in the plane perpendicular to it.
var up = body.Vec3{X: 0, Y: 0, Z: 1}

// Disk populates n bodies uniformly in a scale-sized square on the
// z=0 plane, each with a tangential velocity approximating a circular
// orbit around the central mass.
//
// The orbit speed sqrt(G*M/r) ignores the other bodies' masses, so the
// result is only near-circular; that is fine, the initializer promises
// determinism, not physical exactness.
func Disk(p DiskParams, grav gravity.Params) *body.Population {
	pop := body.NewPopulation(p.N)
	seed := uint64(p.Seed)
	eps2 := grav.Softening * grav.Softening

	for i := 0; i < p.N; i++ {
		idx := uint32(i)
		pos := body.Vec3{
			X: (uniform(seed, idx, 0) - 0.5) * p.Scale,
			Y: (uniform(seed, idx, 1) - 0.5) * p.Scale,
			Z: (uniform(seed, idx, 2) - 0.5) * p.Scale,
		}
		pos.Z = 0 // bodies start exactly in the orbital plane

		pop.Pos[i] = body.Vec4{X: pos.X, Y: pos.Y, Z: pos.Z, W: p.BodyMass}
		pop.Vel[i] = orbitalVelocity(pos, grav, eps2)
	}

	return pop
}

// orbitalVelocity returns the circular-orbit velocity at pos under the
// central mass: speed sqrt(G*M/r) along the in-plane tangent, with the
// radius softened so a body at the origin gets a finite speed.
func orbitalVelocity(pos body.Vec3, grav gravity.Params, eps2 float64) body.Vec3 {
	r := math.Sqrt(pos.Norm2() + eps2)
	speed := math.Sqrt(grav.G * grav.CentralMass / r)
	tangent := up.Cross(pos).Normalize()
	return tangent.Scale(speed)
}
