package body

// Population holds the per-body state for a fixed set of N bodies in
// index-aligned arrays: Pos[i], Vel[i] and Acc[i] all describe body i,
// and i is the body's identity for the lifetime of the simulation.
//
// Pos packs position and mass (see Vec4); Acc is scratch recomputed on
// every step and carries no persistent meaning between steps.
type Population struct {
	Pos []Vec4
	Vel []Vec3
	Acc []Vec3
}

// NewPopulation allocates zeroed state for n bodies.
func NewPopulation(n int) *Population {
	return &Population{
		Pos: make([]Vec4, n),
		Vel: make([]Vec3, n),
		Acc: make([]Vec3, n),
	}
}

// Len reports the body count N.
func (p *Population) Len() int { return len(p.Pos) }

// Mass returns body i's mass.
func (p *Population) Mass(i int) float64 { return p.Pos[i].W }

func (p *Population) Clone() *Population {
	c := NewPopulation(p.Len())
	copy(c.Pos, p.Pos)
	copy(c.Vel, p.Vel)
	copy(c.Acc, p.Acc)
	return c
}

// IsValid reports whether every position and velocity component is
// finite. Stepping never checks this itself; callers opt in to
// divergence detection between steps.
func (p *Population) IsValid() bool {
	for i := range p.Pos {
		if !p.Pos[i].IsFinite() || !p.Vel[i].IsFinite() {
			return false
		}
	}
	return true
}
