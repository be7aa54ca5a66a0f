package metrics

import (
	"github.com/san-kum/orbitsim/internal/engine"
)

// Containment measures the fraction of observations in which every
// body stayed within a radius of the origin. A value below 1 means
// bodies escaped the region of interest at some point.
type Containment struct {
	name       string
	radius2    float64
	violations int
	samples    int
}

func NewContainment(radius float64) *Containment {
	return &Containment{name: "containment", radius2: radius * radius}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(s *engine.Session, t float64) {
	c.samples++
	pop := s.Population()
	for i := range pop.Pos {
		if pop.Pos[i].Vec3().Norm2() > c.radius2 {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
