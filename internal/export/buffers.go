// Package export converts simulation state into the flat buffers a
// rendering pipeline consumes, and writes recorded runs to JSON/CSV.
package export

import (
	"math"

	"github.com/san-kum/orbitsim/internal/body"
)

// VertexBuffer flattens the population's positions into xyzw floats,
// one entry per body in index order. The central mass is not a
// population member and never appears in the buffer.
func VertexBuffer(pop *body.Population) []float64 {
	buf := make([]float64, 0, pop.Len()*4)
	for _, p := range pop.Pos {
		buf = append(buf, p.X, p.Y, p.Z, p.W)
	}
	return buf
}

// Brightness maps each body's acceleration magnitude to [0, 1],
// normalized against the largest magnitude in the population. Used as
// a per-body intensity channel in visualizations. All zeros when no
// body accelerates.
func Brightness(pop *body.Population) []float64 {
	out := make([]float64, pop.Len())
	maxMag := 0.0
	for i := range pop.Acc {
		out[i] = pop.Acc[i].Norm()
		maxMag = math.Max(maxMag, out[i])
	}
	if maxMag == 0 {
		return out
	}
	for i := range out {
		out[i] /= maxMag
	}
	return out
}
