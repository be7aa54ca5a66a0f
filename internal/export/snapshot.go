package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/orbitsim/internal/body"
)

// Snapshot is the render-facing view of one instant of the simulation:
// the position vertex buffer plus the per-body brightness channel
// derived from acceleration magnitude. Valid only when captured
// between completed steps.
type Snapshot struct {
	Bodies     int       `json:"bodies"`
	Time       float64   `json:"time"`
	Vertices   []float64 `json:"vertices"`   // xyzw per body
	Brightness []float64 `json:"brightness"` // [0,1] per body
}

func NewSnapshot(pop *body.Population, t float64) Snapshot {
	return Snapshot{
		Bodies:     pop.Len(),
		Time:       t,
		Vertices:   VertexBuffer(pop),
		Brightness: Brightness(pop),
	}
}

func WriteSnapshot(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
