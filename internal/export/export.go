package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/orbitsim/internal/engine"
)

type RunData struct {
	Bodies      int                `json:"bodies"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Seed        int64              `json:"seed"`
	Steps       int                `json:"steps"`
	Times       []float64          `json:"times"`
	Frames      [][]float64        `json:"frames"`
	Metrics     map[string]float64 `json:"metrics"`
	EnergyDrift float64            `json:"energy_drift"`
}

func newRunData(bodies int, dt, duration float64, seed int64, result *engine.Result) RunData {
	data := RunData{
		Bodies:      bodies,
		Dt:          dt,
		Duration:    duration,
		Seed:        seed,
		Steps:       result.StepsTaken,
		Times:       result.Times,
		Frames:      make([][]float64, len(result.Frames)),
		Metrics:     result.Metrics,
		EnergyDrift: result.EnergyDrift,
	}
	for i, f := range result.Frames {
		data.Frames[i] = f
	}
	return data
}

func WriteJSON(w io.Writer, bodies int, dt, duration float64, seed int64, result *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newRunData(bodies, dt, duration, seed, result))
}

func JSONFile(path string, bodies int, dt, duration float64, seed int64, result *engine.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, bodies, dt, duration, seed, result)
}

// WriteCSV emits one row per sampled frame: time, then x,y,z per body
// in index order. Masses are uniform and recorded in the metadata, so
// the w component is dropped here.
func WriteCSV(w io.Writer, bodies int, result *engine.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"time"}
	for i := 0; i < bodies; i++ {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i), fmt.Sprintf("z%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, frame := range result.Frames {
		row := make([]string, 0, 1+bodies*3)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for b := 0; b < bodies; b++ {
			row = append(row,
				strconv.FormatFloat(frame[b*4], 'f', 6, 64),
				strconv.FormatFloat(frame[b*4+1], 'f', 6, 64),
				strconv.FormatFloat(frame[b*4+2], 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}
