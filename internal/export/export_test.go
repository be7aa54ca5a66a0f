package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/gravity"
)

func TestVertexBuffer(t *testing.T) {
	pop := body.NewPopulation(2)
	pop.Pos[0] = body.Vec4{X: 1, Y: 2, Z: 0, W: 0.5}
	pop.Pos[1] = body.Vec4{X: -3, Y: 4, Z: 0, W: 0.5}

	buf := VertexBuffer(pop)
	if len(buf) != 8 {
		t.Fatalf("expected 8 floats, got %d", len(buf))
	}

	want := []float64{1, 2, 0, 0.5, -3, 4, 0, 0.5}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %f, want %f", i, buf[i], want[i])
		}
	}
}

func TestBrightnessNormalized(t *testing.T) {
	pop := body.NewPopulation(3)
	pop.Acc[0] = body.Vec3{X: 1}
	pop.Acc[1] = body.Vec3{Y: 4}
	pop.Acc[2] = body.Vec3{Z: 2}

	b := Brightness(pop)

	if math.Abs(b[1]-1.0) > 1e-12 {
		t.Errorf("largest magnitude should map to 1, got %f", b[1])
	}
	if math.Abs(b[0]-0.25) > 1e-12 || math.Abs(b[2]-0.5) > 1e-12 {
		t.Errorf("unexpected normalization: %v", b)
	}
}

func TestBrightnessAllZero(t *testing.T) {
	pop := body.NewPopulation(4)
	for _, v := range Brightness(pop) {
		if v != 0 {
			t.Fatalf("expected all-zero brightness, got %v", v)
		}
	}
}

func runResult(t *testing.T, n int) *engine.Result {
	t.Helper()
	s, err := engine.NewSession(engine.Config{
		Bodies:   n,
		Seed:     3,
		Scale:    10.0,
		BodyMass: 0.01,
		Gravity:  gravity.Params{G: 1.0, Softening: 0.1, CentralMass: 100.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	result, err := engine.NewRunner(s).Run(context.Background(), engine.RunConfig{Dt: 0.01, Duration: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestWriteCSV(t *testing.T) {
	result := runResult(t, 3)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, 3, result); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}

	if len(records) != len(result.Frames)+1 {
		t.Errorf("expected %d rows, got %d", len(result.Frames)+1, len(records))
	}
	if len(records[0]) != 1+3*3 {
		t.Errorf("expected 10 header columns, got %d", len(records[0]))
	}
	if records[0][0] != "time" || records[0][1] != "x0" {
		t.Errorf("unexpected header: %v", records[0][:2])
	}
}

func TestWriteJSON(t *testing.T) {
	result := runResult(t, 2)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, 2, 0.01, 0.1, 3, result); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var data RunData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if data.Bodies != 2 || data.Seed != 3 {
		t.Errorf("metadata mismatch: %+v", data)
	}
	if len(data.Frames) != len(result.Frames) {
		t.Errorf("expected %d frames, got %d", len(result.Frames), len(data.Frames))
	}
}

func TestSnapshot(t *testing.T) {
	pop := body.NewPopulation(2)
	pop.Pos[0] = body.Vec4{X: 1, W: 0.5}
	pop.Acc[1] = body.Vec3{X: 2}

	snap := NewSnapshot(pop, 1.5)

	if snap.Bodies != 2 || snap.Time != 1.5 {
		t.Errorf("unexpected snapshot header: %+v", snap)
	}
	if len(snap.Vertices) != 8 || len(snap.Brightness) != 2 {
		t.Errorf("unexpected buffer sizes: %d vertices, %d brightness", len(snap.Vertices), len(snap.Brightness))
	}

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, snap); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	var back Snapshot
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if back.Bodies != 2 {
		t.Errorf("round trip lost body count: %+v", back)
	}
}
