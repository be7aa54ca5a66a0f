package storage

import (
	"context"
	"testing"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/gravity"
)

func savedRun(t *testing.T, st *Store) (string, *config.Config) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Bodies = 4
	cfg.Seed = 11
	cfg.Duration = 0.1

	s, err := engine.NewSession(engine.Config{
		Bodies:   cfg.Bodies,
		Seed:     cfg.Seed,
		Scale:    cfg.Scale,
		BodyMass: cfg.BodyMass,
		Gravity:  gravity.Params{G: cfg.G, Softening: cfg.Softening, CentralMass: cfg.CentralMass},
	})
	if err != nil {
		t.Fatal(err)
	}

	result, err := engine.NewRunner(s).Run(context.Background(), engine.RunConfig{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	return runID, cfg
}

func TestStoreRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, cfg := savedRun(t, st)

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Bodies != cfg.Bodies || meta.Seed != cfg.Seed {
		t.Errorf("metadata mismatch: %+v", meta)
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) == 0 || len(frames) != len(times) {
		t.Fatalf("bad frame data: %d frames, %d times", len(frames), len(times))
	}
	if len(frames[0]) != cfg.Bodies*3 {
		t.Errorf("expected %d values per frame, got %d", cfg.Bodies*3, len(frames[0]))
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	runID, _ := savedRun(t, st)

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Errorf("expected single run %s, got %+v", runID, runs)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/never-created")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected empty list for missing dir, got error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
