package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skovran/physbox/internal/config"
	"github.com/skovran/physbox/internal/phys"
	"github.com/skovran/physbox/internal/session"
)

func sampleResult() *session.Result {
	return &session.Result{
		Frames: []*session.Frame{
			{Time: 0.01, Particles: []phys.Particle{
				{Pos: phys.Vec2{X: 1, Y: 2}, Vel: phys.Vec2{X: 3, Y: 4}, Radius: 15},
				{Pos: phys.Vec2{X: 5, Y: 6}, Radius: 15},
			}},
			{Time: 0.02, Particles: []phys.Particle{
				{Pos: phys.Vec2{X: 1.5, Y: 2.5}, Vel: phys.Vec2{X: 3, Y: 4}, Radius: 15},
				{Pos: phys.Vec2{X: 5, Y: 6}, Radius: 15},
			}},
		},
		Metrics: map[string]float64{"kinetic_energy": 12.5},
		Steps:   2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultFor(config.ModeCollision)
	cfg.Seed = 42
	rc := session.RunConfig{Dt: 0.01, Duration: 0.02}

	runID, err := st.Save(cfg, rc, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "collision_") {
		t.Errorf("run id %q should carry the mode prefix", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Mode != "collision" || meta.Seed != 42 || meta.Steps != 2 {
		t.Errorf("metadata round trip: %+v", meta)
	}
	if meta.Metrics["kinetic_energy"] != 12.5 {
		t.Errorf("expected kinetic_energy 12.5, got %f", meta.Metrics["kinetic_energy"])
	}

	records, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	first := records[0]
	if first.Frame != 0 || first.Particle != 0 || first.X != 1 || first.VY != 4 {
		t.Errorf("first record: %+v", first)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Errorf("list: %+v", runs)
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("collision_0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, expected ErrNotFound", err)
	}
	if _, err := st.LoadFrames("collision_0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, expected ErrNotFound", err)
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestSeries(t *testing.T) {
	records := []FrameRecord{
		{Frame: 0, Particle: 0, Y: 10},
		{Frame: 0, Particle: 1, Y: 20},
		{Frame: 1, Particle: 0, Y: 11},
		{Frame: 1, Particle: 1, Y: 21},
	}
	ys := Series(records, 1, func(r FrameRecord) float64 { return r.Y })
	if len(ys) != 2 || ys[0] != 20 || ys[1] != 21 {
		t.Errorf("series: %v", ys)
	}
}
