package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/skovran/physbox/internal/config"
)

func TestAxisValues(t *testing.T) {
	cases := []struct {
		name string
		axis Axis
		want []float64
	}{
		{"single step collapses to min", Axis{Min: 2, Max: 9, Steps: 1}, []float64{2}},
		{"endpoints included", Axis{Min: 0, Max: 1, Steps: 3}, []float64{0, 0.5, 1}},
		{"degenerate range repeats", Axis{Min: 4, Max: 4, Steps: 3}, []float64{4, 4, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.axis.Values()
			if len(got) != len(tc.want) {
				t.Fatalf("got %d values, expected %d", len(got), len(tc.want))
			}
			for i := range got {
				if math.Abs(got[i]-tc.want[i]) > 1e-12 {
					t.Errorf("value %d: got %g, expected %g", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestApplyRoutesFields(t *testing.T) {
	cfg := config.DefaultFor(config.ModeCollision)
	if err := apply(cfg, "restitution", 0.25); err != nil {
		t.Fatal(err)
	}
	if cfg.Collision.Restitution != 0.25 {
		t.Errorf("restitution %g, expected 0.25", cfg.Collision.Restitution)
	}

	// Ball counts round to the nearest whole ball.
	if err := apply(cfg, "balls", 7.4); err != nil {
		t.Fatal(err)
	}
	if cfg.Collision.BallCount != 7 {
		t.Errorf("ball count %d, expected 7", cfg.Collision.BallCount)
	}

	// Gravity lands in the section the mode reads.
	oc := config.DefaultFor(config.ModeOrbit)
	if err := apply(oc, "gravity", 0.3); err != nil {
		t.Fatal(err)
	}
	if oc.Orbit.Gravity != 0.3 || oc.Ballistic.Gravity == 0.3 {
		t.Error("orbit gravity did not land in the orbit section")
	}

	sc := config.DefaultFor(config.ModeSettling)
	if err := apply(sc, "gravity", 321); err != nil {
		t.Fatal(err)
	}
	if sc.Settling.Gravity != 321 {
		t.Errorf("settling gravity %g, expected 321", sc.Settling.Gravity)
	}
}

func TestApplyRejectsForeignFields(t *testing.T) {
	cfg := config.DefaultFor(config.ModeOrbit)
	if err := apply(cfg, "restitution", 0.5); !errors.Is(err, ErrUnknownField) {
		t.Errorf("got %v, expected ErrUnknownField", err)
	}
	if err := apply(cfg, "banana", 1); !errors.Is(err, ErrUnknownField) {
		t.Errorf("got %v, expected ErrUnknownField", err)
	}
}

func TestExtremes(t *testing.T) {
	pts := []Point{
		{Value: 1, Metric: 5},
		{Value: 2, Metric: 2},
		{Value: 3, Metric: 9},
	}
	lo, hi := Extremes(pts)
	if lo.Value != 2 || hi.Value != 3 {
		t.Errorf("extremes at %g/%g, expected 2/3", lo.Value, hi.Value)
	}
}

func TestExecuteOrbitTimescale(t *testing.T) {
	r := &Run{
		Mode:     config.ModeOrbit,
		Axis:     Axis{Field: "timescale", Min: 5, Max: 25, Steps: 3},
		Metric:   "kinetic_energy",
		Seed:     42,
		Dt:       1.0 / 60,
		Duration: 1,
	}
	pts, err := r.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 3 {
		t.Fatalf("got %d points, expected 3", len(pts))
	}
	for i, p := range pts {
		if p.Steps != 60 {
			t.Errorf("point %d ran %d steps, expected 60", i, p.Steps)
		}
		// Planets move from the first frame, so orbital energy is
		// never zero.
		if p.Metric <= 0 {
			t.Errorf("point %d reported %g kinetic energy", i, p.Metric)
		}
	}
	if pts[0].Value != 5 || pts[2].Value != 25 {
		t.Errorf("points out of axis order: %g..%g", pts[0].Value, pts[2].Value)
	}
}

func TestExecuteRejectsUnknownMetric(t *testing.T) {
	r := &Run{
		Mode:     config.ModeCollision,
		Axis:     Axis{Field: "restitution", Min: 0, Max: 1, Steps: 2},
		Metric:   "vibes",
		Duration: 1,
	}
	if _, err := r.Execute(context.Background()); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("got %v, expected ErrUnknownMetric", err)
	}
}

func TestExecuteRejectsBadAxis(t *testing.T) {
	r := &Run{
		Mode:     config.ModeCollision,
		Axis:     Axis{Field: "restitution", Min: 1, Max: 0, Steps: 2},
		Metric:   "collisions",
		Duration: 1,
	}
	if _, err := r.Execute(context.Background()); !errors.Is(err, ErrBadAxis) {
		t.Errorf("got %v, expected ErrBadAxis", err)
	}
}
