// Package sweep runs one mode headless across a range of a single
// config field, one session per point, and reports a metric at each
// value. Points share a seed and a clock so the swept field is the
// only thing that varies between them.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/skovran/physbox/internal/config"
	"github.com/skovran/physbox/internal/metrics"
	"github.com/skovran/physbox/internal/phys"
	"github.com/skovran/physbox/internal/session"
)

var (
	ErrBadAxis       = errors.New("sweep: axis invalid")
	ErrUnknownField  = errors.New("sweep: unknown field")
	ErrUnknownMetric = errors.New("sweep: unknown metric")
)

// Axis is the swept field: Steps evenly spaced values over [Min, Max],
// endpoints included.
type Axis struct {
	Field string
	Min   float64
	Max   float64
	Steps int
}

// Values expands the axis. A single step collapses to Min.
func (a Axis) Values() []float64 {
	if a.Steps <= 1 {
		return []float64{a.Min}
	}
	step := (a.Max - a.Min) / float64(a.Steps-1)
	vals := make([]float64, a.Steps)
	for i := range vals {
		vals[i] = a.Min + float64(i)*step
	}
	return vals
}

// Run describes one sweep. Dt defaults to the interactive frame rate
// when zero.
type Run struct {
	Mode     config.Mode
	Axis     Axis
	Metric   string
	Seed     int64
	Dt       float64
	Duration float64
}

// Point is one finished sweep point.
type Point struct {
	Value  float64
	Metric float64
	Steps  int
}

// Fields lists the sweepable config fields of a mode.
func Fields(mode config.Mode) []string {
	switch mode {
	case config.ModeOrbit:
		return []string{"gravity", "sunmass", "timescale"}
	case config.ModeBallistic:
		return []string{"gravity", "launch", "maxspeed"}
	case config.ModeCollision:
		return []string{"restitution", "throw", "balls"}
	case config.ModeSettling:
		return []string{"gravity", "wavespeed"}
	}
	return nil
}

// Metrics lists the metric names a sweep can report.
func Metrics() []string {
	set := standardSet()
	names := make([]string, len(set))
	for i, m := range set {
		names[i] = m.Name()
	}
	return names
}

func standardSet() []session.Metric {
	return []session.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewPeakSpeed(),
		metrics.NewMomentumDrift(),
		metrics.NewCollisions(),
		metrics.NewMeanImpact(),
	}
}

// apply writes the axis value into its config field. "gravity" lands
// in whichever section the mode reads.
func apply(cfg *config.Config, field string, v float64) error {
	found := false
	for _, f := range Fields(cfg.Mode) {
		if f == field {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %q for mode %s (want %s)",
			ErrUnknownField, field, cfg.Mode, strings.Join(Fields(cfg.Mode), ", "))
	}

	switch field {
	case "gravity":
		switch cfg.Mode {
		case config.ModeOrbit:
			cfg.Orbit.Gravity = v
		case config.ModeBallistic:
			cfg.Ballistic.Gravity = v
		case config.ModeSettling:
			cfg.Settling.Gravity = v
		}
	case "sunmass":
		cfg.Orbit.SunMass = v
	case "timescale":
		cfg.Orbit.TimeScale = v
	case "launch":
		cfg.Ballistic.LaunchScale = v
	case "maxspeed":
		cfg.Ballistic.MaxSpeed = v
	case "restitution":
		cfg.Collision.Restitution = v
	case "throw":
		cfg.Collision.ThrowScale = v
	case "balls":
		cfg.Collision.BallCount = int(math.Round(v))
	case "wavespeed":
		cfg.Settling.WaveSpeed = v
	}
	return nil
}

// prime queues whatever input sets a hands-off run in motion. Orbit is
// self-propelled and collision stays racked until thrown; settling
// starts its drop, ballistic fires one standard diagonal shot.
func prime(s *session.Session) {
	switch s.Mode() {
	case config.ModeSettling:
		s.Queue(session.Event{Kind: session.KeyStart})
	case config.ModeBallistic:
		cfg := s.Config()
		b := cfg.Ballistic
		pad := phys.Vec2{X: b.CannonX, Y: cfg.World.Height - b.GroundHeight - b.CannonWidth/2}
		aim := pad.Add(phys.Vec2{X: 100, Y: -100})
		s.Queue(session.Event{Kind: session.PointerPress, At: aim})
		s.Queue(session.Event{Kind: session.PointerRelease, At: aim})
	}
}

// Execute runs every point concurrently and returns them in axis
// order. The first point error wins; a canceled context surfaces as
// that error.
func (r *Run) Execute(ctx context.Context) ([]Point, error) {
	if r.Axis.Steps < 1 || r.Axis.Max < r.Axis.Min {
		return nil, fmt.Errorf("%w: %d steps over [%g, %g]",
			ErrBadAxis, r.Axis.Steps, r.Axis.Min, r.Axis.Max)
	}
	known := false
	for _, name := range Metrics() {
		if name == r.Metric {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q (want %s)",
			ErrUnknownMetric, r.Metric, strings.Join(Metrics(), ", "))
	}

	dt := r.Dt
	if dt <= 0 {
		dt = 1.0 / 60
	}
	// A zero seed is resolved once so every point still shares it.
	seed := r.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	vals := r.Axis.Values()
	points := make([]Point, len(vals))
	errs := make([]error, len(vals))

	var wg sync.WaitGroup
	for i, v := range vals {
		wg.Add(1)
		go func(idx int, val float64) {
			defer wg.Done()
			points[idx], errs[idx] = r.runPoint(ctx, val, seed, dt)
		}(i, v)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

func (r *Run) runPoint(ctx context.Context, val float64, seed int64, dt float64) (Point, error) {
	cfg := config.DefaultFor(r.Mode)
	cfg.Seed = seed
	if err := apply(cfg, r.Axis.Field, val); err != nil {
		return Point{}, err
	}

	s, err := session.New(cfg)
	if err != nil {
		return Point{}, fmt.Errorf("point %s=%g: %w", r.Axis.Field, val, err)
	}
	for _, m := range standardSet() {
		s.AddMetric(m)
	}
	prime(s)

	res, err := s.Run(ctx, session.RunConfig{Dt: dt, Duration: r.Duration})
	if err != nil {
		return Point{}, fmt.Errorf("point %s=%g: %w", r.Axis.Field, val, err)
	}
	return Point{Value: val, Metric: res.Metrics[r.Metric], Steps: res.Steps}, nil
}

// Extremes picks the lowest and highest metric points. A sweep has no
// objective to minimize, so both ends come back rather than one best.
func Extremes(pts []Point) (lo, hi Point) {
	if len(pts) == 0 {
		return
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.Metric < lo.Metric {
			lo = p
		}
		if p.Metric > hi.Metric {
			hi = p
		}
	}
	return
}
