package session

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrBadRunConfig indicates a non-positive step or duration.
var ErrBadRunConfig = errors.New("session: run config invalid")

// RunConfig drives a headless run: a fixed step repeated for a fixed
// span, unlike the interactive loop's wall-clock slices.
type RunConfig struct {
	Dt       float64
	Duration float64
}

// Result collects a finished headless run.
type Result struct {
	Frames  []*Frame
	Metrics map[string]float64
	Steps   int
}

// Run steps the session at a fixed dt until the duration is spent or
// the context is canceled. Metrics reset at the start and report at
// the end; every frame is captured. On cancellation the partial
// result comes back alongside the context's error.
func (s *Session) Run(ctx context.Context, rc RunConfig) (*Result, error) {
	return s.run(ctx, rc, nil)
}

// RunScripted is Run with an injection hook called before every step,
// letting a scenario queue input as if a user were present.
func (s *Session) RunScripted(ctx context.Context, rc RunConfig, inject func(t float64)) (*Result, error) {
	return s.run(ctx, rc, inject)
}

func (s *Session) run(ctx context.Context, rc RunConfig, inject func(t float64)) (*Result, error) {
	if rc.Dt <= 0 || rc.Duration <= 0 {
		return nil, fmt.Errorf("%w: dt=%g duration=%g", ErrBadRunConfig, rc.Dt, rc.Duration)
	}

	steps := int(math.Round(rc.Duration / rc.Dt))
	result := &Result{
		Frames:  make([]*Frame, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if inject != nil {
			inject(s.time)
		}
		s.Step(rc.Dt)
		result.Frames = append(result.Frames, s.Snapshot())
		result.Steps++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
