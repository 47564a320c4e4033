// Package script replays YAML-scripted input against a headless
// session, reproducing an interactive run without a window.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/skovran/physbox/internal/config"
	"github.com/skovran/physbox/internal/phys"
	"github.com/skovran/physbox/internal/session"
)

var ErrUnknownEvent = errors.New("script: unknown event kind")

// TimedEvent fires once, on the first step at or after At seconds of
// session time. Kind uses the event names press, move, release,
// reset, start; X and Y matter for the pointer kinds only.
type TimedEvent struct {
	At   float64 `yaml:"at"`
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Scenario scripts one headless run: which mode (or preset) to build
// and what input to feed it. Dt defaults to a 60 Hz step when omitted.
type Scenario struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Mode        string       `yaml:"mode"`
	Preset      string       `yaml:"preset"`
	Seed        int64        `yaml:"seed"`
	Dt          float64      `yaml:"dt"`
	Duration    float64      `yaml:"duration"`
	Events      []TimedEvent `yaml:"events"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("script: parse %s: %w", path, err)
	}
	return &sc, nil
}

var kinds = map[string]session.EventKind{
	"press":   session.PointerPress,
	"move":    session.PointerMove,
	"release": session.PointerRelease,
	"reset":   session.KeyReset,
	"start":   session.KeyStart,
}

// Config resolves the scenario's preset, or the mode's defaults, with
// the scenario's seed applied on top.
func (sc *Scenario) Config() (*config.Config, error) {
	mode, err := config.ParseMode(sc.Mode)
	if err != nil {
		return nil, err
	}
	cfg := config.DefaultFor(mode)
	if sc.Preset != "" {
		p := config.GetPreset(mode, sc.Preset)
		if p == nil {
			return nil, fmt.Errorf("script: no %s preset %q", mode, sc.Preset)
		}
		c := *p
		cfg = &c
	}
	if sc.Seed != 0 {
		cfg.Seed = sc.Seed
	}
	return cfg, nil
}

// Play builds the scenario's session and runs it to completion.
func Play(ctx context.Context, sc *Scenario) (*session.Result, error) {
	cfg, err := sc.Config()
	if err != nil {
		return nil, err
	}
	s, err := session.New(cfg)
	if err != nil {
		return nil, err
	}
	return PlayOn(ctx, s, sc)
}

// PlayOn replays the scenario against an existing session, keeping
// whatever metrics the caller attached. Events are delivered in
// timestamp order; ties keep file order.
func PlayOn(ctx context.Context, s *session.Session, sc *Scenario) (*session.Result, error) {
	order := append([]TimedEvent(nil), sc.Events...)
	sort.SliceStable(order, func(i, j int) bool { return order[i].At < order[j].At })

	events := make([]session.Event, len(order))
	for i, te := range order {
		kind, ok := kinds[te.Kind]
		if !ok {
			return nil, fmt.Errorf("%w: event %d kind %q", ErrUnknownEvent, i, te.Kind)
		}
		events[i] = session.Event{Kind: kind, At: phys.Vec2{X: te.X, Y: te.Y}}
	}

	dt := sc.Dt
	if dt == 0 {
		dt = 1.0 / 60
	}
	cursor := 0
	inject := func(t float64) {
		for cursor < len(order) && order[cursor].At <= t {
			s.Queue(events[cursor])
			cursor++
		}
	}
	return s.RunScripted(ctx, session.RunConfig{Dt: dt, Duration: sc.Duration}, inject)
}
