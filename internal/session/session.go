// Package session owns the live state of one sandbox simulation: the
// particle set, the per-mode configuration, the input queue, and the
// projectile phase machine. A session is built for one mode and torn
// down on mode switch; nothing here is global. The presentation layer
// talks to it through Queue, Step, and Snapshot only.
package session

import (
	"math/rand"
	"time"

	"github.com/skovran/physbox/internal/config"
	"github.com/skovran/physbox/internal/phys"
)

// Metric observes each completed step and reduces it to one value.
// Implementations live in the metrics package; the session only
// drives them.
type Metric interface {
	Name() string
	Observe(ps []phys.Particle, contacts []phys.Contact, t float64)
	Value() float64
	Reset()
}

// WallHit records one particle touching one or more walls in a frame.
type WallHit struct {
	Index int
	Walls phys.Wall
}

type dragState struct {
	active  bool
	index   int
	anchor  phys.Vec2
	pointer phys.Vec2
}

// Session drives one simulation mode frame by frame. Not safe for
// concurrent use: input, stepping, and snapshots happen on one
// goroutine, in that order within a frame.
type Session struct {
	cfg *config.Config
	rng *rand.Rand

	particles []phys.Particle
	bounds    phys.Rect
	time      float64

	events []Event
	drag   dragState
	proj   projectile
	orbit  orbitState
	settle settleState

	contacts []phys.Contact
	wallHits []WallHit

	metrics []Metric
}

// New builds a session for cfg's mode. The config is validated once
// here and treated as immutable afterwards.
func New(cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
	switch cfg.Mode {
	case config.ModeOrbit:
		s.initOrbit()
	case config.ModeBallistic:
		s.initBallistic()
	case config.ModeCollision:
		s.initCollision()
	case config.ModeSettling:
		s.initSettling()
	}
	return s, nil
}

func (s *Session) Mode() config.Mode      { return s.cfg.Mode }
func (s *Session) Config() *config.Config { return s.cfg }
func (s *Session) Time() float64          { return s.time }

// Particles returns the live slice for inspection. Callers must not
// mutate it; Snapshot copies it for anything that leaves the frame.
func (s *Session) Particles() []phys.Particle { return s.particles }

func (s *Session) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Step advances the session by one frame: drain queued input, apply
// per-mode forces and integration, resolve walls, resolve pairs, then
// let metrics observe. dt is clamped against clock spikes; a frame
// with no time to give still delivers input.
func (s *Session) Step(dt float64) {
	dt = phys.ClampDt(dt, s.cfg.MaxDt)
	s.drainEvents()
	if dt <= 0 {
		return
	}

	s.contacts = nil
	s.wallHits = s.wallHits[:0]

	switch s.cfg.Mode {
	case config.ModeOrbit:
		s.stepOrbit(dt)
	case config.ModeBallistic:
		s.stepBallistic(dt)
	case config.ModeCollision:
		s.stepCollision(dt)
	case config.ModeSettling:
		s.stepSettling(dt)
	}

	s.time += dt
	for _, m := range s.metrics {
		m.Observe(s.particles, s.contacts, s.time)
	}
}

// Reset applies the mode's reset immediately: velocities zeroed, drag
// cleared, and whatever the mode re-racks. Queuing a KeyReset event
// does the same at the next Step; calling twice changes nothing more.
func (s *Session) Reset() {
	switch s.cfg.Mode {
	case config.ModeOrbit:
		s.resetOrbit()
	case config.ModeBallistic:
		s.resetBallistic()
	case config.ModeCollision:
		s.resetCollision()
	case config.ModeSettling:
		s.resetSettling()
	}
}

func (s *Session) stepCollision(dt float64) {
	for i := range s.particles {
		phys.Integrate(&s.particles[i], phys.Vec2{}, dt)
	}
	for i := range s.particles {
		if hit := phys.ResolveWalls(&s.particles[i], s.bounds, s.cfg.Collision.Restitution); hit != 0 {
			s.wallHits = append(s.wallHits, WallHit{Index: i, Walls: hit})
		}
	}
	s.contacts = phys.ResolvePairs(s.particles, s.cfg.Collision.Restitution)
}

func (s *Session) initCollision() {
	col := s.cfg.Collision
	s.bounds = phys.Rect{
		Min: phys.Vec2{X: col.Inset, Y: col.Inset},
		Max: phys.Vec2{X: s.cfg.World.Width - col.Inset, Y: s.cfg.World.Height - col.Inset},
	}
	s.particles = make([]phys.Particle, col.BallCount)
	for i := range s.particles {
		s.particles[i] = phys.Particle{
			Pos: phys.Vec2{
				X: s.bounds.Min.X + col.SpawnMargin + s.rng.Float64()*(s.bounds.Width()-2*col.SpawnMargin),
				Y: s.bounds.Min.Y + col.SpawnMargin + s.rng.Float64()*(s.bounds.Height()-2*col.SpawnMargin),
			},
			Radius: col.BallRadius,
		}
	}
}

// resetCollision is the space-bar stop-all: every ball freezes in
// place and any drag in progress is dropped.
func (s *Session) resetCollision() {
	for i := range s.particles {
		s.particles[i].Vel = phys.Vec2{}
	}
	s.drag = dragState{}
}
