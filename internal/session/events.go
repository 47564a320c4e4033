package session

import (
	"github.com/skovran/physbox/internal/config"
	"github.com/skovran/physbox/internal/phys"
)

// EventKind is one of the discrete input events a frame can deliver.
type EventKind int

const (
	PointerPress EventKind = iota
	PointerMove
	PointerRelease
	KeyReset
	KeyStart
)

func (k EventKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	case KeyReset:
		return "reset"
	case KeyStart:
		return "start"
	}
	return "unknown"
}

// Event is a single input event. At is meaningful for pointer kinds
// only.
type Event struct {
	Kind EventKind
	At   phys.Vec2
}

// Queue appends an event for the next Step. Events are drained in
// the order queued, before any physics runs.
func (s *Session) Queue(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) drainEvents() {
	for _, e := range s.events {
		s.dispatch(e)
	}
	s.events = s.events[:0]
}

func (s *Session) dispatch(e Event) {
	switch s.cfg.Mode {
	case config.ModeCollision:
		s.collisionEvent(e)
	case config.ModeBallistic:
		s.ballisticEvent(e)
	case config.ModeSettling:
		s.settlingEvent(e)
	case config.ModeOrbit:
		if e.Kind == KeyReset {
			s.resetOrbit()
		}
	}
}

// collisionEvent implements drag-to-throw: press inside a ball grabs
// it and kills its motion, release throws it along the drag vector.
func (s *Session) collisionEvent(e Event) {
	switch e.Kind {
	case PointerPress:
		for i := range s.particles {
			if s.particles[i].Contains(e.At) {
				s.drag = dragState{active: true, index: i, anchor: e.At, pointer: e.At}
				s.particles[i].Vel = phys.Vec2{}
				break
			}
		}
	case PointerMove:
		if s.drag.active {
			s.drag.pointer = e.At
		}
	case PointerRelease:
		if s.drag.active {
			throw := e.At.Sub(s.drag.anchor).Scale(s.cfg.Collision.ThrowScale)
			s.particles[s.drag.index].Vel = throw
			s.drag = dragState{}
		}
	case KeyReset:
		s.resetCollision()
	}
}

func (s *Session) settlingEvent(e Event) {
	switch e.Kind {
	case KeyStart:
		s.settle.running = true
	case KeyReset:
		s.resetSettling()
	}
}

func (s *Session) ballisticEvent(e Event) {
	switch e.Kind {
	case PointerPress:
		s.proj.press(s, e.At)
	case PointerMove:
		s.proj.move(e.At)
	case PointerRelease:
		s.proj.release(s, e.At)
	case KeyReset:
		s.resetBallistic()
	}
}
