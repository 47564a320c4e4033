package session

import "github.com/skovran/physbox/internal/phys"

type orbitState struct {
	center phys.Vec2
	mu     float64 // gravitational parameter G*M of the sun
}

func (s *Session) initOrbit() {
	o := s.cfg.Orbit
	s.orbit = orbitState{
		center: phys.Vec2{X: s.cfg.World.Width / 2, Y: s.cfg.World.Height / 2},
		mu:     o.Gravity * o.SunMass,
	}
	s.particles = make([]phys.Particle, len(o.Planets))
	s.resetOrbit()
}

// resetOrbit puts every planet back on its orbit radius, due east of
// the sun, moving tangentially at circular-orbit speed.
func (s *Session) resetOrbit() {
	for i, p := range s.cfg.Orbit.Planets {
		s.particles[i] = phys.Particle{
			Pos:    s.orbit.center.Add(phys.Vec2{X: p.OrbitRadius}),
			Vel:    phys.Vec2{Y: phys.OrbitalSpeed(s.orbit.mu, p.OrbitRadius)},
			Radius: p.Radius,
		}
	}
}

// stepOrbit pulls each planet toward the sun. The time scale stretches
// the wall-clock slice so orbits complete in seconds; planets ignore
// walls and each other.
func (s *Session) stepOrbit(dt float64) {
	sdt := dt * s.cfg.Orbit.TimeScale
	for i := range s.particles {
		acc := phys.CentralGravity(s.particles[i].Pos, s.orbit.center, s.orbit.mu)
		phys.Integrate(&s.particles[i], acc, sdt)
	}
}
