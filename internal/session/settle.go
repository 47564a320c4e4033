package session

import "github.com/skovran/physbox/internal/phys"

type settleState struct {
	running bool
	settled []bool
	phases  []float64 // per-column surface wave phase
	columns []column
}

// column is the derived geometry of one fluid container.
type column struct {
	x, y  float64 // top-left
	w, h  float64
	floor float64 // y where a ball's lower edge rests
}

func (s *Session) initSettling() {
	set := s.cfg.Settling
	n := len(set.Fluids)
	total := float64(n)*set.ContainerWidth + float64(n-1)*set.Spacing
	startX := (s.cfg.World.Width - total) / 2
	topY := s.cfg.World.Height - set.GroundHeight - set.ContainerHeight

	s.settle = settleState{
		settled: make([]bool, n),
		phases:  make([]float64, n),
		columns: make([]column, n),
	}
	for i := range s.settle.columns {
		x := startX + float64(i)*(set.ContainerWidth+set.Spacing)
		s.settle.columns[i] = column{
			x: x, y: topY,
			w: set.ContainerWidth, h: set.ContainerHeight,
			floor: topY + set.ContainerHeight,
		}
	}
	s.particles = make([]phys.Particle, n)
	s.resetSettling()
}

// resetSettling re-racks every ball at its column's midpoint and halts
// the run; the next start key drops them again.
func (s *Session) resetSettling() {
	s.settle.running = false
	for i := range s.particles {
		c := s.settle.columns[i]
		s.particles[i] = phys.Particle{
			Pos:    phys.Vec2{X: c.x + c.w/2, Y: c.y + c.h/2 - 10},
			Radius: s.cfg.Settling.BallRadius,
		}
		s.settle.settled[i] = false
	}
}

// stepSettling drops each ball against its fluid's linear drag:
// a = g - k*vy, an exponential approach to terminal velocity. A ball
// is done once its lower edge meets the container floor; it is pinned
// there and skipped from then on. Surface waves advance only while
// the run is live.
func (s *Session) stepSettling(dt float64) {
	if !s.settle.running {
		return
	}
	set := s.cfg.Settling
	for i := range s.particles {
		if s.settle.settled[i] {
			continue
		}
		p := &s.particles[i]
		acc := phys.Vec2{Y: set.Gravity - set.Fluids[i].Viscosity*p.Vel.Y}
		phys.Integrate(p, acc, dt)
		if p.Bottom() >= s.settle.columns[i].floor {
			p.SetBottom(s.settle.columns[i].floor)
			p.Vel = phys.Vec2{}
			s.settle.settled[i] = true
		}
	}
	for i := range s.settle.phases {
		s.settle.phases[i] += dt * set.WaveSpeed
	}
}

// Settled reports whether every ball has reached its floor.
func (s *Session) Settled() bool {
	for _, done := range s.settle.settled {
		if !done {
			return false
		}
	}
	return len(s.settle.settled) > 0
}
