package session

import (
	"math"

	"github.com/skovran/physbox/internal/phys"
)

// Phase is the projectile lifecycle. Exactly one instance is active
// per ballistic session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAiming
	PhaseFlying
	PhaseApexPause
	PhaseLanded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAiming:
		return "aiming"
	case PhaseFlying:
		return "flying"
	case PhaseApexPause:
		return "apex"
	case PhaseLanded:
		return "landed"
	}
	return "unknown"
}

// FlightResult is the summary published when the shot lands.
type FlightResult struct {
	Range     float64
	MaxHeight float64
	Angle     float64 // launch angle in degrees above horizontal
	MaxSpeed  float64 // launch speed after capping
}

// projectile is the ballistic phase machine. Timed transitions are
// elapsed-dt predicates checked once per step, so the machine runs
// identically under synthetic time slices.
type projectile struct {
	phase       Phase
	pad         phys.Vec2 // cannon pivot; the ball re-racks here
	aim         phys.Vec2 // pointer while aiming
	cannonAngle float64   // degrees, screen sense; persists after release
	prevVy      float64
	pauseT      float64
	showT       float64
	result      FlightResult
	hasResult   bool
}

func (s *Session) initBallistic() {
	b := s.cfg.Ballistic
	pad := phys.Vec2{X: b.CannonX, Y: s.cfg.World.Height - b.GroundHeight - b.CannonWidth/2}
	s.particles = []phys.Particle{{Pos: pad, Radius: b.BallRadius}}
	s.proj = projectile{pad: pad}
}

// resetBallistic returns the machine to idle with the ball on the pad.
func (s *Session) resetBallistic() {
	pad := s.proj.pad
	angle := s.proj.cannonAngle
	s.proj = projectile{pad: pad, cannonAngle: angle}
	s.particles[0] = phys.Particle{Pos: pad, Radius: s.cfg.Ballistic.BallRadius}
}

// press starts aiming unless a shot is in progress. Re-pressing while
// aiming just moves the aim.
func (p *projectile) press(s *Session, at phys.Vec2) {
	switch p.phase {
	case PhaseIdle:
		p.phase = PhaseAiming
		p.aim = at
		p.hasResult = false
		s.particles[0] = phys.Particle{Pos: p.pad, Radius: s.cfg.Ballistic.BallRadius}
	case PhaseAiming:
		p.aim = at
	}
}

func (p *projectile) move(at phys.Vec2) {
	if p.phase == PhaseAiming {
		p.aim = at
	}
}

// release fires. The aim vector runs from the cannon pivot to the
// release point; its length scales into launch speed, capped. A
// release on the pivot itself has no direction and cancels the shot.
func (p *projectile) release(s *Session, at phys.Vec2) {
	if p.phase != PhaseAiming {
		return
	}
	b := s.cfg.Ballistic
	dir := at.Sub(p.pad)
	l := dir.Len()
	if l == 0 {
		p.phase = PhaseIdle
		return
	}
	dir = dir.Scale(1 / l)
	speed := math.Min(l*b.LaunchScale, b.MaxSpeed)

	ball := &s.particles[0]
	ball.Pos = p.pad.Add(dir.Scale(b.MuzzleOffset))
	ball.Vel = dir.Scale(speed)

	p.phase = PhaseFlying
	p.prevVy = ball.Vel.Y
	p.cannonAngle = math.Atan2(dir.Y, dir.X) * 180 / math.Pi
	p.result = FlightResult{
		Angle:    math.Atan2(-dir.Y, dir.X) * 180 / math.Pi,
		MaxSpeed: speed,
	}
}

// stepBallistic advances the machine one frame. Flight is plain
// gravity integration; the apex pause freezes the ball mid-air with
// its vertical speed zeroed, then gravity resumes.
func (s *Session) stepBallistic(dt float64) {
	b := s.cfg.Ballistic
	p := &s.proj
	ball := &s.particles[0]

	switch p.phase {
	case PhaseFlying:
		phys.Integrate(ball, phys.Vec2{Y: b.Gravity}, dt)

		// Apex: vertical velocity crossed from upward to downward.
		if ball.Vel.Y >= 0 && p.prevVy < 0 {
			p.phase = PhaseApexPause
			p.pauseT = 0
			p.result.MaxHeight = p.pad.Y - ball.Pos.Y
			ball.Vel.Y = 0
		}
		p.prevVy = ball.Vel.Y

		if p.phase == PhaseFlying && ball.Bottom() >= s.groundLine() {
			ball.SetBottom(s.groundLine())
			ball.Vel = phys.Vec2{}
			p.phase = PhaseLanded
			p.showT = 0
			p.result.Range = ball.Pos.X - p.pad.X
			p.hasResult = true
		}

	case PhaseApexPause:
		p.pauseT += dt
		if p.pauseT >= b.PauseSecs {
			p.phase = PhaseFlying
		}

	case PhaseLanded:
		p.showT += dt
		if p.showT >= b.ShowSecs {
			s.resetBallistic()
		}
	}
}

// groundLine is where the ball's lower edge lands.
func (s *Session) groundLine() float64 {
	return s.cfg.World.Height
}

// Phase exposes the current projectile phase; meaningful in the
// ballistic mode only.
func (s *Session) Phase() Phase { return s.proj.phase }

// Result returns the last landed shot's summary while it is on
// display, or nil.
func (s *Session) Result() *FlightResult {
	if !s.proj.hasResult {
		return nil
	}
	r := s.proj.result
	return &r
}

// previewPoints samples the candidate parabola for the current aim:
// pure display data, never simulation state.
func (s *Session) previewPoints() []phys.Vec2 {
	if s.proj.phase != PhaseAiming {
		return nil
	}
	b := s.cfg.Ballistic
	dir := s.proj.aim.Sub(s.proj.pad)
	l := dir.Len()
	if l == 0 {
		return nil
	}
	dir = dir.Scale(1 / l)
	v0 := dir.Scale(math.Min(l*b.LaunchScale, b.MaxSpeed))
	muzzle := s.proj.pad.Add(dir.Scale(b.MuzzleOffset))

	var pts []phys.Vec2
	for t := 0.0; t < b.PreviewHorizon; t += b.PreviewStep {
		pt := muzzle.Add(v0.Scale(t))
		pt.Y += 0.5 * b.Gravity * t * t
		if pt.Y > s.cfg.World.Height {
			break
		}
		pts = append(pts, pt)
	}
	return pts
}
