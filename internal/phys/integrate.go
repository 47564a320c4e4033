package phys

// Integrate advances a particle one semi-implicit Euler step: the
// velocity absorbs the acceleration first, then the updated velocity
// moves the position. Updating velocity before position keeps orbital
// and ballistic paths stable under a variable frame delta.
// A non-positive dt is a no-op.
func Integrate(p *Particle, acc Vec2, dt float64) {
	if dt <= 0 {
		return
	}
	p.Vel = p.Vel.Add(acc.Scale(dt))
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
}

// ClampDt caps a frame delta at max. A paused or resumed clock can
// hand the loop a multi-second slice; integrating it in one step
// teleports particles through walls.
func ClampDt(dt, max float64) float64 {
	if dt > max {
		return max
	}
	return dt
}
