package phys

import (
	"math"
	"testing"
)

func TestIntegrateVelocityBeforePosition(t *testing.T) {
	p := Particle{Pos: Vec2{0, 0}, Vel: Vec2{1, 0}, Radius: 1}
	Integrate(&p, Vec2{0, 10}, 0.5)

	// v' = v + a*dt = (1, 5); p' = p + v'*dt = (0.5, 2.5).
	// Explicit Euler would have moved the position with the old
	// velocity and left p.Y at 0.
	if math.Abs(p.Vel.X-1) > 1e-12 || math.Abs(p.Vel.Y-5) > 1e-12 {
		t.Errorf("velocity: got (%.6f, %.6f), expected (1, 5)", p.Vel.X, p.Vel.Y)
	}
	if math.Abs(p.Pos.X-0.5) > 1e-12 || math.Abs(p.Pos.Y-2.5) > 1e-12 {
		t.Errorf("position: got (%.6f, %.6f), expected (0.5, 2.5)", p.Pos.X, p.Pos.Y)
	}
}

func TestIntegrateNonPositiveDt(t *testing.T) {
	for _, dt := range []float64{0, -0.016} {
		p := Particle{Pos: Vec2{3, 4}, Vel: Vec2{5, 6}, Radius: 1}
		Integrate(&p, Vec2{0, 100}, dt)
		if p.Pos != (Vec2{3, 4}) || p.Vel != (Vec2{5, 6}) {
			t.Errorf("dt=%v mutated state: pos=%v vel=%v", dt, p.Pos, p.Vel)
		}
	}
}

func TestIntegrateFreeFall(t *testing.T) {
	// Constant acceleration, many small steps: position should track
	// the closed form within the scheme's first-order error.
	const g = 9.81
	p := Particle{Radius: 1}
	dt := 0.001
	steps := 1000
	for i := 0; i < steps; i++ {
		Integrate(&p, Vec2{0, g}, dt)
	}
	tTotal := float64(steps) * dt
	want := 0.5 * g * tTotal * tTotal
	if math.Abs(p.Pos.Y-want) > g*tTotal*dt {
		t.Errorf("fall distance: got %.6f, expected %.6f", p.Pos.Y, want)
	}
}

func TestClampDt(t *testing.T) {
	cases := []struct {
		dt, max, want float64
	}{
		{0.016, 0.1, 0.016},
		{0.5, 0.1, 0.1},
		{-1, 0.1, -1},
	}
	for _, c := range cases {
		if got := ClampDt(c.dt, c.max); got != c.want {
			t.Errorf("ClampDt(%v, %v) = %v, expected %v", c.dt, c.max, got, c.want)
		}
	}
}
