package phys

import (
	"math"
	"testing"
)

func TestCentralGravity(t *testing.T) {
	center := Vec2{400, 300}
	pos := Vec2{600, 300}
	mu := 1000.0

	acc := CentralGravity(pos, center, mu)
	// d = 200, magnitude mu/d^2 = 0.025, directed back toward center.
	if math.Abs(acc.X-(-0.025)) > 1e-12 || math.Abs(acc.Y) > 1e-12 {
		t.Errorf("acc: got %v, expected (-0.025, 0)", acc)
	}
}

func TestCentralGravityNearCenter(t *testing.T) {
	center := Vec2{400, 300}
	if acc := CentralGravity(Vec2{400.5, 300}, center, 1000); acc != (Vec2{}) {
		t.Errorf("inside unit distance: got %v, expected zero", acc)
	}
	if acc := CentralGravity(center, center, 1000); acc != (Vec2{}) {
		t.Errorf("at center: got %v, expected zero", acc)
	}
}

func TestOrbitalSpeedCircular(t *testing.T) {
	// A body launched at OrbitalSpeed tangentially should hold its
	// radius over a full revolution of small steps.
	center := Vec2{0, 0}
	mu := 1000.0
	r := 200.0
	p := Particle{
		Pos:    Vec2{r, 0},
		Vel:    Vec2{0, OrbitalSpeed(mu, r)},
		Radius: 1,
	}

	period := 2 * math.Pi * r / OrbitalSpeed(mu, r)
	dt := period / 100000
	for i := 0; i < 100000; i++ {
		Integrate(&p, CentralGravity(p.Pos, center, mu), dt)
	}
	if got := p.Pos.Sub(center).Len(); math.Abs(got-r)/r > 0.01 {
		t.Errorf("radius after one revolution: got %.3f, expected %.3f", got, r)
	}
}
