package metrics

import (
	"math"
	"testing"

	"github.com/skovran/physbox/internal/phys"
)

func TestKineticEnergyMean(t *testing.T) {
	m := NewKineticEnergy()

	// One particle at speed 5: 0.5*25 = 12.5.
	m.Observe([]phys.Particle{{Vel: phys.Vec2{X: 3, Y: 4}}}, nil, 0)
	if math.Abs(m.Value()-12.5) > 1e-12 {
		t.Errorf("got %f, expected 12.5", m.Value())
	}

	// A second, resting frame halves the mean.
	m.Observe([]phys.Particle{{}}, nil, 0)
	if math.Abs(m.Value()-6.25) > 1e-12 {
		t.Errorf("got %f, expected 6.25", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMomentumDriftStaysZeroWhenConserved(t *testing.T) {
	m := NewMomentumDrift()

	// Opposite equal velocities swap, as a head-on impulse would
	// leave them: the sum never moves.
	m.Observe([]phys.Particle{{Vel: phys.Vec2{X: 10}}, {Vel: phys.Vec2{X: -10}}}, nil, 0)
	m.Observe([]phys.Particle{{Vel: phys.Vec2{X: -10}}, {Vel: phys.Vec2{X: 10}}}, nil, 1)
	if m.Value() != 0 {
		t.Errorf("drift %f on a conserved pair", m.Value())
	}

	// A wall flip changes the sum by 2*|v|.
	m.Observe([]phys.Particle{{Vel: phys.Vec2{X: -10}}, {Vel: phys.Vec2{X: -10}}}, nil, 2)
	if math.Abs(m.Value()-20) > 1e-12 {
		t.Errorf("got drift %f, expected 20", m.Value())
	}
}

func TestCollisionsCount(t *testing.T) {
	c := NewCollisions()
	c.Observe(nil, []phys.Contact{{}, {}}, 0)
	c.Observe(nil, nil, 1)
	c.Observe(nil, []phys.Contact{{}}, 2)
	if c.Value() != 3 {
		t.Errorf("got %v, expected 3", c.Value())
	}
	c.Reset()
	if c.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMeanImpact(t *testing.T) {
	m := NewMeanImpact()
	if m.Value() != 0 {
		t.Error("expected zero with no contacts")
	}
	m.Observe(nil, []phys.Contact{{Impact: 5}, {Impact: 3}}, 0)
	m.Observe(nil, []phys.Contact{{Impact: 4}}, 1)
	if math.Abs(m.Value()-4) > 1e-12 {
		t.Errorf("got %f, expected 4", m.Value())
	}
}

func TestPeakSpeed(t *testing.T) {
	p := NewPeakSpeed()
	p.Observe([]phys.Particle{{Vel: phys.Vec2{X: 3, Y: 4}}}, nil, 0)
	p.Observe([]phys.Particle{{Vel: phys.Vec2{X: 1}}}, nil, 1)
	if p.Value() != 5 {
		t.Errorf("got %f, expected 5", p.Value())
	}
	p.Reset()
	if p.Value() != 0 {
		t.Error("expected zero after reset")
	}
}
