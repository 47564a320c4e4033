package metrics

import (
	"math"

	"github.com/skovran/physbox/internal/phys"
)

// KineticEnergy reports the mean total kinetic energy across the run,
// unit masses throughout.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(ps []phys.Particle, _ []phys.Contact, _ float64) {
	sum := 0.0
	for i := range ps {
		sum += 0.5 * ps[i].Vel.LenSq()
	}
	k.total += sum
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// MomentumDrift tracks how far the summed velocity vector wanders
// from its first observation. Pair impulses cancel exactly, so any
// drift in a wall-free run is integration noise.
type MomentumDrift struct {
	name    string
	initial phys.Vec2
	max     float64
	samples int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(ps []phys.Particle, _ []phys.Contact, _ float64) {
	var p phys.Vec2
	for i := range ps {
		p = p.Add(ps[i].Vel)
	}
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.max = math.Max(m.max, p.Sub(m.initial).Len())
}

func (m *MomentumDrift) Value() float64 { return m.max }

func (m *MomentumDrift) Reset() {
	m.initial = phys.Vec2{}
	m.max = 0
	m.samples = 0
}
