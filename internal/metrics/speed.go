package metrics

import "github.com/skovran/physbox/internal/phys"

// PeakSpeed remembers the fastest particle speed seen.
type PeakSpeed struct {
	name string
	max  float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(ps []phys.Particle, _ []phys.Contact, _ float64) {
	for i := range ps {
		if s := ps[i].Vel.Len(); s > p.max {
			p.max = s
		}
	}
}

func (p *PeakSpeed) Value() float64 { return p.max }

func (p *PeakSpeed) Reset() { p.max = 0 }
