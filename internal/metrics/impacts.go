package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/skovran/physbox/internal/phys"
)

// Collisions counts resolved pair contacts over the run.
type Collisions struct {
	name  string
	count int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(_ []phys.Particle, contacts []phys.Contact, _ float64) {
	c.count += len(contacts)
}

func (c *Collisions) Value() float64 { return float64(c.count) }

func (c *Collisions) Reset() { c.count = 0 }

// MeanImpact averages the closing speed of every pair contact.
type MeanImpact struct {
	name    string
	impacts []float64
}

func NewMeanImpact() *MeanImpact {
	return &MeanImpact{name: "mean_impact"}
}

func (m *MeanImpact) Name() string { return m.name }

func (m *MeanImpact) Observe(_ []phys.Particle, contacts []phys.Contact, _ float64) {
	for _, c := range contacts {
		m.impacts = append(m.impacts, c.Impact)
	}
}

func (m *MeanImpact) Value() float64 {
	if len(m.impacts) == 0 {
		return 0
	}
	return stat.Mean(m.impacts, nil)
}

func (m *MeanImpact) Reset() { m.impacts = m.impacts[:0] }
