// Package phys is the rigid-particle engine: semi-implicit Euler
// integration, axis-aligned boundary reflection, and impulse-based
// pairwise circle collisions. It never draws and never reads input;
// the session layer feeds it state and time slices.
package phys

// Particle is a circular rigid body. Mass is implicit and equal for
// all particles; only the collision impulse depends on that assumption.
type Particle struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
}

// Contains reports whether pt lies within the particle's disc.
func (p *Particle) Contains(pt Vec2) bool {
	return pt.Sub(p.Pos).LenSq() <= p.Radius*p.Radius
}

// Bottom is the y coordinate of the particle's lowest edge.
func (p Particle) Bottom() float64 {
	return p.Pos.Y + p.Radius
}

// SetBottom moves the particle so its lowest edge sits at y.
func (p *Particle) SetBottom(y float64) {
	p.Pos.Y = y - p.Radius
}
