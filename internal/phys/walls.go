package phys

// Rect is an axis-aligned boundary. Particles stay inside it:
// after ResolveWalls the center lies within [Min+r, Max-r] on both axes.
type Rect struct {
	Min, Max Vec2
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Wall is a bitmask of boundary edges hit during resolution.
type Wall uint8

const (
	WallLeft Wall = 1 << iota
	WallRight
	WallTop
	WallBottom
)

func (w Wall) Has(q Wall) bool { return w&q != 0 }

// ResolveWalls clamps a particle back inside the boundary and reflects
// the velocity component normal to each crossed wall, attenuated by the
// restitution e. The four edges are tested independently in a fixed
// order (left, right, top, bottom), so a corner hit clamps and reflects
// both axes in the same frame. A particle fast enough to cross a wall
// entirely within one step is pulled back rather than traced; tunneling
// at extreme v*dt is an accepted approximation.
func ResolveWalls(p *Particle, bounds Rect, e float64) Wall {
	var hit Wall
	if p.Pos.X-p.Radius < bounds.Min.X {
		p.Pos.X = bounds.Min.X + p.Radius
		p.Vel.X *= -e
		hit |= WallLeft
	}
	if p.Pos.X+p.Radius > bounds.Max.X {
		p.Pos.X = bounds.Max.X - p.Radius
		p.Vel.X *= -e
		hit |= WallRight
	}
	if p.Pos.Y-p.Radius < bounds.Min.Y {
		p.Pos.Y = bounds.Min.Y + p.Radius
		p.Vel.Y *= -e
		hit |= WallTop
	}
	if p.Pos.Y+p.Radius > bounds.Max.Y {
		p.Pos.Y = bounds.Max.Y - p.Radius
		p.Vel.Y *= -e
		hit |= WallBottom
	}
	return hit
}
