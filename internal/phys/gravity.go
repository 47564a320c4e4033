package phys

import "math"

// CentralGravity is the inverse-square pull toward a fixed attractor,
// mu being the gravitational parameter G*M. Inside one unit of the
// center the pull is zeroed instead of blowing up.
func CentralGravity(pos, center Vec2, mu float64) Vec2 {
	toCenter := center.Sub(pos)
	d2 := toCenter.LenSq()
	if d2 <= 1 {
		return Vec2{}
	}
	d := math.Sqrt(d2)
	return toCenter.Scale(mu / (d2 * d))
}

// OrbitalSpeed is the tangential speed of a circular orbit of radius r
// around an attractor with gravitational parameter mu.
func OrbitalSpeed(mu, r float64) float64 {
	return math.Sqrt(mu / r)
}
