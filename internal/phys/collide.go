package phys

// Contact records one resolved particle pair for observers (impact
// audio, collision counters). It is rebuilt every frame and never
// cached: continuous motion invalidates it immediately.
type Contact struct {
	A, B    int
	Normal  Vec2 // unit vector from A's center toward B's
	Overlap float64
	Impact  float64 // relative normal speed before the impulse
}

// ResolvePairs resolves circle/circle overlap for every unordered pair,
// visited once in nested i<j order. Overlapping pairs exchange an
// impulse along the contact normal when approaching (positive closing
// speed), and are always pushed apart by half the overlap each, whether
// or not the impulse fired; resting overlaps drain even while the pair
// separates.
//
// The impulse assumes equal mass for all particles (the division by 2
// stands in for the inverse-mass sum). Coincident centers have no
// defined normal and are skipped. A particle may accumulate corrections
// from several pairs in one frame; no relaxation pass follows, so dense
// clusters resolve only approximately. Returns one Contact per impulse
// fired; pure de-penetrations are silent.
func ResolvePairs(ps []Particle, e float64) []Contact {
	var contacts []Contact
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			a, b := &ps[i], &ps[j]
			delta := b.Pos.Sub(a.Pos)
			d := delta.Len()
			minDist := a.Radius + b.Radius
			if d >= minDist || d == 0 {
				continue
			}
			n := delta.Scale(1 / d)
			overlap := minDist - d

			// Closing speed along the normal; positive means the
			// gap is shrinking.
			vn := a.Vel.Sub(b.Vel).Dot(n)
			if vn > 0 {
				imp := -(1 + e) * vn / 2
				a.Vel = a.Vel.Add(n.Scale(imp))
				b.Vel = b.Vel.Sub(n.Scale(imp))
				contacts = append(contacts, Contact{
					A: i, B: j, Normal: n, Overlap: overlap, Impact: vn,
				})
			}

			a.Pos = a.Pos.Sub(n.Scale(overlap / 2))
			b.Pos = b.Pos.Add(n.Scale(overlap / 2))
		}
	}
	return contacts
}
