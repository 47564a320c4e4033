package session

import (
	"fmt"
	"math"

	"github.com/skovran/physbox/internal/config"
	"github.com/skovran/physbox/internal/phys"
)

// Tag says what a primitive is, not how to paint it. The renderer
// maps tags to a palette; the session never chooses colors.
type Tag uint8

const (
	TagBody      Tag = iota // a simulated particle
	TagSun                  // the orbital attractor
	TagOrbitPath            // circular path guides
	TagDetail               // planet trim: stripes, rings
	TagPreview              // aiming trajectory dots
	TagStructure            // ground, cannon, containers
	TagIndicator            // the drag line
	TagWave                 // fluid surface
	TagHUD                  // legends and result text
)

type Circle struct {
	Center phys.Vec2
	Radius float64
	Tag    Tag
	Index  int
}

// RectShape rotates by Angle degrees about Pos; Origin is the pivot's
// offset inside the rect. A plain box has zero Origin and Angle with
// Pos as its top-left corner.
type RectShape struct {
	Pos    phys.Vec2
	Size   phys.Vec2
	Origin phys.Vec2
	Angle  float64
	Tag    Tag
	Index  int
}

type Segment struct {
	From, To phys.Vec2
	Tag      Tag
	Index    int
}

type Poly struct {
	Points []phys.Vec2
	Closed bool
	Tag    Tag
	Index  int
}

type Label struct {
	Pos   phys.Vec2
	Text  string
	Tag   Tag
	Index int
}

// Frame is the read-only snapshot handed to renderers, recorders, and
// observers: raw particle state for anything numeric, plus the draw
// list the presentation layer renders verbatim.
type Frame struct {
	Mode      config.Mode
	Time      float64
	Particles []phys.Particle
	Contacts  []phys.Contact
	WallHits  []WallHit
	Phase     Phase
	Result    *FlightResult

	Circles  []Circle
	Rects    []RectShape
	Segments []Segment
	Polys    []Poly
	Labels   []Label
}

// Snapshot builds the frame for the current state. The slices are
// fresh copies; callers may hold them across steps.
func (s *Session) Snapshot() *Frame {
	f := &Frame{
		Mode:      s.cfg.Mode,
		Time:      s.time,
		Particles: append([]phys.Particle(nil), s.particles...),
		Contacts:  append([]phys.Contact(nil), s.contacts...),
		WallHits:  append([]WallHit(nil), s.wallHits...),
		Phase:     s.proj.phase,
		Result:    s.Result(),
	}
	switch s.cfg.Mode {
	case config.ModeOrbit:
		s.buildOrbitFrame(f)
	case config.ModeBallistic:
		s.buildBallisticFrame(f)
	case config.ModeCollision:
		s.buildCollisionFrame(f)
	case config.ModeSettling:
		s.buildSettlingFrame(f)
	}
	return f
}

func (s *Session) buildOrbitFrame(f *Frame) {
	o := s.cfg.Orbit
	center := s.orbit.center

	for i, p := range o.Planets {
		f.Circles = append(f.Circles, Circle{Center: center, Radius: p.OrbitRadius, Tag: TagOrbitPath, Index: i})
	}

	// Serrated sun: alternating spike and notch radii.
	const spikes = 60
	sun := Poly{Closed: true, Tag: TagSun, Points: make([]phys.Vec2, spikes)}
	for i := 0; i < spikes; i++ {
		angle := 2 * math.Pi * float64(i) / spikes
		rad := o.SunRadius - 3
		if i%2 == 1 {
			rad = o.SunRadius + 10
		}
		sun.Points[i] = center.Add(phys.Vec2{X: math.Cos(angle) * rad, Y: math.Sin(angle) * rad})
	}
	f.Polys = append(f.Polys, sun)

	for i := range s.particles {
		p := &s.particles[i]
		f.Circles = append(f.Circles, Circle{Center: p.Pos, Radius: p.Radius, Tag: TagBody, Index: i})

		meta := o.Planets[i]
		if meta.Striped {
			for k := 0; k < 6; k++ {
				f.Rects = append(f.Rects, RectShape{
					Pos:    p.Pos,
					Size:   phys.Vec2{X: 4, Y: p.Radius * 2},
					Origin: phys.Vec2{X: 2, Y: p.Radius},
					Angle:  float64(k) * 60,
					Tag:    TagDetail,
					Index:  i,
				})
			}
		}
		if meta.Ringed {
			f.Polys = append(f.Polys, ellipse(p.Pos, p.Radius*1.4, p.Radius*0.7, TagDetail, i))
		}
	}
}

func ellipse(center phys.Vec2, a, b float64, tag Tag, index int) Poly {
	const n = 60
	poly := Poly{Closed: true, Tag: tag, Index: index, Points: make([]phys.Vec2, n)}
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / n
		poly.Points[i] = center.Add(phys.Vec2{X: a * math.Cos(t), Y: b * math.Sin(t)})
	}
	return poly
}

func (s *Session) buildBallisticFrame(f *Frame) {
	b := s.cfg.Ballistic
	w, h := s.cfg.World.Width, s.cfg.World.Height

	f.Rects = append(f.Rects, RectShape{
		Pos:  phys.Vec2{Y: h - b.GroundHeight},
		Size: phys.Vec2{X: w, Y: b.GroundHeight},
		Tag:  TagStructure,
	})

	angle := s.proj.cannonAngle
	if s.proj.phase == PhaseAiming {
		if dir := s.proj.aim.Sub(s.proj.pad); dir.LenSq() > 0 {
			angle = math.Atan2(dir.Y, dir.X) * 180 / math.Pi
		}
	}
	f.Rects = append(f.Rects, RectShape{
		Pos:    s.proj.pad,
		Size:   phys.Vec2{X: b.CannonLength, Y: b.CannonWidth},
		Origin: phys.Vec2{Y: b.CannonWidth / 2},
		Angle:  angle,
		Tag:    TagStructure,
		Index:  1,
	})

	for _, pt := range s.previewPoints() {
		f.Circles = append(f.Circles, Circle{Center: pt, Radius: 2, Tag: TagPreview})
	}

	ball := s.particles[0]
	f.Circles = append(f.Circles, Circle{Center: ball.Pos, Radius: ball.Radius, Tag: TagBody})

	if r := s.Result(); r != nil {
		f.Labels = append(f.Labels, Label{
			Pos: phys.Vec2{X: 200, Y: 50},
			Text: fmt.Sprintf("Range: %.1f px\nMax Height: %.1f px\nAngle: %.1f deg\nMax Velocity: %.1f px/s",
				r.Range, r.MaxHeight, r.Angle, r.MaxSpeed),
			Tag: TagHUD,
		})
	}
}

func (s *Session) buildCollisionFrame(f *Frame) {
	f.Labels = append(f.Labels, Label{
		Pos:  phys.Vec2{X: 60, Y: 20},
		Text: "Drag the ball to throw it!",
		Tag:  TagHUD,
	})
	f.Rects = append(f.Rects, RectShape{
		Pos:  s.bounds.Min,
		Size: phys.Vec2{X: s.bounds.Width(), Y: s.bounds.Height()},
		Tag:  TagStructure,
	})
	for i := range s.particles {
		p := &s.particles[i]
		f.Circles = append(f.Circles, Circle{Center: p.Pos, Radius: p.Radius, Tag: TagBody, Index: i})
	}
	if s.drag.active {
		f.Segments = append(f.Segments, Segment{From: s.drag.anchor, To: s.drag.pointer, Tag: TagIndicator})
	}
}

func (s *Session) buildSettlingFrame(f *Frame) {
	set := s.cfg.Settling
	w, h := s.cfg.World.Width, s.cfg.World.Height

	f.Rects = append(f.Rects, RectShape{
		Pos:  phys.Vec2{Y: h - set.GroundHeight},
		Size: phys.Vec2{X: w, Y: set.GroundHeight},
		Tag:  TagStructure,
	})

	for i, c := range s.settle.columns {
		f.Rects = append(f.Rects, RectShape{
			Pos:   phys.Vec2{X: c.x, Y: c.y},
			Size:  phys.Vec2{X: c.w, Y: c.h},
			Tag:   TagStructure,
			Index: i + 1,
		})
		f.Polys = append(f.Polys, wavePoly(c, s.settle.phases[i], i))

		p := s.particles[i]
		f.Circles = append(f.Circles, Circle{Center: p.Pos, Radius: p.Radius, Tag: TagBody, Index: i})

		f.Labels = append(f.Labels, Label{
			Pos:   phys.Vec2{X: c.x + 10, Y: c.y + c.h + 5},
			Text:  fmt.Sprintf("%s - %g mPa·s", set.Fluids[i].Name, set.Fluids[i].Viscosity),
			Tag:   TagHUD,
			Index: i,
		})
	}
}

// wavePoly is the fluid body: a sinusoidal surface sampled across the
// column, closed along the container floor so the renderer can fill it.
func wavePoly(c column, phase float64, index int) Poly {
	const samples = 50
	poly := Poly{Closed: true, Tag: TagWave, Index: index}
	dx := c.w / (samples - 1)
	mid := c.y + c.h/2
	for i := 0; i < samples; i++ {
		x := float64(i) * dx
		y := 6 * math.Sin(0.05*x+phase)
		poly.Points = append(poly.Points, phys.Vec2{X: c.x + x, Y: mid + y})
	}
	poly.Points = append(poly.Points,
		phys.Vec2{X: c.x + c.w, Y: c.y + c.h},
		phys.Vec2{X: c.x, Y: c.y + c.h},
	)
	return poly
}
