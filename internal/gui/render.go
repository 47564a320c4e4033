package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/skovran/physbox/internal/config"
	"github.com/skovran/physbox/internal/phys"
	"github.com/skovran/physbox/internal/session"
)

var (
	ColSun       = rl.NewColor(255, 204, 60, 255)
	ColStructure = rl.NewColor(70, 70, 78, 255)
	ColPreview   = rl.NewColor(200, 200, 200, 220)

	bodyPalette = []rl.Color{
		rl.NewColor(230, 120, 100, 255),
		rl.NewColor(120, 180, 230, 255),
		rl.NewColor(240, 200, 90, 255),
		rl.NewColor(140, 220, 160, 255),
		rl.NewColor(200, 140, 220, 255),
		rl.NewColor(235, 235, 235, 255),
	}

	// Keyed to the default column order: water, alcohol, oil, honey,
	// glycerine.
	fluidPalette = []rl.Color{
		rl.NewColor(80, 140, 220, 200),
		rl.NewColor(200, 210, 230, 170),
		rl.NewColor(225, 180, 70, 200),
		rl.NewColor(200, 130, 30, 220),
		rl.NewColor(220, 190, 210, 200),
	}
)

func v2(p phys.Vec2) rl.Vector2 {
	return rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
}

// drawFrame paints the session's draw list. Slice order inside a tag
// is preserved; across tags the passes run back to front so fluids
// sit under balls and planet trim sits over them.
func (a *App) drawFrame(f *session.Frame) {
	if f == nil {
		return
	}

	for _, r := range f.Rects {
		if r.Tag == session.TagStructure {
			a.drawRect(f.Mode, r)
		}
	}
	for _, c := range f.Circles {
		if c.Tag == session.TagOrbitPath {
			rl.DrawCircleLines(int32(c.Center.X), int32(c.Center.Y), float32(c.Radius), ColGrid)
		}
	}
	for _, p := range f.Polys {
		switch p.Tag {
		case session.TagSun:
			fillPoly(p.Points, ColSun)
		case session.TagWave:
			fillPoly(p.Points, fluidColor(p.Index))
		}
	}
	for _, c := range f.Circles {
		switch c.Tag {
		case session.TagBody:
			rl.DrawCircleV(v2(c.Center), float32(c.Radius), bodyColor(f.Mode, c.Index))
		case session.TagPreview:
			rl.DrawCircleV(v2(c.Center), float32(c.Radius), ColPreview)
		}
	}
	for _, r := range f.Rects {
		if r.Tag == session.TagDetail {
			a.drawRect(f.Mode, r)
		}
	}
	for _, p := range f.Polys {
		if p.Tag == session.TagDetail {
			drawPolyLines(p, ColTextDim)
		}
	}
	for _, s := range f.Segments {
		rl.DrawLineEx(v2(s.From), v2(s.To), 2, ColSelect)
	}
	for _, l := range f.Labels {
		a.drawText(l.Text, int(l.Pos.X), int(l.Pos.Y), 16, ColAccent)
	}
}

func (a *App) drawRect(mode config.Mode, r session.RectShape) {
	rect := rl.Rectangle{
		X:      float32(r.Pos.X),
		Y:      float32(r.Pos.Y),
		Width:  float32(r.Size.X),
		Height: float32(r.Size.Y),
	}
	switch {
	case mode == config.ModeCollision && r.Tag == session.TagStructure:
		// The arena is a boundary, not a solid.
		rl.DrawRectangleLinesEx(rect, 2, ColAccent)
	case r.Tag == session.TagDetail:
		rl.DrawRectanglePro(rect, v2(r.Origin), float32(r.Angle), rl.NewColor(0, 0, 0, 70))
	default:
		rl.DrawRectanglePro(rect, v2(r.Origin), float32(r.Angle), ColStructure)
	}
}

func bodyColor(mode config.Mode, index int) rl.Color {
	switch mode {
	case config.ModeBallistic, config.ModeSettling:
		return rl.NewColor(240, 240, 240, 255)
	default:
		return bodyPalette[index%len(bodyPalette)]
	}
}

func fluidColor(index int) rl.Color {
	return fluidPalette[index%len(fluidPalette)]
}

func drawPolyLines(p session.Poly, col rl.Color) {
	n := len(p.Points)
	for i := 0; i < n-1; i++ {
		rl.DrawLineV(v2(p.Points[i]), v2(p.Points[i+1]), col)
	}
	if p.Closed && n > 2 {
		rl.DrawLineV(v2(p.Points[n-1]), v2(p.Points[0]), col)
	}
}

// fillPoly fans from the centroid, which covers every closed shape
// the session emits: the sun star, ellipses, and the wave bodies are
// all star-shaped about their centroid.
func fillPoly(points []phys.Vec2, col rl.Color) {
	n := len(points)
	if n < 3 {
		return
	}
	var cx, cy float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
	}
	center := rl.Vector2{X: float32(cx / float64(n)), Y: float32(cy / float64(n))}

	for i := 0; i < n; i++ {
		fillTriangle(center, v2(points[i]), v2(points[(i+1)%n]), col)
	}
}

// fillTriangle normalizes winding: raylib culls triangles wound
// clockwise on screen.
func fillTriangle(a, b, c rl.Vector2, col rl.Color) {
	if (b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X) > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(a, b, c, col)
}
