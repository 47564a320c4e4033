// Package export renders stored runs into standalone artifacts.
package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/skovran/physbox/internal/storage"
)

// Mirrors the window renderer's body palette.
var strokePalette = []string{
	"#e67864",
	"#78b4e6",
	"#f0c85a",
	"#8cdca0",
	"#c88cdc",
	"#ebebeb",
}

// TrajectorySVG draws every particle's stored path as one polyline,
// with a dot at its final position. Bounds fit the data with a 10%
// margin; stored positions are already screen-oriented, so y maps
// straight down without a flip.
func TrajectorySVG(records []storage.FrameRecord, width, height int) string {
	if len(records) == 0 {
		return ""
	}

	byParticle := make(map[int][]storage.FrameRecord)
	var ids []int
	minX, maxX := records[0].X, records[0].X
	minY, maxY := records[0].Y, records[0].Y
	for _, r := range records {
		if _, seen := byParticle[r.Particle]; !seen {
			ids = append(ids, r.Particle)
		}
		byParticle[r.Particle] = append(byParticle[r.Particle], r)
		minX = math.Min(minX, r.X)
		maxX = math.Max(maxX, r.X)
		minY = math.Min(minY, r.Y)
		maxY = math.Max(maxY, r.Y)
	}
	sort.Ints(ids)

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	sx := float64(width) / rangeX
	sy := float64(height) / rangeY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, id := range ids {
		pts := byParticle[id]
		color := strokePalette[i%len(strokePalette)]

		if len(pts) >= 2 {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
			for j, p := range pts {
				x := (p.X - minX) * sx
				y := (p.Y - minY) * sy
				if j == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}

		last := pts[len(pts)-1]
		r := math.Max(1.5, last.Radius*math.Min(sx, sy))
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, (last.X-minX)*sx, (last.Y-minY)*sy, r, color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
