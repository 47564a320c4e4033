package viz

import (
	"math"
	"strings"

	"github.com/skovran/physbox/internal/phys"
)

// Braille patterns pack 2x4 dots per cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates. The canvas
// spans (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle rasterizes a midpoint circle outline.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y, err := r, 0, 0
	for x >= y {
		c.Set(cx+x, cy+y)
		c.Set(cx+y, cy+x)
		c.Set(cx-y, cy+x)
		c.Set(cx-x, cy+y)
		c.Set(cx-x, cy-y)
		c.Set(cx-y, cy-x)
		c.Set(cx+y, cy-x)
		c.Set(cx+x, cy-y)
		if err <= 0 {
			y++
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

// FillCircle fills by horizontal scanlines.
func (c *Canvas) FillCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	for dy := -r; dy <= r; dy++ {
		half := int(math.Sqrt(float64(r*r - dy*dy)))
		for x := cx - half; x <= cx+half; x++ {
			c.Set(x, cy+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world coordinates onto the canvas sub-pixel grid and
// terminal cells back into the world, so the mouse works in both
// directions.
type Viewport struct {
	WorldW, WorldH float64
	Cols, Rows     int
}

func (v Viewport) Point(p phys.Vec2) (int, int) {
	sx := float64(v.Cols*2) / v.WorldW
	sy := float64(v.Rows*4) / v.WorldH
	return int(p.X * sx), int(p.Y * sy)
}

// Radius uses the tighter axis scale so balls stay recognizably round
// on the squashed grid.
func (v Viewport) Radius(r float64) int {
	sx := float64(v.Cols*2) / v.WorldW
	sy := float64(v.Rows*4) / v.WorldH
	s := math.Min(sx, sy)
	px := int(r * s)
	if px < 1 {
		px = 1
	}
	return px
}

// CellToWorld maps a terminal cell (mouse position) to the world
// point at the cell's center.
func (v Viewport) CellToWorld(col, row int) phys.Vec2 {
	return phys.Vec2{
		X: (float64(col) + 0.5) / float64(v.Cols) * v.WorldW,
		Y: (float64(row) + 0.5) / float64(v.Rows) * v.WorldH,
	}
}
