package viz

import (
	"math"
	"strings"

	"github.com/san-kum/seadrift/internal/geo"
)

// Braille patterns: 2x4 dots per cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel grid projected over a geographic domain.
// North is up: latitude grows toward the top row.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	dom geo.Domain
}

func NewCanvas(w, h int, dom geo.Domain) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		dom:    dom,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set lights a pixel at (x, y) in sub-pixel coordinates. The canvas
// resolves (Width*2) x (Height*4) sub-pixels.
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

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// Project maps a geographic position to sub-pixel coordinates. Domain
// corners land on canvas corners.
func (c *Canvas) Project(p geo.Point) (x, y int) {
	lx := (p.Lon - c.dom.LonMin) / (c.dom.LonMax - c.dom.LonMin)
	ly := (p.Lat - c.dom.LatMin) / (c.dom.LatMax - c.dom.LatMin)
	x = int(math.Round(lx * float64(c.Width*2-1)))
	y = int(math.Round((1 - ly) * float64(c.Height*4-1)))
	return x, y
}

// Plot lights the pixel under a position. Positions outside the domain
// are dropped.
func (c *Canvas) Plot(p geo.Point) {
	if !c.dom.Contains(p.Lat, p.Lon) {
		return
	}
	c.Set(c.Project(p))
}

// PlotTrack draws the polyline through the given positions.
func (c *Canvas) PlotTrack(track []geo.Point) {
	if len(track) == 1 {
		c.Plot(track[0])
		return
	}
	for i := 1; i < len(track); i++ {
		x0, y0 := c.Project(track[i-1])
		x1, y1 := c.Project(track[i])
		c.DrawLine(x0, y0, x1, y1)
	}
}

// Cross marks a position with a small cross, used for release points.
func (c *Canvas) Cross(p geo.Point) {
	x, y := c.Project(p)
	for d := -2; d <= 2; d++ {
		c.Set(x+d, y)
		c.Set(x, y+d)
	}
}

// DrawLine draws a line using Bresenham's algorithm
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
