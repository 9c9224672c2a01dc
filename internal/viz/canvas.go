package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
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
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set marks a dot at (x, y) in sub-pixel coordinates. The canvas size
// in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
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

// PlotXY draws a connected x-y trace scaled to fill the canvas, with
// dotted axes through the origin when it lies inside the data range.
// Used for hysteresis loops, where both coordinates carry signal and a
// plain value-per-column chart cannot represent the curve.
func (c *Canvas) PlotXY(xs, ys []float64) {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return
	}

	xmin, xmax := minMax(xs)
	ymin, ymax := minMax(ys)
	if xmax == xmin {
		xmax = xmin + 1
	}
	if ymax == ymin {
		ymax = ymin + 1
	}

	pw := float64(c.Width*2 - 1)
	ph := float64(c.Height*4 - 1)

	toPixel := func(x, y float64) (int, int) {
		px := int(math.Round((x - xmin) / (xmax - xmin) * pw))
		py := int(math.Round((ymax - y) / (ymax - ymin) * ph))
		return px, py
	}

	if xmin < 0 && xmax > 0 {
		axisX, _ := toPixel(0, ymin)
		for py := 0; py < c.Height*4; py += 3 {
			c.Set(axisX, py)
		}
	}
	if ymin < 0 && ymax > 0 {
		_, axisY := toPixel(xmin, 0)
		for px := 0; px < c.Width*2; px += 3 {
			c.Set(px, axisY)
		}
	}

	prevX, prevY := toPixel(xs[0], ys[0])
	c.Set(prevX, prevY)
	for i := 1; i < n; i++ {
		px, py := toPixel(xs[i], ys[i])
		c.DrawLine(prevX, prevY, px, py)
		prevX, prevY = px, py
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func minMax(vals []float64) (float64, float64) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
