package viz

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"
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

const (
	// DotScale is the number of world units covered by one braille dot.
	DotScale = 5.0
	// LitThreshold is the intensity below which a dot renders blank.
	LitThreshold = 0.25
	blank        = 0x2800
)

type dot struct {
	i float64
	c color.NRGBA
}

type label struct {
	col, row int
	text     []rune
	c        color.NRGBA
	i        float64
}

// Canvas is a braille terminal surface. Every dot keeps an intensity and a
// colour so repeated fades leave trails behind moving shapes.
type Canvas struct {
	Width, Height int
	dots          [][]dot
	labels        []label
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the canvas to w by h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.dots = make([][]dot, h*4)
	for i := range c.dots {
		c.dots[i] = make([]dot, w*2)
	}
	c.labels = c.labels[:0]
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.Width*2) * DotScale, float64(c.Height*4) * DotScale
}

// Set lights a dot at (x, y) in sub-pixel coordinates at full intensity.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	c.plot(x, y, color.NRGBA{255, 255, 255, 255})
}

// Lit reports whether the dot at (x, y) is bright enough to render.
func (c *Canvas) Lit(x, y int) bool {
	if !c.inside(x, y) {
		return false
	}
	return c.dots[y][x].i >= LitThreshold
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && y < len(c.dots) && x < len(c.dots[y])
}

// plot composites col over the dot at (x, y).
func (c *Canvas) plot(x, y int, col color.NRGBA) {
	if !c.inside(x, y) || col.A == 0 {
		return
	}
	d := &c.dots[y][x]
	a := float64(col.A) / 255
	out := a + d.i*(1-a)
	mix := func(src, dst uint8) uint8 {
		return uint8(math.Round((float64(src)*a + float64(dst)*d.i*(1-a)) / out))
	}
	d.c = color.NRGBA{mix(col.R, d.c.R), mix(col.G, d.c.G), mix(col.B, d.c.B), 255}
	d.i = out
}

func (c *Canvas) Fade(alpha float64) {
	keep := 1 - clamp01(alpha)
	for y := range c.dots {
		for x := range c.dots[y] {
			d := &c.dots[y][x]
			d.i *= keep
			if d.i < 0.01 {
				d.i = 0
			}
		}
	}
	labels := c.labels[:0]
	for _, l := range c.labels {
		l.i *= keep
		if l.i >= LitThreshold {
			labels = append(labels, l)
		}
	}
	c.labels = labels
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for y := range c.dots {
		clear(c.dots[y])
	}
	c.labels = c.labels[:0]
}

func toDots(p r2.Vec) r2.Vec {
	return r2.Scale(1/DotScale, p)
}

func (c *Canvas) FillCircle(center r2.Vec, r float64, g Gradient) {
	p := toDots(center)
	dr := r / DotScale
	if dr < 0.75 {
		c.plot(int(p.X), int(p.Y), g.At(0))
		return
	}
	x0, x1 := int(math.Floor(p.X-dr)), int(math.Ceil(p.X+dr))
	y0, y1 := int(math.Floor(p.Y-dr)), int(math.Ceil(p.Y+dr))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-p.X, float64(y)+0.5-p.Y)
			if d <= dr {
				c.plot(x, y, g.At(d/dr))
			}
		}
	}
}

// StrokeLine draws a line using Bresenham's algorithm, thickened to the
// stroke width.
func (c *Canvas) StrokeLine(a, b r2.Vec, width float64, g Gradient) {
	pa, pb := toDots(a), toDots(b)
	x0, y0 := int(pa.X), int(pa.Y)
	x1, y1 := int(pb.X), int(pb.Y)

	th := int(math.Round(width / DotScale))
	if th < 1 {
		th = 1
	}

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
	steps := max(dx, dy)

	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		col := g.At(t)
		c.plot(x0, y0, col)
		for k := 1; k < th; k++ {
			if dx > dy {
				c.plot(x0, y0+k, col)
			} else {
				c.plot(x0+k, y0, col)
			}
		}
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

// Text overlays s on the cells around p. Labels fade with the dots.
func (c *Canvas) Text(p r2.Vec, s string, col color.NRGBA) {
	d := toDots(p)
	text := []rune(s)
	cx, row := int(d.X)/2-len(text)/2, int(d.Y)/4
	if row < 0 || row >= c.Height || cx >= c.Width {
		return
	}
	c.labels = append(c.labels, label{
		col:  cx,
		row:  row,
		text: text,
		c:    col,
		i:    float64(col.A) / 255,
	})
}

type cell struct {
	r rune
	c color.NRGBA
	i float64
}

func (c *Canvas) cells() [][]cell {
	out := make([][]cell, c.Height)
	for row := range out {
		out[row] = make([]cell, c.Width)
		for col := range out[row] {
			cl := cell{r: blank}
			for sy := 0; sy < 4; sy++ {
				for sx := 0; sx < 2; sx++ {
					d := c.dots[row*4+sy][col*2+sx]
					if d.i < LitThreshold {
						continue
					}
					cl.r |= rune(pixelMap[sy][sx])
					if d.i > cl.i {
						cl.i, cl.c = d.i, d.c
					}
				}
			}
			out[row][col] = cl
		}
	}
	for _, l := range c.labels {
		for k, r := range l.text {
			col := l.col + k
			if col < 0 || col >= c.Width {
				continue
			}
			out[l.row][col] = cell{r: r, c: l.c, i: l.i}
		}
	}
	return out
}

// String renders the canvas with each cell coloured by its brightest dot,
// dimmed by that dot's intensity.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells() {
		var run strings.Builder
		var runColor string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			hex := ""
			if cl.r != blank {
				hex = dim(cl.c, cl.i)
			}
			if hex != runColor {
				flush()
				runColor = hex
			}
			run.WriteRune(cl.r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

// Plain renders the canvas without colour.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.cells() {
		for _, cl := range row {
			b.WriteRune(cl.r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func dim(col color.NRGBA, i float64) string {
	i = clamp01(i)
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(float64(col.R)*i), uint8(float64(col.G)*i), uint8(float64(col.B)*i))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
