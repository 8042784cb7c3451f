package viz

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Surface is a drawable display in world coordinates.
type Surface interface {
	Size() (w, h float64)
	// Fade covers the surface with black at the given opacity.
	Fade(alpha float64)
	Clear()
	// FillCircle paints a disc whose colour runs through g from the centre
	// (offset 0) to the rim (offset 1).
	FillCircle(c r2.Vec, r float64, g Gradient)
	// StrokeLine paints a segment whose colour runs through g from a to b.
	StrokeLine(a, b r2.Vec, width float64, g Gradient)
	// Text draws s centred horizontally on p with its baseline at p.Y.
	Text(p r2.Vec, s string, c color.NRGBA)
}

// Stop is one colour stop of a gradient, at an offset in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a list of stops in increasing offset order.
type Gradient []Stop

func Solid(c color.NRGBA) Gradient {
	return Gradient{{0, c}, {1, c}}
}

// At interpolates the gradient linearly at offset t.
func (g Gradient) At(t float64) color.NRGBA {
	switch {
	case len(g) == 0:
		return color.NRGBA{}
	case t <= g[0].Offset:
		return g[0].Color
	}
	for i := 1; i < len(g); i++ {
		if t <= g[i].Offset {
			a, b := g[i-1], g[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return lerpColor(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return g[len(g)-1].Color
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// HSLA converts hue in degrees, saturation and lightness in percent and
// alpha in [0, 1] to a colour.
func HSLA(h, s, l, a float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s / 100)
	l = clamp01(l / 100)

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.NRGBA{
		R: channel(r + m),
		G: channel(g + m),
		B: channel(b + m),
		A: channel(a),
	}
}

// RGBA builds a colour from 8-bit channels and a fractional alpha.
func RGBA(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{r, g, b, channel(a)}
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
