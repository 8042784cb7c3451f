package viz

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/san-kum/spinnet/internal/sim"
	"github.com/san-kum/spinnet/internal/spin"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	foamSpacing   = 20.0
	foamFreq      = 0.01
	foamDrift     = 0.02
	foamThreshold = 0.3
	foamHue       = 260.0
)

// DerivedPainter draws what the network quantizes instead of the network:
// a disc of area per edge over a flickering background foam.
type DerivedPainter struct {
	s     Surface
	noise opensimplex.Noise
}

func NewDerivedPainter(s Surface, seed int64) *DerivedPainter {
	return &DerivedPainter{s: s, noise: opensimplex.New(seed)}
}

func (d *DerivedPainter) Surface() Surface { return d.s }

func (d *DerivedPainter) Compose(alpha float64, c *sim.Clock) {
	compose(d.s, alpha)
	d.foam(c)
}

// foam samples 3D noise over the surface with time as the third axis. Its
// amplitude follows the effective scale.
func (d *DerivedPainter) foam(c *sim.Clock) {
	w, h := d.s.Size()
	amp := math.Min(1, c.EffectiveScale())
	t := float64(c.Frame) * foamDrift
	dot := foamSpacing / 4

	for y := foamSpacing / 2; y < h; y += foamSpacing {
		for x := foamSpacing / 2; x < w; x += foamSpacing {
			v := d.noise.Eval3(x*foamFreq, y*foamFreq, t)
			if v <= foamThreshold {
				continue
			}
			a := (v - foamThreshold) / (1 - foamThreshold) * amp
			d.s.FillCircle(r2.Vec{X: x, Y: y}, dot, Solid(HSLA(foamHue, 60, 45, a)))
		}
	}
}

// QuantumRadius is the display radius of an edge's area quantum.
func QuantumRadius(e *spin.Edge) float64 {
	return math.Sqrt(e.Area(spin.Natural)) * 2
}

func (d *DerivedPainter) DrawEdge(e *spin.Edge, c *sim.Clock) {
	hue := EdgeHue(e.Spin)
	k := intensity(c)
	mid := r2.Scale(0.5, r2.Add(e.A.Pos, e.B.Pos))
	d.s.FillCircle(mid, QuantumRadius(e), Gradient{
		{0, HSLA(hue, 100, 65, 0.8*k)},
		{0.7, HSLA(hue, 100, 45, 0.4*k)},
		{1, HSLA(hue, 100, 30, 0)},
	})
}

func (d *DerivedPainter) DrawNode(n *spin.Node, c *sim.Clock) {
	d.s.FillCircle(n.Pos, n.Radius/2, Solid(RGBA(120, 170, 220, 0.5*intensity(c))))
}
