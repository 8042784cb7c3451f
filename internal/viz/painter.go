package viz

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/san-kum/spinnet/internal/sim"
	"github.com/san-kum/spinnet/internal/spin"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	labelChance   = 0.3
	labelMaxLen   = 200.0
	labelOffset   = 5.0
	glowWidth     = 3.0
	glowAlpha     = 0.25
	nodeGlowRatio = 3.0
)

var (
	labelColor = color.NRGBA{0x00, 0xff, 0xaa, 0xff}
	coreColor  = color.NRGBA{0x00, 0xff, 0xff, 0xff}
)

// EdgeHue maps a spin to a hue in degrees, from cyan at j=0 to violet at j=2.5.
func EdgeHue(j float64) float64 { return (j/2.5)*120 + 180 }

// intensity dims the extended display as the effective scale drops below 1.
func intensity(c *sim.Clock) float64 {
	if c.Variant != sim.Extended {
		return 1
	}
	return math.Min(1, c.EffectiveScale())
}

func compose(s Surface, alpha float64) {
	if alpha >= 1 {
		s.Clear()
		return
	}
	s.Fade(alpha)
}

// Painter draws the network itself: glowing gradient edges and nodes.
type Painter struct {
	s   Surface
	rng *rand.Rand
	// Glow adds a wide faint stroke under each edge. Only worth it on
	// surfaces fine enough to show it.
	Glow bool
}

func NewPainter(s Surface, seed int64) *Painter {
	return &Painter{s: s, rng: rand.New(rand.NewSource(seed))}
}

func (p *Painter) Surface() Surface { return p.s }

func (p *Painter) Compose(alpha float64, c *sim.Clock) { compose(p.s, alpha) }

func (p *Painter) DrawEdge(e *spin.Edge, c *sim.Clock) {
	hue := EdgeHue(e.Spin)
	brightness := math.Abs(math.Sin(e.Phase))*0.5 + 0.5
	alpha := brightness * 0.8 * intensity(c)
	width := e.Spin * 2

	if p.Glow {
		p.s.StrokeLine(e.A.Pos, e.B.Pos, width*glowWidth, Solid(HSLA(hue, 100, 60, alpha*glowAlpha)))
	}
	p.s.StrokeLine(e.A.Pos, e.B.Pos, width, Gradient{
		{0, HSLA(hue, 100, 50, alpha)},
		{0.5, HSLA(hue, 100, 70, alpha)},
		{1, HSLA(hue, 100, 50, alpha)},
	})

	if e.Length() < labelMaxLen && p.rng.Float64() < labelChance {
		mid := r2.Scale(0.5, r2.Add(e.A.Pos, e.B.Pos))
		mid.Y -= labelOffset
		p.s.Text(mid, fmt.Sprintf("j=%v", e.Spin), labelColor)
	}
}

func (p *Painter) DrawNode(n *spin.Node, c *sim.Clock) {
	q := math.Min(1, n.Quantum) * intensity(c)
	p.s.FillCircle(n.Pos, n.Radius*nodeGlowRatio, Gradient{
		{0, RGBA(0, 212, 255, q)},
		{0.5, RGBA(0, 150, 255, q/2)},
		{1, RGBA(0, 100, 255, 0)},
	})
	p.s.FillCircle(n.Pos, n.Radius, Solid(coreColor))
}
