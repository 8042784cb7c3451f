package viz

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/san-kum/spinnet/internal/sim"
	"github.com/san-kum/spinnet/internal/spin"
	"gonum.org/v1/gonum/spatial/r2"
)

func node(x, y float64) *spin.Node {
	return &spin.Node{Pos: r2.Vec{X: x, Y: y}, Radius: spin.NodeRadius, Quantum: 1}
}

func pixel(r *Raster, x, y int) color.RGBA {
	return r.Image().RGBAAt(x, y)
}

func TestPainterNodeCore(t *testing.T) {
	r := NewRaster(100, 100)
	p := NewPainter(r, 1)
	p.DrawNode(node(50, 50), sim.NewClock(sim.Baseline))

	if got := pixel(r, 50, 50); got != (color.RGBA{0, 255, 255, 255}) {
		t.Errorf("expected cyan core, got %v", got)
	}
	if got := pixel(r, 5, 5); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("expected black far from the node, got %v", got)
	}
	glow := pixel(r, 50, 62)
	if glow.B == 0 || glow.R != 0 {
		t.Errorf("expected blue glow inside 3r, got %v", glow)
	}
}

func TestPainterEdgeHueAndIntensity(t *testing.T) {
	edge := &spin.Edge{A: node(10, 50), B: node(90, 50), Spin: 2.5, Phase: math.Pi / 2}

	base := NewRaster(100, 100)
	NewPainter(base, 1).DrawEdge(edge, sim.NewClock(sim.Baseline))
	bright := pixel(base, 30, 50)
	if bright.R < 100 || bright.B < 100 || bright.G >= bright.R {
		t.Errorf("expected a magenta stroke for j=5/2, got %v", bright)
	}

	clock := sim.NewClock(sim.Extended)
	clock.SetScale(0.5)
	ext := NewRaster(100, 100)
	NewPainter(ext, 1).DrawEdge(edge, clock)
	dim := pixel(ext, 30, 50)
	if dim.R >= bright.R {
		t.Errorf("expected dimmer stroke below unit scale: %v vs %v", dim, bright)
	}
}

func TestEdgeHue(t *testing.T) {
	if EdgeHue(0) != 180 || EdgeHue(2.5) != 300 {
		t.Errorf("unexpected hue range %v..%v", EdgeHue(0), EdgeHue(2.5))
	}
}

func TestComposeClearsAtFullAlpha(t *testing.T) {
	r := NewRaster(20, 20)
	p := NewPainter(r, 1)
	c := sim.NewClock(sim.Baseline)
	p.DrawNode(node(10, 10), c)

	p.Compose(sim.TrailAlpha, c)
	if got := pixel(r, 10, 10); got.G != 204 {
		t.Errorf("expected trail at 80%%, got %v", got)
	}
	p.Compose(1, c)
	if got := pixel(r, 10, 10); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("expected cleared pixel, got %v", got)
	}
}

func TestDerivedPainterDeterministic(t *testing.T) {
	edge := &spin.Edge{A: node(40, 100), B: node(160, 100), Spin: 1, Phase: 0}
	render := func() []byte {
		r := NewRaster(200, 200)
		d := NewDerivedPainter(r, 9)
		c := sim.NewClock(sim.Extended)
		c.Frame = 30
		d.Compose(1, c)
		d.DrawEdge(edge, c)
		d.DrawNode(edge.A, c)
		return r.Image().Pix
	}
	a, b := render(), render()
	if !bytes.Equal(a, b) {
		t.Error("same seed and frame should give the same image")
	}

	r := NewRaster(200, 200)
	NewDerivedPainter(r, 9).DrawEdge(edge, sim.NewClock(sim.Extended))
	if got := pixel(r, 100, 100); got.R == 0 && got.G == 0 && got.B == 0 {
		t.Error("expected the area disc at the edge midpoint")
	}
}

func TestQuantumRadius(t *testing.T) {
	e := &spin.Edge{Spin: 1}
	want := math.Sqrt(spin.AreaOf(1)) * 2
	if got := QuantumRadius(e); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRasterEncodePNG(t *testing.T) {
	r := NewRaster(32, 16)
	r.Text(r2.Vec{X: 16, Y: 12}, "j=1", color.NRGBA{0, 255, 170, 255})

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 16 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}

	lit := false
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			if pixel(r, x, y).G > 0 {
				lit = true
			}
		}
	}
	if !lit {
		t.Error("expected label pixels")
	}
}
