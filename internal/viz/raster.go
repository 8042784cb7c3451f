package viz

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r2"
)

// Raster is a pixel surface with one world unit per pixel.
type Raster struct {
	img  *image.RGBA
	face font.Face
}

func NewRaster(w, h int) *Raster {
	r := &Raster{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		face: basicfont.Face7x13,
	}
	r.Clear()
	return r
}

func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() (float64, float64) {
	b := r.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
}

func (r *Raster) Fade(alpha float64) {
	keep := 1 - clamp01(alpha)
	pix := r.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = uint8(float64(pix[i]) * keep)
		pix[i+1] = uint8(float64(pix[i+1]) * keep)
		pix[i+2] = uint8(float64(pix[i+2]) * keep)
		pix[i+3] = 255
	}
}

// blend composites c over the pixel at (x, y).
func (r *Raster) blend(x, y int, c color.NRGBA) {
	if !(image.Point{x, y}.In(r.img.Bounds())) || c.A == 0 {
		return
	}
	i := r.img.PixOffset(x, y)
	a := float64(c.A) / 255
	p := r.img.Pix[i : i+4 : i+4]
	p[0] = uint8(float64(c.R)*a + float64(p[0])*(1-a))
	p[1] = uint8(float64(c.G)*a + float64(p[1])*(1-a))
	p[2] = uint8(float64(c.B)*a + float64(p[2])*(1-a))
	p[3] = 255
}

func (r *Raster) FillCircle(center r2.Vec, radius float64, g Gradient) {
	if radius <= 0 {
		return
	}
	x0, x1 := int(math.Floor(center.X-radius)), int(math.Ceil(center.X+radius))
	y0, y1 := int(math.Floor(center.Y-radius)), int(math.Ceil(center.Y+radius))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-center.X, float64(y)+0.5-center.Y)
			if d <= radius {
				r.blend(x, y, g.At(d/radius))
			}
		}
	}
}

func (r *Raster) StrokeLine(a, b r2.Vec, width float64, g Gradient) {
	half := math.Max(width, 1) / 2
	seg := r2.Sub(b, a)
	lenSq := r2.Dot(seg, seg)

	x0 := int(math.Floor(math.Min(a.X, b.X) - half))
	x1 := int(math.Ceil(math.Max(a.X, b.X) + half))
	y0 := int(math.Floor(math.Min(a.Y, b.Y) - half))
	y1 := int(math.Ceil(math.Max(a.Y, b.Y) + half))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := r2.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			t := 0.0
			if lenSq > 0 {
				t = math.Max(0, math.Min(1, r2.Dot(r2.Sub(p, a), seg)/lenSq))
			}
			closest := r2.Add(a, r2.Scale(t, seg))
			if r2.Norm(r2.Sub(p, closest)) <= half {
				r.blend(x, y, g.At(t))
			}
		}
	}
}

func (r *Raster) Text(p r2.Vec, s string, c color.NRGBA) {
	width := font.MeasureString(r.face, s).Ceil()
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(int(p.X) - width/2), Y: fixed.I(int(p.Y))},
	}
	d.DrawString(s)
}

func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}
