package viz

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
)

var ErrNoFrames = errors.New("no frames recorded")

const (
	cellW, cellH = 8, 16
	maxFrames    = 1800
)

// Recorder collects frames for an animated GIF.
type Recorder struct {
	frames []*image.Paletted
	delay  int
}

// NewRecorder returns a recorder whose frames last delay hundredths of a
// second each.
func NewRecorder(delay int) *Recorder {
	if delay < 1 {
		delay = 2
	}
	return &Recorder{delay: delay}
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Reset() { r.frames = r.frames[:0] }

func (r *Recorder) add(img *image.Paletted) {
	if len(r.frames) >= maxFrames {
		r.frames = r.frames[1:]
	}
	r.frames = append(r.frames, img)
}

// CaptureRaster quantizes a raster frame to the web palette with dithering.
func (r *Recorder) CaptureRaster(src image.Image) {
	b := src.Bounds()
	img := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(img, b, src, b.Min)
	r.add(img)
}

// CaptureCanvas rasterizes the braille canvas, one cellW x cellH block per
// character, each lit dot a block in its own colour.
func (r *Recorder) CaptureCanvas(c *Canvas) {
	imgW, imgH := c.Width*cellW, c.Height*cellH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), palette.Plan9)
	black := uint8(img.Palette.Index(color.Black))
	for i := range img.Pix {
		img.Pix[i] = black
	}

	dotW, dotH := cellW/2, cellH/4
	for y := range c.dots {
		for x := range c.dots[y] {
			d := c.dots[y][x]
			if d.i < LitThreshold {
				continue
			}
			k := clamp01(d.i)
			idx := uint8(img.Palette.Index(color.NRGBA{
				R: uint8(float64(d.c.R) * k),
				G: uint8(float64(d.c.G) * k),
				B: uint8(float64(d.c.B) * k),
				A: 255,
			}))
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, idx)
				}
			}
		}
	}
	r.add(img)
}

func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

// Save writes the recording to path.
func (r *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	defer f.Close()
	if err := r.Encode(f); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return f.Close()
}
