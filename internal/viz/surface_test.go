package viz

import (
	"image/color"
	"testing"
)

func TestHSLA(t *testing.T) {
	tests := []struct {
		h, s, l, a float64
		want       color.NRGBA
	}{
		{0, 100, 50, 1, color.NRGBA{255, 0, 0, 255}},
		{120, 100, 50, 1, color.NRGBA{0, 255, 0, 255}},
		{180, 100, 50, 0.5, color.NRGBA{0, 255, 255, 128}},
		{240, 100, 50, 1, color.NRGBA{0, 0, 255, 255}},
		{300, 0, 100, 1, color.NRGBA{255, 255, 255, 255}},
		{-60, 100, 50, 1, color.NRGBA{255, 0, 255, 255}},
	}
	for _, tt := range tests {
		if got := HSLA(tt.h, tt.s, tt.l, tt.a); got != tt.want {
			t.Errorf("HSLA(%v, %v, %v, %v) = %v, want %v", tt.h, tt.s, tt.l, tt.a, got, tt.want)
		}
	}
}

func TestGradientAt(t *testing.T) {
	g := Gradient{
		{0, color.NRGBA{0, 0, 0, 255}},
		{0.5, color.NRGBA{200, 100, 0, 255}},
		{1, color.NRGBA{0, 0, 0, 0}},
	}
	if got := g.At(0.25); got != (color.NRGBA{100, 50, 0, 255}) {
		t.Errorf("At(0.25) = %v", got)
	}
	if got := g.At(-1); got != g[0].Color {
		t.Errorf("At(-1) = %v, want first stop", got)
	}
	if got := g.At(2); got != g[2].Color {
		t.Errorf("At(2) = %v, want last stop", got)
	}
	if got := (Gradient{}).At(0.5); got != (color.NRGBA{}) {
		t.Errorf("empty gradient gave %v", got)
	}
}
