package sim

import (
	"fmt"

	"github.com/san-kum/spinnet/internal/spin"
)

// Variant selects the feature set of the simulation.
type Variant int

const (
	Baseline Variant = iota
	Extended
)

func (v Variant) String() string {
	if v == Extended {
		return "extended"
	}
	return "baseline"
}

func ParseVariant(s string) (Variant, error) {
	switch s {
	case "", "baseline":
		return Baseline, nil
	case "extended":
		return Extended, nil
	}
	return Baseline, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Mode selects which display surface is live in the extended variant.
type Mode int

const (
	Primary Mode = iota
	Derived
)

func (m Mode) String() string {
	if m == Derived {
		return "derived"
	}
	return "primary"
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "primary":
		return Primary, nil
	case "derived":
		return Derived, nil
	}
	return Primary, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Renderer paints entities onto one display surface.
type Renderer interface {
	// Compose covers the previous frame with black at the given opacity.
	// An opacity of 1 clears the surface.
	Compose(alpha float64, c *Clock)
	DrawEdge(e *spin.Edge, c *Clock)
	DrawNode(n *spin.Node, c *Clock)
}
