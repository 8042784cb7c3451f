package sim

import (
	"github.com/san-kum/spinnet/internal/metrics"
	"github.com/san-kum/spinnet/internal/spin"
)

const (
	DefaultSpeed   = 1.0
	DefaultDensity = 15
	DefaultScale   = 1.0
)

// Clock holds the parameters every tick reads. Setters perform no range
// checks; out-of-range values only produce degenerate motion.
type Clock struct {
	Variant Variant
	Running bool
	Speed   float64
	Frame   int
	Density int
	Scale   float64
	Mode    Mode
	Units   spin.Units
}

func NewClock(v Variant) *Clock {
	return &Clock{
		Variant: v,
		Speed:   DefaultSpeed,
		Density: DefaultDensity,
		Scale:   DefaultScale,
	}
}

func (c *Clock) Toggle() { c.Running = !c.Running }

func (c *Clock) SetSpeed(v float64) { c.Speed = v }

// SetScale sets the effective-scale multiplier, floored at a small positive
// value so nothing downstream divides by zero.
func (c *Clock) SetScale(v float64) {
	if !(v >= metrics.MinScale) {
		v = metrics.MinScale
	}
	c.Scale = v
}

// ToggleMode flips the live display. Only the extended variant has two.
func (c *Clock) ToggleMode() bool {
	if c.Variant != Extended {
		return false
	}
	if c.Mode == Primary {
		c.Mode = Derived
	} else {
		c.Mode = Primary
	}
	return true
}

// EffectiveScale is the multiplier applied to motion, phase and intensity.
func (c *Clock) EffectiveScale() float64 {
	if c.Variant != Extended {
		return 1
	}
	return c.Scale
}

func (c *Clock) params() metrics.Params {
	return metrics.Params{
		Density:  c.Density,
		Scale:    c.EffectiveScale(),
		Frame:    c.Frame,
		Units:    c.Units,
		Extended: c.Variant == Extended,
	}
}
