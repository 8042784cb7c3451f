package spin

import "math"

const (
	Immirzi      = 0.2375
	PlanckLength = 1.616e-35 // metres

	TwoPi = 2 * math.Pi

	// Margin is the distance nodes keep from every edge of the surface.
	Margin = 20.0

	NodeRadius  = 5.0
	Restitution = 0.9
	Friction    = 0.99
	Jitter      = 0.05 // full width of the per-step velocity perturbation
	InitialVel  = 0.5  // full width of the initial velocity distribution

	PhaseRate     = 0.02
	FlipChance    = 0.005
	LinkDistance  = 200.0
	RandomLink    = 0.15
	EdgeCapFactor = 2
)

// Units selects whether areas and volumes carry Planck-length factors.
type Units int

const (
	Natural Units = iota
	Physical
)

func (u Units) String() string {
	if u == Physical {
		return "physical"
	}
	return "natural"
}

// ParseUnits maps "natural" or "physical" to a Units value.
func ParseUnits(s string) (Units, bool) {
	switch s {
	case "", "natural":
		return Natural, true
	case "physical":
		return Physical, true
	}
	return Natural, false
}

// Bounds is the drawable extent in surface pixels.
type Bounds struct {
	Width, Height float64
}
