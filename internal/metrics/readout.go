package metrics

import (
	"math"

	"github.com/san-kum/spinnet/internal/spin"
)

// MinScale is the floor applied to the effective-scale multiplier wherever
// it is divided by.
const MinScale = 0.01

// Params carries the aggregate simulation state the readout depends on.
type Params struct {
	Density  int
	Scale    float64
	Frame    int
	Units    spin.Units
	Extended bool
}

// Readout is the set of derived scalars shown next to the network.
type Readout struct {
	TotalArea    float64 `json:"total_area"`
	Volume       float64 `json:"volume"`
	Energy       float64 `json:"energy"`
	Discreteness float64 `json:"discreteness"`
	Curvature    float64 `json:"curvature"`
	Emergence    float64 `json:"emergence"`

	Units    spin.Units `json:"-"`
	Extended bool       `json:"-"`
}

// Refresh derives the readout from the current edge set. It never mutates
// the edges and never yields NaN or Inf for empty or degenerate input.
// Physical units apply to the extended variant only; energy is always in
// natural units.
func Refresh(edges []*spin.Edge, p Params) Readout {
	natural := 0.0
	for _, e := range edges {
		natural += e.Area(spin.Natural)
	}

	units := p.Units
	if !p.Extended {
		units = spin.Natural
	}

	area := natural
	volume := math.Pow(natural, 1.5) * 0.1
	if units == spin.Physical {
		area *= spin.PlanckLength * spin.PlanckLength
		volume *= spin.PlanckLength * spin.PlanckLength * spin.PlanckLength
	}

	scale := p.Scale
	if !(scale >= MinScale) {
		scale = MinScale
	}

	r := Readout{
		TotalArea: area,
		Volume:    volume,
		Energy:    natural * (1 + math.Sin(float64(p.Frame)*0.05)*0.2),
		Units:     units,
		Extended:  p.Extended,
	}

	if p.Density > 0 {
		r.Discreteness = 1 / float64(p.Density) * scale * 100
	}

	denom := area
	if denom == 0 {
		denom = 1
	}
	r.Curvature = 1 / math.Sqrt(denom)

	r.Emergence = math.Min(100, float64(p.Density)/100*(1/scale)*50)

	return r
}
