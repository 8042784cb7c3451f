package spin

import "math"

// Edge links two nodes with a spin label. Nodes are shared with the graph.
type Edge struct {
	A, B  *Node
	Spin  float64
	Phase float64
}

// NewEdge links a and b and bumps both valencies.
func NewEdge(a, b *Node, r Rand) *Edge {
	a.Valency++
	b.Valency++
	return &Edge{
		A:     a,
		B:     b,
		Spin:  sampleSpin(r),
		Phase: uniform(r, 0, TwoPi),
	}
}

// Update advances the phase and occasionally resamples the spin.
func (e *Edge) Update(speed, scale float64, r Rand) {
	e.Phase = math.Mod(e.Phase+PhaseRate*speed*scale, TwoPi)
	if e.Phase < 0 {
		e.Phase += TwoPi
	}
	if r.Float64() < FlipChance*scale {
		e.Spin = sampleSpin(r)
	}
}

// Area is the area quantum carried by the edge: 8πγ√(j(j+1)),
// in Planck areas when units are physical.
func (e *Edge) Area(u Units) float64 {
	a := AreaOf(e.Spin)
	if u == Physical {
		a *= PlanckLength * PlanckLength
	}
	return a
}

// AreaOf is the unitless area quantum for spin j.
func AreaOf(j float64) float64 {
	return 8 * math.Pi * Immirzi * math.Sqrt(j*(j+1))
}

func (e *Edge) Length() float64 { return Dist(e.A, e.B) }

// Touches reports whether n is an endpoint of e.
func (e *Edge) Touches(n *Node) bool { return e.A == n || e.B == n }
