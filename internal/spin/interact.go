package spin

import "gonum.org/v1/gonum/spatial/r2"

const (
	AttractRadius = 150.0
	AttractGain   = 0.05
	BurstRadius   = 100.0
	BurstGain     = 5.0
)

// Attract pulls nodes within AttractRadius toward p, harder when closer.
func (g *Graph) Attract(p r2.Vec) {
	for _, n := range g.Nodes {
		d := r2.Sub(p, n.Pos)
		dist := r2.Norm(d)
		if dist == 0 || dist >= AttractRadius {
			continue
		}
		force := (AttractRadius - dist) / AttractRadius * AttractGain
		n.Vel = r2.Add(n.Vel, r2.Scale(force/dist, d))
	}
}

// Burst pushes nodes within BurstRadius away from p.
func (g *Graph) Burst(p r2.Vec) {
	for _, n := range g.Nodes {
		d := r2.Sub(n.Pos, p)
		dist := r2.Norm(d)
		if dist == 0 || dist >= BurstRadius {
			continue
		}
		force := (BurstRadius - dist) / BurstRadius * BurstGain
		n.Vel = r2.Add(n.Vel, r2.Scale(force/dist, d))
	}
}
