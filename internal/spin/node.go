package spin

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Node is a vertex of the spin network.
type Node struct {
	Pos     r2.Vec
	Vel     r2.Vec
	Radius  float64
	Quantum float64 // oscillation amplitude, cosmetic
	Valency int
}

// NewNode places a node at (x, y) with a small random drift.
func NewNode(x, y float64, r Rand) *Node {
	return &Node{
		Pos: r2.Vec{X: x, Y: y},
		Vel: r2.Vec{
			X: uniform(r, -InitialVel/2, InitialVel/2),
			Y: uniform(r, -InitialVel/2, InitialVel/2),
		},
		Radius:  NodeRadius,
		Quantum: uniform(r, 0.5, 2.5),
	}
}

// Update advances the node by one tick of bounded random walk.
// t is the global frame time.
func (n *Node) Update(b Bounds, speed, scale, t float64, r Rand) {
	n.Pos = r2.Add(n.Pos, r2.Scale(speed*scale, n.Vel))

	n.Pos.X, n.Vel.X = bounce(n.Pos.X, n.Vel.X, b.Width)
	n.Pos.Y, n.Vel.Y = bounce(n.Pos.Y, n.Vel.Y, b.Height)

	n.Vel.X += uniform(r, -Jitter/2, Jitter/2) * scale
	n.Vel.Y += uniform(r, -Jitter/2, Jitter/2) * scale

	n.Vel = r2.Scale(Friction, n.Vel)

	n.Quantum = math.Abs(math.Sin(t*0.02*scale+n.Pos.X*0.01))*2 + 0.5
}

// bounce reflects v inelastically when p leaves [Margin, extent-Margin]
// and clamps p back into range.
func bounce(p, v, extent float64) (float64, float64) {
	lo, hi := Margin, extent-Margin
	if p < lo || p > hi {
		v *= -Restitution
		p = math.Max(lo, math.Min(p, hi))
	}
	return p, v
}

// Dist returns the Euclidean distance between two nodes.
func Dist(a, b *Node) float64 {
	return r2.Norm(r2.Sub(b.Pos, a.Pos))
}
