package spin

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Graph is the live node and edge set. It is replaced wholesale on rebuild.
type Graph struct {
	Nodes []*Node
	Edges []*Edge
}

// Build creates n nodes uniformly inside the margins of b, links every pair
// closer than LinkDistance, links further pairs at random while the edge count
// stays under the soft cap, then links each still isolated node to its
// successor in creation order.
func Build(n int, b Bounds, r Rand) *Graph {
	g := &Graph{}
	if n <= 0 {
		return g
	}

	g.Nodes = make([]*Node, 0, n)
	for i := 0; i < n; i++ {
		x := uniform(r, Margin, b.Width-Margin)
		y := uniform(r, Margin, b.Height-Margin)
		g.Nodes = append(g.Nodes, NewNode(x, y, r))
	}

	limit := n * EdgeCapFactor
	for i := 0; i < len(g.Nodes); i++ {
		for j := i + 1; j < len(g.Nodes); j++ {
			a, c := g.Nodes[i], g.Nodes[j]
			if Dist(a, c) < LinkDistance || (r.Float64() < RandomLink && len(g.Edges) < limit) {
				g.Edges = append(g.Edges, NewEdge(a, c, r))
			}
		}
	}

	// The cap is not re-checked here, so the final count may exceed it.
	for i, node := range g.Nodes {
		if node.Valency == 0 && i < len(g.Nodes)-1 {
			g.Edges = append(g.Edges, NewEdge(node, g.Nodes[i+1], r))
		}
	}

	return g
}

// Isolated returns the nodes with no incident edge.
func (g *Graph) Isolated() []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if n.Valency == 0 {
			out = append(out, n)
		}
	}
	return out
}

// Components counts connected components, isolated nodes included.
func (g *Graph) Components() int {
	if len(g.Nodes) == 0 {
		return 0
	}
	index := make(map[*Node]int64, len(g.Nodes))
	ug := simple.NewUndirectedGraph()
	for i, n := range g.Nodes {
		index[n] = int64(i)
		ug.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges {
		a, b := index[e.A], index[e.B]
		if a == b {
			continue
		}
		ug.SetEdge(ug.NewEdge(simple.Node(a), simple.Node(b)))
	}
	return len(topo.ConnectedComponents(ug))
}

// Stats summarises the graph shape.
type Stats struct {
	Nodes       int     `json:"nodes"`
	Edges       int     `json:"edges"`
	Components  int     `json:"components"`
	Isolated    int     `json:"isolated"`
	MeanValency float64 `json:"mean_valency"`
}

func (g *Graph) Stats() Stats {
	s := Stats{
		Nodes:      len(g.Nodes),
		Edges:      len(g.Edges),
		Components: g.Components(),
		Isolated:   len(g.Isolated()),
	}
	if s.Nodes > 0 {
		s.MeanValency = float64(2*s.Edges) / float64(s.Nodes)
	}
	return s
}
