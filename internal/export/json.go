package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/spinnet/internal/metrics"
	"github.com/san-kum/spinnet/internal/spin"
)

type NodeData struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Valency int     `json:"valency"`
}

type EdgeData struct {
	A     int     `json:"a"`
	B     int     `json:"b"`
	Spin  float64 `json:"spin"`
	Phase float64 `json:"phase"`
	Area  float64 `json:"area"`
}

type Snapshot struct {
	Frame   int             `json:"frame"`
	Units   string          `json:"units"`
	Nodes   []NodeData      `json:"nodes"`
	Edges   []EdgeData      `json:"edges"`
	Stats   spin.Stats      `json:"stats"`
	Readout metrics.Readout `json:"readout"`
}

// NewSnapshot captures the graph with edges referring to nodes by index.
func NewSnapshot(g *spin.Graph, frame int, r metrics.Readout) Snapshot {
	index := make(map[*spin.Node]int, len(g.Nodes))
	s := Snapshot{
		Frame:   frame,
		Units:   r.Units.String(),
		Nodes:   make([]NodeData, len(g.Nodes)),
		Edges:   make([]EdgeData, len(g.Edges)),
		Stats:   g.Stats(),
		Readout: r,
	}
	for i, n := range g.Nodes {
		index[n] = i
		s.Nodes[i] = NodeData{X: n.Pos.X, Y: n.Pos.Y, VX: n.Vel.X, VY: n.Vel.Y, Valency: n.Valency}
	}
	for i, e := range g.Edges {
		s.Edges[i] = EdgeData{
			A:     index[e.A],
			B:     index[e.B],
			Spin:  e.Spin,
			Phase: e.Phase,
			Area:  e.Area(r.Units),
		}
	}
	return s
}

// GraphToJSON writes an indented snapshot of the graph and readout.
func GraphToJSON(w io.Writer, g *spin.Graph, frame int, r metrics.Readout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSnapshot(g, frame, r))
}
