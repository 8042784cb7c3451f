package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/san-kum/spinnet/internal/metrics"
	"github.com/san-kum/spinnet/internal/spin"
	"gonum.org/v1/gonum/spatial/r2"
)

// State is the single owned simulation aggregate: the live graph, the
// clock and the surface bounds. It is not safe for concurrent use; one
// caller drives it at a time.
type State struct {
	Graph  *spin.Graph
	Clock  *Clock
	Bounds spin.Bounds

	rng *rand.Rand
	log *slog.Logger
}

// NewState builds the initial graph for clock.Density nodes.
func NewState(clock *Clock, bounds spin.Bounds, seed int64, logger *slog.Logger) (*State, error) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidBounds, bounds.Width, bounds.Height)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &State{
		Clock:  clock,
		Bounds: bounds,
		rng:    rand.New(rand.NewSource(seed)),
		log:    logger,
	}
	s.Rebuild()
	return s, nil
}

// Rand exposes the state's random source for cosmetic draws that must stay
// reproducible with the seed.
func (s *State) Rand() *rand.Rand { return s.rng }

// Rebuild discards the graph, builds a fresh one and resets the frame counter.
func (s *State) Rebuild() {
	s.Graph = spin.Build(s.Clock.Density, s.Bounds, s.rng)
	s.Clock.Frame = 0
	s.log.Debug("network built",
		"nodes", len(s.Graph.Nodes),
		"edges", len(s.Graph.Edges),
		"bounds", fmt.Sprintf("%gx%g", s.Bounds.Width, s.Bounds.Height))
}

// Resize replaces the bounds and rebuilds the graph inside them.
func (s *State) Resize(b spin.Bounds) error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidBounds, b.Width, b.Height)
	}
	s.Bounds = b
	s.Rebuild()
	return nil
}

// SetDensity changes the node count and rebuilds.
func (s *State) SetDensity(n int) {
	s.Clock.Density = n
	s.Rebuild()
}

// Tick advances one simulation step without drawing.
func (s *State) Tick() { s.advance(nil, nil) }

// advance increments the frame counter, then updates every edge and every
// node in that order, handing each entity to the draw callback right after
// its own update.
func (s *State) advance(drawEdge func(*spin.Edge), drawNode func(*spin.Node)) {
	c := s.Clock
	c.Frame++
	scale := c.EffectiveScale()
	t := float64(c.Frame)

	for _, e := range s.Graph.Edges {
		e.Update(c.Speed, scale, s.rng)
		if drawEdge != nil {
			drawEdge(e)
		}
	}
	for _, n := range s.Graph.Nodes {
		n.Update(s.Bounds, c.Speed, scale, t, s.rng)
		if drawNode != nil {
			drawNode(n)
		}
	}
}

// Pointer attracts nearby nodes toward p while the simulation runs.
func (s *State) Pointer(p r2.Vec) {
	if !s.Clock.Running {
		return
	}
	s.Graph.Attract(p)
}

// Click scatters nodes around p.
func (s *State) Click(p r2.Vec) {
	s.log.Debug("burst", "x", p.X, "y", p.Y)
	s.Graph.Burst(p)
}

// Readout derives the metrics for the current graph and clock.
func (s *State) Readout() metrics.Readout {
	return metrics.Refresh(s.Graph.Edges, s.Clock.params())
}
