package spin

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

// fixedRand returns the same draw every time.
type fixedRand struct {
	f float64
	i int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return r.i % n }

func TestSpinSourceClosure(t *testing.T) {
	src := NewSpinSource(rand.New(rand.NewSource(1)))
	allowed := map[float64]bool{0.5: true, 1: true, 1.5: true, 2: true, 2.5: true}
	seen := make(map[float64]int)

	for i := 0; i < 5000; i++ {
		w := src.Sample()
		if !allowed[w] {
			t.Fatalf("sample %v outside allowed set", w)
		}
		seen[w]++
	}

	if len(seen) != len(Spins) {
		t.Errorf("expected all %d spins to appear, saw %d", len(Spins), len(seen))
	}
}

func TestAreaMonotonic(t *testing.T) {
	prev := -1.0
	for _, j := range Spins {
		a := AreaOf(j)
		if a <= prev {
			t.Errorf("area(%v)=%f not greater than previous %f", j, a, prev)
		}
		prev = a
	}
}

func TestAreaUnitSpin(t *testing.T) {
	e := &Edge{Spin: 1}
	got := e.Area(Natural)
	want := 8 * math.Pi * 0.2375 * math.Sqrt2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, got)
	}
	if math.Abs(got-8.439) > 5e-3 {
		t.Errorf("expected ~8.439, got %f", got)
	}

	phys := e.Area(Physical)
	if math.Abs(phys/(PlanckLength*PlanckLength)-got) > 1e-9 {
		t.Errorf("physical area %e does not carry a Planck area factor", phys)
	}
}

func TestNewEdgeValency(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	a, b := NewNode(50, 50, r), NewNode(60, 60, r)
	e := NewEdge(a, b, r)

	if a.Valency != 1 || b.Valency != 1 {
		t.Errorf("expected valency 1/1, got %d/%d", a.Valency, b.Valency)
	}
	if e.Phase < 0 || e.Phase >= TwoPi {
		t.Errorf("phase %f outside [0, 2π)", e.Phase)
	}
	if !e.Touches(a) || !e.Touches(b) {
		t.Error("edge should touch both endpoints")
	}
}

func TestEdgeUpdatePhase(t *testing.T) {
	e := &Edge{Spin: 1.5, Phase: 1}
	e.Update(2, 1, fixedRand{f: 0.9})

	if math.Abs(e.Phase-1.04) > 1e-12 {
		t.Errorf("expected phase 1.04, got %f", e.Phase)
	}
	if e.Spin != 1.5 {
		t.Errorf("spin should not flip when draw is above chance, got %v", e.Spin)
	}

	e.Phase = TwoPi - 0.01
	e.Update(1, 1, fixedRand{f: 0.9})
	if e.Phase < 0 || e.Phase >= TwoPi {
		t.Errorf("phase %f not wrapped", e.Phase)
	}
}

func TestEdgeUpdateFlip(t *testing.T) {
	e := &Edge{Spin: 0.5}
	e.Update(1, 1, fixedRand{f: 0.001, i: 4})
	if e.Spin != 2.5 {
		t.Errorf("expected resample to 2.5, got %v", e.Spin)
	}
}

func TestNodeNew(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		n := NewNode(100, 100, r)
		if math.Abs(n.Vel.X) > 0.25 || math.Abs(n.Vel.Y) > 0.25 {
			t.Fatalf("initial velocity %v out of range", n.Vel)
		}
		if n.Quantum < 0.5 || n.Quantum > 2.5 {
			t.Fatalf("initial quantum %f out of range", n.Quantum)
		}
		if n.Radius != NodeRadius {
			t.Fatalf("expected radius %f, got %f", NodeRadius, n.Radius)
		}
	}
}

func TestNodeStaysInBounds(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
		speed  float64
		scale  float64
	}{
		{"default", Bounds{800, 600}, 1, 1},
		{"fast", Bounds{400, 300}, 3, 2},
		{"tight", Bounds{40, 40}, 2, 1},
		{"slow", Bounds{200, 500}, 0.1, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rand.New(rand.NewSource(42))
			g := Build(12, tt.bounds, r)
			for tick := 0; tick < 3000; tick++ {
				if tick%250 == 0 {
					g.Burst(g.Nodes[0].Pos)
				}
				for _, n := range g.Nodes {
					n.Update(tt.bounds, tt.speed, tt.scale, float64(tick), r)
					if n.Pos.X < Margin || n.Pos.X > tt.bounds.Width-Margin ||
						n.Pos.Y < Margin || n.Pos.Y > tt.bounds.Height-Margin {
						t.Fatalf("tick %d: node escaped to %v", tick, n.Pos)
					}
				}
			}
		})
	}
}

func TestNodeBounceAndDamping(t *testing.T) {
	n := &Node{Pos: r2.Vec{X: 379, Y: 200}, Vel: r2.Vec{X: 5, Y: 0}}
	n.Update(Bounds{400, 400}, 1, 1, 0, fixedRand{f: 0.5})

	if n.Pos.X != 380 {
		t.Errorf("expected clamp to 380, got %f", n.Pos.X)
	}
	want := -5 * Restitution * Friction
	if math.Abs(n.Vel.X-want) > 1e-12 {
		t.Errorf("expected vx %f, got %f", want, n.Vel.X)
	}
	if n.Vel.Y != 0 {
		t.Errorf("expected vy to stay 0 with a centred perturbation, got %f", n.Vel.Y)
	}
}

func TestNodeQuantum(t *testing.T) {
	n := &Node{Pos: r2.Vec{X: 100, Y: 100}}
	n.Update(Bounds{400, 400}, 0, 1, 50, fixedRand{f: 0.5})
	want := math.Abs(math.Sin(50*0.02+100*0.01))*2 + 0.5
	if math.Abs(n.Quantum-want) > 1e-12 {
		t.Errorf("expected quantum %f, got %f", want, n.Quantum)
	}
}

func TestBuildEmptyAndSingle(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	b := Bounds{400, 400}

	g := Build(0, b, r)
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("expected empty graph, got %d nodes %d edges", len(g.Nodes), len(g.Edges))
	}

	g = Build(1, b, r)
	if len(g.Nodes) != 1 || len(g.Edges) != 0 {
		t.Errorf("expected 1 node 0 edges, got %d nodes %d edges", len(g.Nodes), len(g.Edges))
	}
}

func TestBuildThreeCoincident(t *testing.T) {
	// every draw lands mid-range, so all three nodes coincide and link pairwise
	g := Build(3, Bounds{400, 400}, fixedRand{f: 0.5})

	if len(g.Edges) < 2 {
		t.Errorf("expected at least 2 edges, got %d", len(g.Edges))
	}
	for i, n := range g.Nodes {
		if n.Valency < 1 {
			t.Errorf("node %d has valency %d", i, n.Valency)
		}
		if n.Pos.X != 200 || n.Pos.Y != 200 {
			t.Errorf("node %d at %v, expected centre", i, n.Pos)
		}
	}
}

func TestBuildPositionsInsideMargins(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	b := Bounds{640, 360}
	g := Build(40, b, r)
	for _, n := range g.Nodes {
		if n.Pos.X < Margin || n.Pos.X > b.Width-Margin || n.Pos.Y < Margin || n.Pos.Y > b.Height-Margin {
			t.Errorf("node placed at %v outside margins", n.Pos)
		}
	}
}

func TestAttractOnlyWithinRadius(t *testing.T) {
	near := &Node{Pos: r2.Vec{X: 100, Y: 100}}
	far := &Node{Pos: r2.Vec{X: 400, Y: 100}}
	same := &Node{Pos: r2.Vec{X: 150, Y: 100}}
	g := &Graph{Nodes: []*Node{near, far, same}}

	g.Attract(r2.Vec{X: 150, Y: 100})

	if near.Vel.X <= 0 {
		t.Errorf("near node should be pulled toward +x, got %v", near.Vel)
	}
	if far.Vel != (r2.Vec{}) {
		t.Errorf("far node should be untouched, got %v", far.Vel)
	}
	if same.Vel != (r2.Vec{}) {
		t.Errorf("coincident node should be skipped, got %v", same.Vel)
	}
}

func TestBurstPushesAway(t *testing.T) {
	n := &Node{Pos: r2.Vec{X: 100, Y: 150}}
	g := &Graph{Nodes: []*Node{n}}
	g.Burst(r2.Vec{X: 100, Y: 100})

	want := (BurstRadius - 50) / BurstRadius * BurstGain
	if math.Abs(n.Vel.Y-want) > 1e-12 || n.Vel.X != 0 {
		t.Errorf("expected velocity (0, %f), got %v", want, n.Vel)
	}
}

func TestStats(t *testing.T) {
	a := &Node{}
	b := &Node{}
	c := &Node{}
	g := &Graph{Nodes: []*Node{a, b, c}}
	g.Edges = append(g.Edges, NewEdge(a, b, fixedRand{f: 0.5}))

	s := g.Stats()
	if s.Nodes != 3 || s.Edges != 1 {
		t.Errorf("unexpected counts %+v", s)
	}
	if s.Components != 2 {
		t.Errorf("expected 2 components, got %d", s.Components)
	}
	if s.Isolated != 1 {
		t.Errorf("expected 1 isolated node, got %d", s.Isolated)
	}
	if math.Abs(s.MeanValency-2.0/3.0) > 1e-12 {
		t.Errorf("expected mean valency 2/3, got %f", s.MeanValency)
	}

	if (&Graph{}).Components() != 0 {
		t.Error("empty graph should have zero components")
	}
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		in   string
		want Units
		ok   bool
	}{
		{"", Natural, true},
		{"natural", Natural, true},
		{"physical", Physical, true},
		{"imperial", Natural, false},
	}
	for _, tt := range tests {
		got, ok := ParseUnits(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseUnits(%q) = %v, %v", tt.in, got, ok)
		}
	}
}
