package spin

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Build", func() {
	bounds := Bounds{Width: 800, Height: 600}

	DescribeTable("connectivity floor",
		func(n int) {
			for seed := int64(1); seed <= 40; seed++ {
				g := Build(n, bounds, rand.New(rand.NewSource(seed)))
				Expect(g.Nodes).To(HaveLen(n))

				for i, node := range g.Nodes[:n-1] {
					Expect(node.Valency).To(BeNumerically(">=", 1),
						"seed %d node %d isolated", seed, i)
				}
				Expect(len(g.Isolated())).To(BeNumerically("<=", 1))
			}
		},
		Entry("two nodes", 2),
		Entry("five nodes", 5),
		Entry("default density", 15),
		Entry("dense", 50),
	)

	It("keeps valency consistent with edge membership", func() {
		g := Build(25, bounds, rand.New(rand.NewSource(11)))

		total := 0
		for _, node := range g.Nodes {
			count := 0
			for _, e := range g.Edges {
				if e.Touches(node) {
					count++
				}
			}
			Expect(node.Valency).To(Equal(count))
			total += node.Valency
		}
		Expect(total).To(Equal(2 * len(g.Edges)))
	})

	It("never links a node to itself or duplicates a pair", func() {
		g := Build(30, bounds, rand.New(rand.NewSource(5)))

		seen := make(map[[2]*Node]bool)
		for _, e := range g.Edges {
			Expect(e.A).NotTo(BeIdenticalTo(e.B))
			key := [2]*Node{e.A, e.B}
			Expect(seen).NotTo(HaveKey(key))
			seen[key] = true
		}
	})

	It("links every pair closer than the link distance", func() {
		g := Build(20, Bounds{Width: 300, Height: 300}, rand.New(rand.NewSource(8)))

		linked := make(map[[2]*Node]bool)
		for _, e := range g.Edges {
			linked[[2]*Node{e.A, e.B}] = true
		}
		for i := range g.Nodes {
			for j := i + 1; j < len(g.Nodes); j++ {
				if Dist(g.Nodes[i], g.Nodes[j]) < LinkDistance {
					Expect(linked).To(HaveKey([2]*Node{g.Nodes[i], g.Nodes[j]}))
				}
			}
		}
	})

	It("draws every spin from the permitted set", func() {
		g := Build(40, bounds, rand.New(rand.NewSource(2)))
		for _, e := range g.Edges {
			Expect(Spins).To(ContainElement(e.Spin))
		}
	})

	It("can exceed the soft cap only through close pairs and the connectivity pass", func() {
		// A wide strip keeps most pairs beyond the link distance.
		for seed := int64(1); seed <= 20; seed++ {
			n := 10
			g := Build(n, Bounds{Width: 20000, Height: 60}, rand.New(rand.NewSource(seed)))

			near := 0
			for i := range g.Nodes {
				for j := i + 1; j < n; j++ {
					if Dist(g.Nodes[i], g.Nodes[j]) < LinkDistance {
						near++
					}
				}
			}
			Expect(len(g.Edges)).To(BeNumerically("<=", EdgeCapFactor*n+near+n-1))
		}
	})

	It("returns a fresh graph on every call", func() {
		r := rand.New(rand.NewSource(4))
		first := Build(8, bounds, r)
		second := Build(8, bounds, r)
		for _, n := range second.Nodes {
			Expect(first.Nodes).NotTo(ContainElement(BeIdenticalTo(n)))
		}
	})
})

var _ = Describe("Components", func() {
	It("counts an isolated trailing node as its own component", func() {
		a, b, c := &Node{}, &Node{}, &Node{}
		g := &Graph{Nodes: []*Node{a, b, c}}
		g.Edges = append(g.Edges, NewEdge(a, b, rand.New(rand.NewSource(1))))
		Expect(g.Components()).To(Equal(2))
	})
})
