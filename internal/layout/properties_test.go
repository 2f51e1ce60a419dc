package layout

import (
	"fmt"
	"math/rand"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func runTicks(s *State[paper], n int, dt float64) {
	for i := 0; i < n; i++ {
		Expect(s.Tick(dt)).To(Succeed())
	}
}

func chain(n int) ([]NodeInput[paper], []LinkInput) {
	nodes := make([]NodeInput[paper], n)
	links := make([]LinkInput, 0, n)
	for i := range nodes {
		nodes[i] = NodeInput[paper]{ID: fmt.Sprintf("n%d", i), Meta: paper{Year: 2000 + i}}
		if i > 0 {
			links = append(links, LinkInput{Source: nodes[i-1].ID, Target: nodes[i].ID})
		}
	}
	return nodes, links
}

var _ = Describe("force layout", func() {
	Context("with a fixed seed", func() {
		It("produces identical position sequences across runs", func() {
			nodes, links := chain(25)
			a, err := Initialize(nodes, links, DefaultParams(), rand.New(rand.NewSource(42)))
			Expect(err).NotTo(HaveOccurred())
			b, err := Initialize(nodes, links, DefaultParams(), rand.New(rand.NewSource(42)))
			Expect(err).NotTo(HaveOccurred())

			deltas := []float64{0.016, 0.033, 0.008, 0.016, 0}
			for i := 0; i < 100; i++ {
				dt := deltas[i%len(deltas)]
				Expect(a.Tick(dt)).To(Succeed())
				Expect(b.Tick(dt)).To(Succeed())
				Expect(cmp.Diff(a.Renderable(), b.Renderable())).To(BeEmpty())
			}
		})

		It("differs across seeds", func() {
			nodes, _ := chain(5)
			a, _ := Initialize(nodes, nil, DefaultParams(), rand.New(rand.NewSource(1)))
			b, _ := Initialize(nodes, nil, DefaultParams(), rand.New(rand.NewSource(2)))
			Expect(a.Renderable()[0].Position).NotTo(Equal(b.Renderable()[0].Position))
		})
	})

	Context("with degenerate geometry", func() {
		It("stays finite with coincident nodes and self-links", func() {
			nodes := []NodeInput[paper]{
				{ID: "a", Position: at(0, 0, 0)},
				{ID: "b", Position: at(0, 0, 0)},
				{ID: "c", Position: at(0, 0, 0)},
				{ID: "d", Position: at(3, 4, 0)},
			}
			links := []LinkInput{{Source: "a", Target: "a"}, {Source: "a", Target: "b"}, {Source: "d", Target: "d"}}
			s, err := Initialize(nodes, links, DefaultParams(), nil)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 1000; i++ {
				Expect(s.Tick(0.016)).To(Succeed())
				Expect(s.Finite()).To(BeTrue(), "tick %d", i)
			}
		})

		It("applies no force along a self-link", func() {
			p := DefaultParams()
			p.Centering = 0
			s, err := Initialize([]NodeInput[paper]{{ID: "a", Position: at(10, 0, 0)}}, []LinkInput{{Source: "a", Target: "a"}}, p, nil)
			Expect(err).NotTo(HaveOccurred())
			runTicks(s, 10, 0.016)
			n, _ := s.Node("a")
			Expect(n.Velocity).To(Equal(Vec3{}))
			Expect(n.Position).To(Equal(Vec3{10, 0, 0}))
		})

		It("stays finite for random graphs under both repulsion modes", func() {
			for _, theta := range []float64{0, 0.6} {
				rng := rand.New(rand.NewSource(99))
				nodes, links := chain(60)
				for i := 0; i < 40; i++ {
					links = append(links, LinkInput{
						Source: nodes[rng.Intn(len(nodes))].ID,
						Target: nodes[rng.Intn(len(nodes))].ID,
					})
				}
				p := DefaultParams()
				p.Theta = theta
				s, err := Initialize(nodes, links, p, rng)
				Expect(err).NotTo(HaveOccurred())
				runTicks(s, 300, 0.016)
				Expect(s.Finite()).To(BeTrue(), "theta %v", theta)
			}
		})
	})

	Context("with a zero delta", func() {
		It("recomputes velocities but leaves positions exactly unchanged", func() {
			nodes, links := chain(10)
			s, err := Initialize(nodes, links, DefaultParams(), rand.New(rand.NewSource(5)))
			Expect(err).NotTo(HaveOccurred())
			runTicks(s, 20, 0.016)

			before := s.Renderable()
			energy := s.KineticEnergy()
			Expect(s.Tick(0)).To(Succeed())
			after := s.Renderable()
			for i := range before {
				Expect(after[i].Position).To(Equal(before[i].Position))
			}
			Expect(s.KineticEnergy()).NotTo(Equal(energy))
		})
	})

	Context("with an empty graph", func() {
		It("ticks as a no-op", func() {
			s, err := Initialize[paper](nil, nil, DefaultParams(), nil)
			Expect(err).NotTo(HaveOccurred())
			runTicks(s, 50, 0.016)
			Expect(s.Renderable()).To(BeEmpty())
			Expect(s.Ticks()).To(Equal(50))
		})

		It("tolerates links with no nodes", func() {
			s, err := Initialize[paper](nil, []LinkInput{{Source: "x", Target: "y"}}, DefaultParams(), nil)
			Expect(err).NotTo(HaveOccurred())
			runTicks(s, 5, 0.016)
			Expect(s.Renderable()).To(BeEmpty())
		})
	})

	Context("with a dangling link", func() {
		It("does not perturb the source node", func() {
			p := DefaultParams()
			lone := []NodeInput[paper]{{ID: "a", Position: at(20, -10, 5)}}

			s, err := Initialize(lone, []LinkInput{{Source: "a", Target: "missing"}}, p, nil)
			Expect(err).NotTo(HaveOccurred())
			ref, err := Initialize(lone, nil, p, nil)
			Expect(err).NotTo(HaveOccurred())

			runTicks(s, 30, 0.016)
			runTicks(ref, 30, 0.016)
			Expect(s.Renderable()).To(Equal(ref.Renderable()))
		})
	})

	Context("with two linked nodes 200 apart", func() {
		It("converges toward the rest length without diverging", func() {
			nodes := []NodeInput[paper]{{ID: "a", Position: at(-100, 0, 0)}, {ID: "b", Position: at(100, 0, 0)}}
			s, err := Initialize(nodes, []LinkInput{{Source: "a", Target: "b"}}, DefaultParams(), nil)
			Expect(err).NotTo(HaveOccurred())

			gap := func() float64 {
				a, _ := s.Node("a")
				b, _ := s.Node("b")
				d := b.Position.Sub(a.Position).Length() - DefaultSpringLength
				if d < 0 {
					return -d
				}
				return d
			}
			initial := gap()
			peak := initial
			for i := 0; i < 500; i++ {
				Expect(s.Tick(0.016)).To(Succeed())
				if g := gap(); g > peak {
					peak = g
				}
			}
			Expect(gap()).To(BeNumerically("<", initial/10))
			Expect(peak).To(BeNumerically("<=", initial))
			Expect(s.Finite()).To(BeTrue())
		})
	})

	Context("with two unlinked nodes close together", func() {
		It("pushes them apart", func() {
			nodes := []NodeInput[paper]{{ID: "a", Position: at(0, 0, 0)}, {ID: "b", Position: at(1, 0, 0)}}
			s, err := Initialize(nodes, nil, DefaultParams(), nil)
			Expect(err).NotTo(HaveOccurred())
			runTicks(s, 500, 0.016)

			a, _ := s.Node("a")
			b, _ := s.Node("b")
			Expect(b.Position.Sub(a.Position).Length()).To(BeNumerically(">", 10))
		})
	})
})
