package dataset

import (
	"fmt"
	"math/rand"
)

var demoTopics = []struct {
	name     string
	subjects []string
	keywords []string
}{
	{"microgravity", []string{"cell morphology", "cytoskeletal remodeling", "fluid shifts", "gene expression"}, []string{"microgravity", "ISS", "spaceflight"}},
	{"radiation", []string{"DNA damage", "galactic cosmic rays", "oxidative stress", "tissue shielding"}, []string{"radiation", "HZE particles", "dosimetry"}},
	{"plant biology", []string{"root gravitropism", "seed germination", "photosynthesis", "Arabidopsis growth"}, []string{"plants", "Veggie", "gravitropism"}},
	{"microbiology", []string{"biofilm formation", "microbial virulence", "crew microbiome", "antibiotic resistance"}, []string{"microbes", "biofilm", "microbiome"}},
	{"bone loss", []string{"osteoclast activity", "bone mineral density", "muscle atrophy", "skeletal unloading"}, []string{"bone", "osteoporosis", "unloading"}},
	{"immune", []string{"T-cell activation", "cytokine profiles", "latent virus reactivation", "inflammation"}, []string{"immunology", "cytokines", "stress"}},
	{"cardiovascular", []string{"cardiac remodeling", "orthostatic intolerance", "vascular stiffness"}, []string{"heart", "vasculature", "fluid shift"}},
	{"neuroscience", []string{"vestibular adaptation", "sleep disruption", "cognitive performance"}, []string{"brain", "vestibular", "circadian"}},
}

var (
	demoVerbs    = []string{"Effects of spaceflight on", "Simulated microgravity alters", "Long-duration missions and", "Rodent Research reveals changes in", "A multi-omics view of", "Countermeasures for"}
	demoOrganism = []string{"mice", "astronauts", "Arabidopsis thaliana", "Drosophila", "E. coli", "human cell cultures", "C. elegans"}
	demoSurnames = []string{"Chen", "Okafor", "Ivanova", "Garcia", "Tanaka", "Schmidt", "Haddad", "Novak", "Silva", "Kim", "Moreau", "Patel"}
	demoInitials = []string{"A.", "B.", "C.", "D.", "E.", "J.", "K.", "L.", "M.", "R.", "S.", "T."}
)

// Demo generates a deterministic corpus of n space-biology papers. Each
// paper cites one to three earlier papers, mostly within its own topic.
func Demo(n int, seed int64) *Graph {
	rng := rand.New(rand.NewSource(seed))
	g := &Graph{Nodes: make([]PaperNode, 0, n)}
	byTopic := make(map[int][]int)

	for i := 0; i < n; i++ {
		ti := rng.Intn(len(demoTopics))
		topic := demoTopics[ti]
		subject := topic.subjects[rng.Intn(len(topic.subjects))]
		organism := demoOrganism[rng.Intn(len(demoOrganism))]

		authors := make([]string, 1+rng.Intn(3))
		for a := range authors {
			authors[a] = demoInitials[rng.Intn(len(demoInitials))] + " " + demoSurnames[rng.Intn(len(demoSurnames))]
		}

		p := Paper{
			Title:    fmt.Sprintf("%s %s in %s", demoVerbs[rng.Intn(len(demoVerbs))], subject, organism),
			Authors:  authors,
			Year:     2000 + rng.Intn(25),
			Summary:  fmt.Sprintf("Investigates %s in %s exposed to spaceflight conditions.", subject, organism),
			Keywords: append([]string{subject}, topic.keywords...),
			Topic:    topic.name,
		}
		id := fmt.Sprintf("SB-%03d", i+1)
		g.Nodes = append(g.Nodes, PaperNode{ID: id, Color: TopicColor(topic.name), Paper: p})

		if i > 0 {
			cites := 1 + rng.Intn(3)
			seen := make(map[int]bool, cites)
			for c := 0; c < cites; c++ {
				var target int
				if same := byTopic[ti]; len(same) > 0 && rng.Float64() < 0.8 {
					target = same[rng.Intn(len(same))]
				} else {
					target = rng.Intn(i)
				}
				if seen[target] {
					continue
				}
				seen[target] = true
				g.Links = append(g.Links, Link{Source: id, Target: g.Nodes[target].ID})
			}
		}
		byTopic[ti] = append(byTopic[ti], i)
	}

	return g
}
