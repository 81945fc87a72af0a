package model

// Graph is the similarity network around one protein, shaped for a force-layout client.
type Graph struct {
	Center string `json:"center"`
	Nodes  []Node `json:"nodes"`
	Edges  []Edge `json:"edges"`
}

type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group string `json:"group"`
}

type Edge struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Similarity float64 `json:"similarity"`
}

const (
	GroupCenter  = "center"
	GroupRelated = "related"
)

// BuildGraph links center to every correlated entry scoring at least minScore.
// labels maps entries to display names; missing labels fall back to the entry.
func BuildGraph(center string, correlations []Correlation, minScore float64, labels map[string]string) Graph {
	label := func(entry string) string {
		if l, ok := labels[entry]; ok && l != "" {
			return l
		}
		return entry
	}

	g := Graph{
		Center: center,
		Nodes:  []Node{{ID: center, Label: label(center), Group: GroupCenter}},
		Edges:  []Edge{},
	}

	seen := map[string]struct{}{center: {}}
	for _, c := range correlations {
		if c.Entry != center {
			continue
		}
		for _, s := range c.JaccardCorrelations {
			if s.Jaccard < minScore || s.Entry == "" {
				continue
			}
			if _, dup := seen[s.Entry]; dup {
				continue
			}
			seen[s.Entry] = struct{}{}
			g.Nodes = append(g.Nodes, Node{ID: s.Entry, Label: label(s.Entry), Group: GroupRelated})
			g.Edges = append(g.Edges, Edge{Source: center, Target: s.Entry, Similarity: s.Jaccard})
		}
	}
	return g
}
