package locale

import (
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/rs/zerolog/log"
)

// Report summarizes the health of the catalog's reference graph.
type Report struct {
	// Cycles holds groups of keys whose references form a loop, each group
	// sorted, groups sorted by first key.
	Cycles [][]string
	// Missing maps a key to the referenced keys that have no entry.
	Missing map[string][]string
}

// Check builds the directed reference graph of the catalog (an edge per
// token found in an entry's payload) and reports cycles and references to
// absent entries.
func (c *Catalog) Check() Report {
	report := Report{Missing: make(map[string][]string)}

	g := graph.New(graph.StringHash, graph.Directed())
	for key := range c.entries {
		g.AddVertex(key) // Ignore errors - keys are unique.
	}

	for key, value := range c.entries {
		for _, m := range tokenRE.FindAllStringSubmatch(value, -1) {
			ref := Key(m[1], m[2])
			if _, ok := c.entries[ref]; !ok {
				report.Missing[key] = append(report.Missing[key], ref)
				continue
			}
			g.AddEdge(key, ref) // Ignore errors - duplicate edges are fine.
		}
	}

	sccs, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute reference components")
		return report
	}

	for _, scc := range sccs {
		if len(scc) == 1 {
			// A single key is cyclic only if it references itself.
			if _, err := g.Edge(scc[0], scc[0]); err != nil {
				continue
			}
		}
		sort.Strings(scc)
		report.Cycles = append(report.Cycles, scc)
	}
	sort.Slice(report.Cycles, func(i, j int) bool {
		return report.Cycles[i][0] < report.Cycles[j][0]
	})

	for key := range report.Missing {
		sort.Strings(report.Missing[key])
	}

	return report
}
