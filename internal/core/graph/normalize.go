package graph

import "github.com/agenthands/lattice/internal/core/model"

// Normalize produces a canonical graph from an arbitrarily-shaped one: node
// size hints default to 1, link endpoints collapse to bare identifiers, and
// links referencing a missing endpoint are dropped. The second return value
// is the number of dropped links; callers log it in aggregate rather than
// dumping link contents (extracted text can be sensitive).
//
// Normalize is idempotent: applying it to its own output is a no-op.
func Normalize(g model.Graph) (model.Graph, int) {
	nodes := make([]model.Node, 0, len(g.Nodes))
	valid := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		clean := n
		if clean.Val == 0 {
			clean.Val = 1
		}
		nodes = append(nodes, clean)
		valid[clean.ID] = true
	}

	links := make([]model.Link, 0, len(g.Links))
	dropped := 0
	for _, l := range g.Links {
		src := ResolveID(l.Source)
		dst := ResolveID(l.Target)
		if !valid[src] || !valid[dst] {
			dropped++
			continue
		}
		links = append(links, model.Link{
			Source:       model.ID(src),
			Target:       model.ID(dst),
			Relationship: l.Relationship,
		})
	}

	return model.Graph{Nodes: nodes, Links: links}, dropped
}
