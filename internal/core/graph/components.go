package graph

import "github.com/agenthands/lattice/internal/core/model"

// unionFind is a disjoint-set over string node identifiers with path
// compression and union by rank. Elements register lazily on first reference.
type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[string]string),
		rank:   make(map[string]int),
	}
}

func (uf *unionFind) add(x string) {
	if _, ok := uf.parent[x]; ok {
		return
	}
	uf.parent[x] = x
	uf.rank[x] = 0
}

func (uf *unionFind) find(x string) string {
	if _, ok := uf.parent[x]; !ok {
		uf.add(x)
		return x
	}
	if uf.parent[x] != x {
		uf.parent[x] = uf.find(uf.parent[x]) // path compression
	}
	return uf.parent[x]
}

func (uf *unionFind) union(x, y string) {
	rx, ry := uf.find(x), uf.find(y)
	if rx == ry {
		return
	}
	switch {
	case uf.rank[rx] < uf.rank[ry]:
		uf.parent[rx] = ry
	case uf.rank[rx] > uf.rank[ry]:
		uf.parent[ry] = rx
	default:
		uf.parent[ry] = rx
		uf.rank[rx]++
	}
}

// Components partitions the graph's node identifiers into maximal connected
// groups. Links are treated as undirected for connectivity even though they
// are directed for display. A graph with zero links yields one singleton
// component per node.
//
// Output order is deterministic for a given input: identifiers appear in node
// input order within their component, and components are ordered by their
// first node's position.
func Components(g model.Graph) [][]string {
	uf := newUnionFind()
	for _, n := range g.Nodes {
		uf.add(n.ID)
	}
	for _, l := range g.Links {
		uf.union(ResolveID(l.Source), ResolveID(l.Target))
	}

	byRoot := make(map[string][]string, len(g.Nodes))
	var order []string
	for _, n := range g.Nodes {
		root := uf.find(n.ID)
		if _, seen := byRoot[root]; !seen {
			order = append(order, root)
		}
		byRoot[root] = append(byRoot[root], n.ID)
	}

	components := make([][]string, 0, len(order))
	for _, root := range order {
		components = append(components, byRoot[root])
	}
	return components
}
