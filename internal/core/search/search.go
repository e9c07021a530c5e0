// Package search computes highlight sets over the current graph: the nodes
// matching a query plus the link keys connecting matched nodes. The link keys
// come from graph.LinkKey so highlight matching and merge deduplication can
// never disagree about what "the same link" means.
package search

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/agenthands/lattice/internal/core/graph"
	"github.com/agenthands/lattice/internal/core/model"
	"github.com/agenthands/lattice/internal/llm"
)

// Result is a highlight set. Scores is present only when an embedder is
// configured; it ranks the matched nodes by semantic similarity.
type Result struct {
	NodeIDs  []string           `json:"nodeIds"`
	LinkKeys []string           `json:"linkKeys"`
	Scores   map[string]float64 `json:"scores,omitempty"`
}

type Searcher struct {
	Embedder llm.EmbedderClient // nil disables semantic ranking
}

func NewSearcher(embedder llm.EmbedderClient) *Searcher {
	return &Searcher{Embedder: embedder}
}

// Search selects nodes whose id, name, type, or description contains the
// query (case-insensitive), then collects the keys of links whose endpoints
// are both selected. The graph is read-only here.
func (s *Searcher) Search(ctx context.Context, g model.Graph, query string) Result {
	q := strings.ToLower(strings.TrimSpace(query))

	matched := make(map[string]bool)
	nodeIDs := []string{}
	for _, n := range g.Nodes {
		if q == "" {
			continue
		}
		haystack := strings.ToLower(n.ID + " " + n.Name + " " + n.Type + " " + n.Description)
		if strings.Contains(haystack, q) {
			matched[n.ID] = true
			nodeIDs = append(nodeIDs, n.ID)
		}
	}

	linkKeys := []string{}
	for _, l := range g.Links {
		if matched[graph.ResolveID(l.Source)] && matched[graph.ResolveID(l.Target)] {
			linkKeys = append(linkKeys, graph.LinkKey(l))
		}
	}

	result := Result{NodeIDs: nodeIDs, LinkKeys: linkKeys}
	if s.Embedder != nil && len(nodeIDs) > 0 {
		if scores := s.rank(ctx, g, q, matched); scores != nil {
			result.Scores = scores
			sort.SliceStable(result.NodeIDs, func(i, j int) bool {
				return scores[result.NodeIDs[i]] > scores[result.NodeIDs[j]]
			})
		}
	}
	return result
}

// rank scores matched nodes by cosine similarity against the query embedding.
// Embedding failures abort ranking silently; the text matches still stand.
func (s *Searcher) rank(ctx context.Context, g model.Graph, query string, matched map[string]bool) map[string]float64 {
	queryVec, err := s.Embedder.Embed(ctx, query)
	if err != nil || len(queryVec) == 0 {
		return nil
	}

	scores := make(map[string]float64)
	for _, n := range g.Nodes {
		if !matched[n.ID] {
			continue
		}
		vec, err := s.Embedder.Embed(ctx, n.Name+": "+n.Description)
		if err != nil {
			return nil
		}
		scores[n.ID] = cosine(queryVec, vec)
	}
	return scores
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
