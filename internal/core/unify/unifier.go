// Package unify merges externally proposed bridging links into a graph
// without corrupting its invariants: candidates are filtered against the
// node set, deduplicated by canonical link key (transitively within one
// call), and the resulting cluster count is recomputed rather than taken on
// faith from the proposing capability.
package unify

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/agenthands/lattice/internal/core/graph"
	"github.com/agenthands/lattice/internal/core/model"
)

// Phase identifies a step of the unification flow, surfaced to callers as
// progress notifications.
type Phase string

const (
	PhasePreparing Phase = "preparing" // validation + component discovery
	PhaseRefining  Phase = "refining"  // external bridging call in flight
	PhaseCompleted Phase = "completed"
	PhaseFailed    Phase = "failed"
)

// Bridger is the external capability that proposes candidate links between
// components. Its output is untrusted.
type Bridger interface {
	ProposeLinks(ctx context.Context, g model.Graph, components [][]string) ([]model.Link, error)
}

type Unifier struct {
	Bridger    Bridger
	Logger     *log.Logger
	OnProgress func(Phase) // optional
}

func NewUnifier(b Bridger, logger *log.Logger) *Unifier {
	return &Unifier{
		Bridger: b,
		Logger:  logger,
	}
}

func (u *Unifier) progress(p Phase) {
	if u.OnProgress != nil {
		u.OnProgress(p)
	}
}

// Unify runs the full refinement workflow on g and returns the merged graph
// with before/after accounting. The input graph is never mutated; on any
// error the caller's graph is untouched.
//
// An already-unified graph (at most one component) short-circuits without
// invoking the bridging capability: unification must be a true no-op there.
func (u *Unifier) Unify(ctx context.Context, g model.Graph) (*model.UnificationResult, error) {
	u.progress(PhasePreparing)

	report := graph.Validate(g)
	if !report.IsValid {
		u.Logger.Warn("unifying a graph with structural issues", "issues", len(report.Issues))
	}

	initial := graph.Components(g)
	if len(initial) <= 1 {
		u.progress(PhaseCompleted)
		return &model.UnificationResult{
			UnifiedGraph:    g,
			AddedLinksCount: 0,
			ClustersCount:   len(initial),
			Validation:      report,
		}, nil
	}

	u.progress(PhaseRefining)
	candidates, err := u.Bridger.ProposeLinks(ctx, g, initial)
	if err != nil {
		u.progress(PhaseFailed)
		return nil, fmt.Errorf("bridging call failed: %w", err)
	}

	valid := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		valid[n.ID] = true
	}
	seen := make(map[string]bool, len(g.Links))
	for _, l := range g.Links {
		seen[graph.LinkKey(l)] = true
	}

	merged := make([]model.Link, len(g.Links), len(g.Links)+len(candidates))
	copy(merged, g.Links)

	added := 0
	for _, cand := range candidates {
		src := graph.ResolveID(cand.Source)
		dst := graph.ResolveID(cand.Target)
		if !valid[src] || !valid[dst] {
			u.Logger.Warn("discarding bridge candidate with unknown endpoint",
				"source", src, "target", dst, "relationship", cand.Relationship)
			continue
		}
		link := model.Link{
			Source:       model.ID(src),
			Target:       model.ID(dst),
			Relationship: cand.Relationship,
		}
		key := graph.LinkKey(link)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, link)
		added++
	}

	unified := model.Graph{Nodes: g.Nodes, Links: merged}
	after := graph.Components(unified)

	u.Logger.Info("unification merged bridge candidates",
		"proposed", len(candidates), "added", added,
		"clusters_before", len(initial), "clusters_after", len(after))

	u.progress(PhaseCompleted)
	return &model.UnificationResult{
		UnifiedGraph:    unified,
		AddedLinksCount: added,
		ClustersCount:   len(after),
		Validation:      report,
	}, nil
}
