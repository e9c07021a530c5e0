package graph

import (
	"fmt"

	"github.com/agenthands/lattice/internal/core/model"
)

// Validate scans a graph for dangling links and reports them without
// mutating anything. Unlike Normalize it is diagnostic-only, and it does not
// assume the referential-integrity invariant already holds — callers may hand
// it graphs that never went through normalization.
func Validate(g model.Graph) model.ValidationReport {
	valid := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		valid[n.ID] = true
	}

	var issues []string
	for i, l := range g.Links {
		if src := ResolveID(l.Source); !valid[src] {
			issues = append(issues, fmt.Sprintf("link %d: source %q does not match any node", i, src))
		}
		if dst := ResolveID(l.Target); !valid[dst] {
			issues = append(issues, fmt.Sprintf("link %d: target %q does not match any node", i, dst))
		}
	}

	return model.ValidationReport{IsValid: len(issues) == 0, Issues: issues}
}
