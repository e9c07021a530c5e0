// Package graph implements the consistency engine for extracted graphs:
// endpoint identity resolution, canonical link keys, normalization of
// arbitrarily-shaped payloads, structural validation, and union-find
// connectivity analysis. Everything here is pure: inputs are read, never
// mutated, and new structures are returned.
package graph

import "github.com/agenthands/lattice/internal/core/model"

// keyDelimiter never occurs inside node ids or relationship labels.
const keyDelimiter = "__"

// ResolveID collapses a link endpoint to its canonical node identifier.
// Endpoints arrive either as bare ids or as hydrated node references; any
// third shape is a programming error upstream, not a runtime condition.
func ResolveID(e model.Endpoint) string {
	if e.Node != nil {
		return e.Node.ID
	}
	return e.ID
}

// LinkKey derives the canonical dedup/highlight key for a link. Two links are
// duplicates iff their keys are equal. Relationship labels are compared
// as-is: differing casing or whitespace yields distinct keys.
func LinkKey(l model.Link) string {
	return ResolveID(l.Source) + keyDelimiter + l.Relationship + keyDelimiter + ResolveID(l.Target)
}
