package model

import (
	"encoding/json"
	"fmt"
)

// Node is an extracted entity. IDs are caller-supplied (typically slugs) and
// stable: node identity is never recomputed, only looked up.
type Node struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Val         float64 `json:"val"`
	Color       string  `json:"color,omitempty"`
}

// Endpoint is one end of a link: either a bare node identifier or a hydrated
// node reference (rendering layers mutate link endpoints in place after
// layout, so both shapes arrive over the wire).
type Endpoint struct {
	ID   string
	Node *Node
}

// ID returns an Endpoint holding a bare identifier.
func ID(id string) Endpoint {
	return Endpoint{ID: id}
}

// Ref returns an Endpoint holding a hydrated node reference.
func Ref(n *Node) Endpoint {
	return Endpoint{Node: n}
}

func (e *Endpoint) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*e = Endpoint{ID: id}
		return nil
	}
	var node Node
	if err := json.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("endpoint must be a string or a node object: %w", err)
	}
	*e = Endpoint{Node: &node}
	return nil
}

// MarshalJSON always emits the bare identifier, so a marshaled graph is
// self-contained and re-importable regardless of endpoint hydration.
func (e Endpoint) MarshalJSON() ([]byte, error) {
	if e.Node != nil {
		return json.Marshal(e.Node.ID)
	}
	return json.Marshal(e.ID)
}

// Link is a directed relationship between two nodes. Connectivity treats it
// as undirected; direction only matters for display.
type Link struct {
	Source       Endpoint `json:"source"`
	Target       Endpoint `json:"target"`
	Relationship string   `json:"relationship"`
}

// Graph is an ordered pair of nodes and links. Order is insertion order and
// carries no meaning beyond display determinism.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// ValidationReport is the diagnostic output of the structural validator.
// Ephemeral, computed on demand, never stored.
type ValidationReport struct {
	IsValid bool     `json:"isValid"`
	Issues  []string `json:"issues"`
}

// UnificationResult is returned once per unification call. ClustersCount is
// the recomputed post-merge component count, not whatever the bridging
// capability claimed to achieve.
type UnificationResult struct {
	UnifiedGraph    Graph            `json:"unifiedGraph"`
	AddedLinksCount int              `json:"addedLinksCount"`
	ClustersCount   int              `json:"clustersCount"`
	Validation      ValidationReport `json:"validation"`
}
