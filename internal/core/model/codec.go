package model

import (
	"encoding/json"
	"fmt"
)

// ParseGraph decodes and shape-checks an imported JSON graph payload. The
// check is structural only (required string fields, endpoint shape) — full
// normalization is a separate pass. A payload failing the check is rejected
// as a whole: callers must not have mutated any state before this returns.
func ParseGraph(data []byte) (Graph, error) {
	var raw struct {
		Nodes []json.RawMessage `json:"nodes"`
		Links []json.RawMessage `json:"links"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Graph{}, fmt.Errorf("invalid graph payload: %w", err)
	}

	for i, n := range raw.Nodes {
		if err := checkNodeShape(n); err != nil {
			return Graph{}, fmt.Errorf("nodes[%d]: %w", i, err)
		}
	}
	for i, l := range raw.Links {
		if err := checkLinkShape(l); err != nil {
			return Graph{}, fmt.Errorf("links[%d]: %w", i, err)
		}
	}

	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("invalid graph payload: %w", err)
	}
	return g, nil
}

func checkNodeShape(data json.RawMessage) error {
	var n struct {
		ID          *string `json:"id"`
		Name        *string `json:"name"`
		Type        *string `json:"type"`
		Description *string `json:"description"`
	}
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("node fields must be strings: %w", err)
	}
	for field, v := range map[string]*string{
		"id": n.ID, "name": n.Name, "type": n.Type, "description": n.Description,
	} {
		if v == nil {
			return fmt.Errorf("missing string field %q", field)
		}
	}
	return nil
}

func checkLinkShape(data json.RawMessage) error {
	var l struct {
		Source       json.RawMessage `json:"source"`
		Target       json.RawMessage `json:"target"`
		Relationship *string         `json:"relationship"`
	}
	if err := json.Unmarshal(data, &l); err != nil {
		return fmt.Errorf("invalid link: %w", err)
	}
	if l.Relationship == nil {
		return fmt.Errorf("missing string field %q", "relationship")
	}
	if err := checkEndpointShape(l.Source); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := checkEndpointShape(l.Target); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	return nil
}

func checkEndpointShape(data json.RawMessage) error {
	if len(data) == 0 {
		return fmt.Errorf("missing endpoint")
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return nil
	}
	var obj struct {
		ID *string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || obj.ID == nil {
		return fmt.Errorf("endpoint must be a string or an object with a string id")
	}
	return nil
}
