package model

// ExtractedNode is the raw node shape produced by the extraction capability.
// The LLM reports a size hint as "importance"; it becomes Val after
// normalization, defaulting to 1 when absent or zero.
type ExtractedNode struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Importance  float64 `json:"importance"`
}

// ExtractedGraph is the raw graph payload returned by the extraction
// capability. Untrusted: endpoints may dangle, ids may repeat.
type ExtractedGraph struct {
	Nodes []ExtractedNode `json:"nodes"`
	Links []Link          `json:"links"`
}

// Graph converts the raw extraction payload to the working graph shape.
// No cleanup happens here; callers run the result through graph.Normalize.
func (e ExtractedGraph) Graph() Graph {
	nodes := make([]Node, 0, len(e.Nodes))
	for _, n := range e.Nodes {
		nodes = append(nodes, Node{
			ID:          n.ID,
			Name:        n.Name,
			Type:        n.Type,
			Description: n.Description,
			Val:         n.Importance,
		})
	}
	return Graph{Nodes: nodes, Links: e.Links}
}

// ProposedLinks is the raw bridging payload: candidate links meant to connect
// disjoint components. Untrusted: may be empty, duplicated, or dangling.
type ProposedLinks struct {
	Links []Link `json:"links"`
}
