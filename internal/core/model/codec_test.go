package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGraph_Valid(t *testing.T) {
	payload := `{
		"nodes": [
			{"id": "a", "name": "Alice", "type": "Person", "description": "first", "val": 2},
			{"id": "b", "name": "Bob", "type": "Person", "description": "second", "color": "#fff"}
		],
		"links": [
			{"source": "a", "target": "b", "relationship": "knows"},
			{"source": {"id": "b", "name": "Bob"}, "target": "a", "relationship": "works_with"}
		]
	}`

	g, err := ParseGraph([]byte(payload))

	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Links, 2)
	assert.Equal(t, "a", g.Links[0].Source.ID)
	require.NotNil(t, g.Links[1].Source.Node)
	assert.Equal(t, "b", g.Links[1].Source.Node.ID)
}

func TestParseGraph_RejectsMissingNodeField(t *testing.T) {
	payload := `{"nodes": [{"id": "a", "name": "Alice", "type": "Person"}], "links": []}`

	_, err := ParseGraph([]byte(payload))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nodes[0]")
	assert.Contains(t, err.Error(), "description")
}

func TestParseGraph_RejectsNonStringNodeField(t *testing.T) {
	payload := `{"nodes": [{"id": 7, "name": "Alice", "type": "Person", "description": "d"}], "links": []}`

	_, err := ParseGraph([]byte(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nodes[0]")
}

func TestParseGraph_RejectsMissingRelationship(t *testing.T) {
	payload := `{
		"nodes": [{"id": "a", "name": "A", "type": "T", "description": "d"}],
		"links": [{"source": "a", "target": "a"}]
	}`

	_, err := ParseGraph([]byte(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "links[0]")
	assert.Contains(t, err.Error(), "relationship")
}

func TestParseGraph_RejectsBadEndpointShape(t *testing.T) {
	payload := `{
		"nodes": [{"id": "a", "name": "A", "type": "T", "description": "d"}],
		"links": [{"source": 42, "target": "a", "relationship": "x"}]
	}`

	_, err := ParseGraph([]byte(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source")
}

func TestParseGraph_RejectsObjectEndpointWithoutID(t *testing.T) {
	payload := `{
		"nodes": [{"id": "a", "name": "A", "type": "T", "description": "d"}],
		"links": [{"source": "a", "target": {"name": "A"}, "relationship": "x"}]
	}`

	_, err := ParseGraph([]byte(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target")
}

func TestParseGraph_RejectsInvalidJSON(t *testing.T) {
	_, err := ParseGraph([]byte("not json"))
	require.Error(t, err)
}

func TestGraphMarshal_ResolvesEndpointsToBareIDs(t *testing.T) {
	node := Node{ID: "b", Name: "Bob", Type: "Person", Description: "d", Val: 1}
	g := Graph{
		Nodes: []Node{
			{ID: "a", Name: "Alice", Type: "Person", Description: "d", Val: 1},
			node,
		},
		Links: []Link{
			{Source: ID("a"), Target: Ref(&node), Relationship: "knows"},
		},
	}

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	links := decoded["links"].([]any)
	link := links[0].(map[string]any)
	assert.Equal(t, "a", link["source"])
	assert.Equal(t, "b", link["target"])
}

func TestNodeMarshal_OmitsEmptyColor(t *testing.T) {
	data, err := json.Marshal(Node{ID: "a", Name: "A", Type: "T", Description: "d", Val: 1})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "color")

	data, err = json.Marshal(Node{ID: "a", Name: "A", Type: "T", Description: "d", Val: 1, Color: "#abc"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"color":"#abc"`)
}

func TestGraphRoundTrip(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a", Name: "A", Type: "T", Description: "d", Val: 1}},
		Links: []Link{{Source: ID("a"), Target: ID("a"), Relationship: "self"}},
	}

	data, err := json.Marshal(g)
	require.NoError(t, err)

	reparsed, err := ParseGraph(data)
	require.NoError(t, err)
	assert.Equal(t, g, reparsed)
}

func TestExtractedGraph_MapsImportanceToVal(t *testing.T) {
	e := ExtractedGraph{
		Nodes: []ExtractedNode{{ID: "a", Name: "A", Type: "T", Description: "d", Importance: 7}},
		Links: []Link{{Source: ID("a"), Target: ID("a"), Relationship: "self"}},
	}

	g := e.Graph()

	assert.Equal(t, float64(7), g.Nodes[0].Val)
	assert.Len(t, g.Links, 1)
}
