package store

import (
	"context"
	"errors"
	"io"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/lattice/internal/core/model"
)

type executedQuery struct {
	Query  string
	Params map[string]any
}

// mockRunner records every query and answers from a per-query result table.
type mockRunner struct {
	Executed []executedQuery
	Results  map[string]neo4j.EagerResult
	Errs     map[string]error
}

func (m *mockRunner) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	m.Executed = append(m.Executed, executedQuery{Query: query, Params: params})
	if err, ok := m.Errs[query]; ok {
		return neo4j.EagerResult{}, err
	}
	if res, ok := m.Results[query]; ok {
		return res, nil
	}
	return neo4j.EagerResult{}, nil
}

func record(keys []string, values []any) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

func testStore(runner *mockRunner) *MemgraphStore {
	return &MemgraphStore{
		runner: runner,
		logger: charmlog.New(io.Discard),
	}
}

func snapshotRecord(id, name string) *neo4j.Record {
	return record(
		[]string{"id", "name", "saved_at", "node_count", "link_count"},
		[]any{id, name, "2026-08-23T10:00:00Z", int64(2), int64(1)},
	)
}

func TestSaveSnapshot_DeletesBeforeCreating(t *testing.T) {
	runner := &mockRunner{}
	s := testStore(runner)

	g := model.Graph{
		Nodes: []model.Node{{ID: "a", Name: "A", Type: "T", Description: "d", Val: 1}},
	}
	info, err := s.SaveSnapshot(context.Background(), "daily", g)

	require.NoError(t, err)
	assert.Equal(t, "daily", info.Name)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, 1, info.Nodes)
	assert.Equal(t, 0, info.Links)

	require.GreaterOrEqual(t, len(runner.Executed), 2)
	assert.Equal(t, deleteSnapshotQuery, runner.Executed[0].Query)
	assert.Equal(t, "daily", runner.Executed[0].Params["name"])
	assert.Equal(t, createSnapshotQuery, runner.Executed[1].Query)
}

func TestSaveSnapshot_PersistsBareEndpointIDs(t *testing.T) {
	runner := &mockRunner{}
	s := testStore(runner)

	g := model.Graph{
		Nodes: []model.Node{
			{ID: "a", Name: "A", Type: "T", Description: "d", Val: 1},
			{ID: "b", Name: "B", Type: "T", Description: "d", Val: 1},
		},
		Links: []model.Link{
			// A hydrated endpoint collapses to its identifier on save.
			{Source: model.Ref(&model.Node{ID: "a"}), Target: model.ID("b"), Relationship: "knows"},
		},
	}
	_, err := s.SaveSnapshot(context.Background(), "daily", g)
	require.NoError(t, err)

	var linkParams map[string]any
	for _, e := range runner.Executed {
		if e.Query == saveLinksQuery {
			linkParams = e.Params
		}
	}
	require.NotNil(t, linkParams, "links were never written")
	links, ok := linkParams["links"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, links, 1)
	assert.Equal(t, "a", links[0]["source"])
	assert.Equal(t, "b", links[0]["target"])
	assert.Equal(t, "knows", links[0]["relationship"])
}

func TestSaveSnapshot_SkipsEmptyBatches(t *testing.T) {
	runner := &mockRunner{}
	s := testStore(runner)

	_, err := s.SaveSnapshot(context.Background(), "empty", model.Graph{})
	require.NoError(t, err)

	for _, e := range runner.Executed {
		assert.NotEqual(t, saveNodesQuery, e.Query)
		assert.NotEqual(t, saveLinksQuery, e.Query)
	}
}

func TestSaveSnapshot_CreateError(t *testing.T) {
	runner := &mockRunner{Errs: map[string]error{createSnapshotQuery: errors.New("disk full")}}
	s := testStore(runner)

	_, err := s.SaveSnapshot(context.Background(), "daily", model.Graph{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to save snapshot "daily"`)
}

func TestLoadSnapshot(t *testing.T) {
	runner := &mockRunner{Results: map[string]neo4j.EagerResult{
		getSnapshotQuery: {Records: []*neo4j.Record{snapshotRecord("snap-1", "daily")}},
		loadNodesQuery: {Records: []*neo4j.Record{
			record(
				[]string{"id", "name", "type", "description", "val", "color"},
				[]any{"a", "Alice", "Person", "an engineer", float64(2), "#ff0000"},
			),
			record(
				[]string{"id", "name", "type", "description", "val", "color"},
				[]any{"b", "Bob", "Person", "another", int64(1), nil},
			),
		}},
		loadLinksQuery: {Records: []*neo4j.Record{
			record(
				[]string{"source", "target", "relationship"},
				[]any{"a", "b", "knows"},
			),
		}},
	}}
	s := testStore(runner)

	g, err := s.LoadSnapshot(context.Background(), "daily")

	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, model.Node{ID: "a", Name: "Alice", Type: "Person", Description: "an engineer", Val: 2, Color: "#ff0000"}, g.Nodes[0])
	assert.Equal(t, float64(1), g.Nodes[1].Val, "integer val decodes too")
	require.Len(t, g.Links, 1)
	assert.Equal(t, "a", g.Links[0].Source.ID)
	assert.Equal(t, "b", g.Links[0].Target.ID)

	// Node and link loads are scoped to the snapshot id from the lookup.
	for _, e := range runner.Executed {
		if e.Query == loadNodesQuery || e.Query == loadLinksQuery {
			assert.Equal(t, "snap-1", e.Params["snapshot_id"])
		}
	}
}

func TestLoadSnapshot_NotFound(t *testing.T) {
	runner := &mockRunner{} // lookup returns zero records
	s := testStore(runner)

	_, err := s.LoadSnapshot(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSnapshots(t *testing.T) {
	runner := &mockRunner{Results: map[string]neo4j.EagerResult{
		listSnapshotsQuery: {Records: []*neo4j.Record{
			snapshotRecord("snap-2", "latest"),
			snapshotRecord("snap-1", "daily"),
		}},
	}}
	s := testStore(runner)

	infos, err := s.ListSnapshots(context.Background())

	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "latest", infos[0].Name)
	assert.Equal(t, 2, infos[0].Nodes)
	assert.Equal(t, 1, infos[0].Links)
	assert.Equal(t, "2026-08-23T10:00:00Z", infos[0].SavedAt.Format("2006-01-02T15:04:05Z07:00"))
}

func TestDeleteSnapshot(t *testing.T) {
	runner := &mockRunner{Results: map[string]neo4j.EagerResult{
		getSnapshotQuery: {Records: []*neo4j.Record{snapshotRecord("snap-1", "daily")}},
	}}
	s := testStore(runner)

	err := s.DeleteSnapshot(context.Background(), "daily")

	require.NoError(t, err)
	last := runner.Executed[len(runner.Executed)-1]
	assert.Equal(t, deleteSnapshotQuery, last.Query)
	assert.Equal(t, "daily", last.Params["name"])
}

func TestDeleteSnapshot_NotFound(t *testing.T) {
	runner := &mockRunner{}
	s := testStore(runner)

	err := s.DeleteSnapshot(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing must be deleted when the lookup fails.
	for _, e := range runner.Executed {
		assert.NotEqual(t, deleteSnapshotQuery, e.Query)
	}
}
