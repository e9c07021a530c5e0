package store

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	coregraph "github.com/agenthands/lattice/internal/core/graph"
	"github.com/agenthands/lattice/internal/core/model"
)

// queryRunner is the slice of the neo4j driver the store needs. Tests swap in
// a mock.
type queryRunner interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error)
}

type boltRunner struct {
	driver neo4j.DriverWithContext
}

func (r *boltRunner) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, r.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

type MemgraphStore struct {
	runner queryRunner
	logger *log.Logger
	close  func(ctx context.Context) error
}

func NewMemgraphStore(uri, username, password string, logger *log.Logger) (*MemgraphStore, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}
	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}
	logger.Info("connected to Memgraph", "uri", uri)

	s := &MemgraphStore{
		runner: &boltRunner{driver: driver},
		logger: logger,
		close:  driver.Close,
	}
	s.buildIndices(context.Background())
	return s, nil
}

func (s *MemgraphStore) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func (s *MemgraphStore) buildIndices(ctx context.Context) {
	for _, q := range indexQueries {
		if _, err := s.runner.ExecuteQuery(ctx, q, nil); err != nil {
			// The index may already exist; not fatal either way.
			s.logger.Warn("failed to create index", "query", q, "err", err)
		}
	}
}

// SaveSnapshot replaces any snapshot with the same name, then writes the
// graph. Endpoints are persisted as bare identifiers.
func (s *MemgraphStore) SaveSnapshot(ctx context.Context, name string, g model.Graph) (SnapshotInfo, error) {
	if _, err := s.runner.ExecuteQuery(ctx, deleteSnapshotQuery, map[string]any{"name": name}); err != nil {
		return SnapshotInfo{}, fmt.Errorf("failed to replace snapshot %q: %w", name, err)
	}

	info := SnapshotInfo{
		ID:      uuid.New().String(),
		Name:    name,
		SavedAt: time.Now().UTC(),
		Nodes:   len(g.Nodes),
		Links:   len(g.Links),
	}

	_, err := s.runner.ExecuteQuery(ctx, createSnapshotQuery, map[string]any{
		"id":         info.ID,
		"name":       info.Name,
		"saved_at":   info.SavedAt.Format(time.RFC3339),
		"node_count": info.Nodes,
		"link_count": info.Links,
	})
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("failed to save snapshot %q: %w", name, err)
	}

	if len(g.Nodes) > 0 {
		nodes := make([]map[string]any, 0, len(g.Nodes))
		for _, n := range g.Nodes {
			nodes = append(nodes, map[string]any{
				"id":          n.ID,
				"name":        n.Name,
				"type":        n.Type,
				"description": n.Description,
				"val":         n.Val,
				"color":       n.Color,
			})
		}
		params := map[string]any{"snapshot_id": info.ID, "nodes": nodes}
		if _, err := s.runner.ExecuteQuery(ctx, saveNodesQuery, params); err != nil {
			return SnapshotInfo{}, fmt.Errorf("failed to save snapshot nodes: %w", err)
		}
	}

	if len(g.Links) > 0 {
		links := make([]map[string]any, 0, len(g.Links))
		for _, l := range g.Links {
			links = append(links, map[string]any{
				"source":       coregraph.ResolveID(l.Source),
				"target":       coregraph.ResolveID(l.Target),
				"relationship": l.Relationship,
			})
		}
		params := map[string]any{"snapshot_id": info.ID, "links": links}
		if _, err := s.runner.ExecuteQuery(ctx, saveLinksQuery, params); err != nil {
			return SnapshotInfo{}, fmt.Errorf("failed to save snapshot links: %w", err)
		}
	}

	return info, nil
}

func (s *MemgraphStore) LoadSnapshot(ctx context.Context, name string) (model.Graph, error) {
	info, err := s.getSnapshot(ctx, name)
	if err != nil {
		return model.Graph{}, err
	}

	var g model.Graph

	nodesRes, err := s.runner.ExecuteQuery(ctx, loadNodesQuery, map[string]any{"snapshot_id": info.ID})
	if err != nil {
		return model.Graph{}, fmt.Errorf("failed to load snapshot nodes: %w", err)
	}
	for _, rec := range nodesRes.Records {
		g.Nodes = append(g.Nodes, model.Node{
			ID:          recordString(rec, "id"),
			Name:        recordString(rec, "name"),
			Type:        recordString(rec, "type"),
			Description: recordString(rec, "description"),
			Val:         recordFloat(rec, "val"),
			Color:       recordString(rec, "color"),
		})
	}

	linksRes, err := s.runner.ExecuteQuery(ctx, loadLinksQuery, map[string]any{"snapshot_id": info.ID})
	if err != nil {
		return model.Graph{}, fmt.Errorf("failed to load snapshot links: %w", err)
	}
	for _, rec := range linksRes.Records {
		g.Links = append(g.Links, model.Link{
			Source:       model.ID(recordString(rec, "source")),
			Target:       model.ID(recordString(rec, "target")),
			Relationship: recordString(rec, "relationship"),
		})
	}

	return g, nil
}

func (s *MemgraphStore) ListSnapshots(ctx context.Context) ([]SnapshotInfo, error) {
	res, err := s.runner.ExecuteQuery(ctx, listSnapshotsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	infos := make([]SnapshotInfo, 0, len(res.Records))
	for _, rec := range res.Records {
		infos = append(infos, snapshotInfoFromRecord(rec))
	}
	return infos, nil
}

func (s *MemgraphStore) DeleteSnapshot(ctx context.Context, name string) error {
	if _, err := s.getSnapshot(ctx, name); err != nil {
		return err
	}
	if _, err := s.runner.ExecuteQuery(ctx, deleteSnapshotQuery, map[string]any{"name": name}); err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", name, err)
	}
	return nil
}

func (s *MemgraphStore) getSnapshot(ctx context.Context, name string) (SnapshotInfo, error) {
	res, err := s.runner.ExecuteQuery(ctx, getSnapshotQuery, map[string]any{"name": name})
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("failed to look up snapshot %q: %w", name, err)
	}
	if len(res.Records) == 0 {
		return SnapshotInfo{}, ErrNotFound
	}
	return snapshotInfoFromRecord(res.Records[0]), nil
}

func snapshotInfoFromRecord(rec *neo4j.Record) SnapshotInfo {
	savedAt, _ := time.Parse(time.RFC3339, recordString(rec, "saved_at"))
	return SnapshotInfo{
		ID:      recordString(rec, "id"),
		Name:    recordString(rec, "name"),
		SavedAt: savedAt,
		Nodes:   int(recordInt(rec, "node_count")),
		Links:   int(recordInt(rec, "link_count")),
	}
}

func recordString(rec *neo4j.Record, key string) string {
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return s
}

func recordFloat(rec *neo4j.Record, key string) float64 {
	v, _ := rec.Get(key)
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func recordInt(rec *neo4j.Record, key string) int64 {
	v, _ := rec.Get(key)
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}
