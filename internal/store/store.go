// Package store persists named graph snapshots to Memgraph. A snapshot is a
// self-contained copy of the graph at save time; saving under an existing
// name replaces the previous snapshot wholesale.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/agenthands/lattice/internal/core/model"
)

var ErrNotFound = errors.New("snapshot not found")

type SnapshotInfo struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	SavedAt time.Time `json:"savedAt"`
	Nodes   int       `json:"nodes"`
	Links   int       `json:"links"`
}

type GraphStore interface {
	SaveSnapshot(ctx context.Context, name string, g model.Graph) (SnapshotInfo, error)
	LoadSnapshot(ctx context.Context, name string) (model.Graph, error)
	ListSnapshots(ctx context.Context) ([]SnapshotInfo, error)
	DeleteSnapshot(ctx context.Context, name string) error
	Close(ctx context.Context) error
}
