// Package session owns the current-graph slot. Everything that mutates the
// slot — ingest, import, unify, restore, reset — goes through here; the
// normalizer, validator, and connectivity analyzer only ever read it. A
// monotonically increasing generation counter guards against a slow external
// call installing results over a graph the user has already discarded.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/agenthands/lattice/internal/core/graph"
	"github.com/agenthands/lattice/internal/core/model"
	"github.com/agenthands/lattice/internal/core/unify"
)

var (
	// ErrNoGraph is returned when an operation needs a current graph and
	// none is loaded.
	ErrNoGraph = errors.New("no graph loaded")
	// ErrRefineBusy is returned when a unification is requested while one is
	// already in flight. Refinements are serialized, never queued.
	ErrRefineBusy = errors.New("a refinement is already in progress")
	// ErrStaleGeneration is returned when a slow external call finishes after
	// the graph it was working on has been reset or replaced.
	ErrStaleGeneration = errors.New("graph changed while the operation was in flight")
)

// Extractor is the external document-to-graph capability.
type Extractor interface {
	Extract(ctx context.Context, text string) (model.Graph, error)
}

type Session struct {
	mu       sync.Mutex
	graph    *model.Graph
	gen      uint64
	refining bool

	extractor Extractor
	unifier   *unify.Unifier
	logger    *log.Logger
}

func New(extractor Extractor, unifier *unify.Unifier, logger *log.Logger) *Session {
	return &Session{
		extractor: extractor,
		unifier:   unifier,
		logger:    logger,
	}
}

// Current returns a copy of the current graph value.
func (s *Session) Current() (model.Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph == nil {
		return model.Graph{}, ErrNoGraph
	}
	return *s.graph, nil
}

// Reset clears the slot and bumps the generation so any in-flight operation
// against the old graph is refused at install time.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = nil
	s.gen++
	s.logger.Info("graph reset", "generation", s.gen)
}

// Ingest extracts a graph from document text, normalizes it, and installs it
// as the current graph. A reset issued while the extraction call is
// outstanding wins: the late result is discarded with ErrStaleGeneration.
func (s *Session) Ingest(ctx context.Context, text string) (model.Graph, error) {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	raw, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return model.Graph{}, err
	}

	clean, dropped := graph.Normalize(raw)
	if dropped > 0 {
		s.logger.Warn("dropped invalid links during normalization", "count", dropped)
	}

	if err := s.install(gen, clean); err != nil {
		return model.Graph{}, err
	}
	return clean, nil
}

// Import shape-checks, normalizes, and installs a JSON graph payload. A
// failing shape check rejects the payload before any state changes.
func (s *Session) Import(data []byte) (model.Graph, error) {
	parsed, err := model.ParseGraph(data)
	if err != nil {
		return model.Graph{}, err
	}

	clean, dropped := graph.Normalize(parsed)
	if dropped > 0 {
		s.logger.Warn("dropped invalid links during import", "count", dropped)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = &clean
	s.gen++
	return clean, nil
}

// Restore installs an already-persisted graph (e.g. a loaded snapshot).
func (s *Session) Restore(g model.Graph) model.Graph {
	clean, dropped := graph.Normalize(g)
	if dropped > 0 {
		s.logger.Warn("dropped invalid links during restore", "count", dropped)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = &clean
	s.gen++
	return clean
}

// Export marshals the current graph to its self-contained JSON snapshot
// shape: per-node {id,name,type,description,val,color?}, bare-id endpoints.
func (s *Session) Export() ([]byte, error) {
	g, err := s.Current()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(g, "", "  ")
}

// Validate reports dangling links in the current graph without mutating it.
func (s *Session) Validate() (model.ValidationReport, error) {
	g, err := s.Current()
	if err != nil {
		return model.ValidationReport{}, err
	}
	return graph.Validate(g), nil
}

// Components returns the connected-component partition of the current graph.
func (s *Session) Components() ([][]string, error) {
	g, err := s.Current()
	if err != nil {
		return nil, err
	}
	return graph.Components(g), nil
}

// Unify runs the unification orchestrator against the current graph and
// installs the merged result, unless a reset superseded the run meanwhile.
// Only one refinement may be in flight at a time.
func (s *Session) Unify(ctx context.Context) (*model.UnificationResult, error) {
	s.mu.Lock()
	if s.graph == nil {
		s.mu.Unlock()
		return nil, ErrNoGraph
	}
	if s.refining {
		s.mu.Unlock()
		return nil, ErrRefineBusy
	}
	s.refining = true
	g := *s.graph
	gen := s.gen
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.refining = false
		s.mu.Unlock()
	}()

	result, err := s.unifier.Unify(ctx, g)
	if err != nil {
		// The slot is untouched: a failed refinement never partially applies.
		return nil, err
	}

	if err := s.install(gen, result.UnifiedGraph); err != nil {
		return nil, err
	}
	return result, nil
}

// install writes g into the slot iff the generation observed at the start of
// the operation is still current.
func (s *Session) install(gen uint64, g model.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		s.logger.Warn("discarding stale result", "expected_generation", gen, "generation", s.gen)
		return ErrStaleGeneration
	}
	s.graph = &g
	return nil
}
