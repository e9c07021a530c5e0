// Package bridge asks the LLM for candidate links that could connect the
// disconnected components of a graph. Candidates are untrusted: the unifier
// filters and deduplicates them before any of them reach the graph.
package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/lattice/internal/core/common"
	"github.com/agenthands/lattice/internal/core/model"
	"github.com/agenthands/lattice/internal/llm"
)

type Bridger struct {
	LLM    llm.LLMClient
	Prompt string
}

func NewBridger(llmClient llm.LLMClient, prompt string) *Bridger {
	return &Bridger{
		LLM:    llmClient,
		Prompt: prompt,
	}
}

// ProposeLinks requests candidate bridging links for the given component
// partition. An error means the capability itself failed; an empty slice is a
// valid answer (the model found nothing to connect).
func (b *Bridger) ProposeLinks(ctx context.Context, g model.Graph, components [][]string) ([]model.Link, error) {
	prompt := fmt.Sprintf(b.Prompt, serializeComponents(g, components))

	response, err := b.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("bridge proposal failed: %w", err)
	}

	// Some models ignore the {"links": [...]} wrapper and answer with a bare
	// array; dispatch on whichever bracket opens the payload.
	if i := strings.IndexAny(response, "[{"); i >= 0 && response[i] == '[' {
		links, err := common.ParseJSONList[model.Link](response)
		if err != nil {
			return nil, fmt.Errorf("bridge proposal returned malformed links: %w", err)
		}
		return links, nil
	}

	proposed, err := common.ParseJSON[model.ProposedLinks](response)
	if err != nil {
		return nil, fmt.Errorf("bridge proposal returned malformed links: %w", err)
	}

	return proposed.Links, nil
}

// serializeComponents renders each component as a numbered cluster listing
// member ids, names, and types — the context the model needs to propose
// connections between the right nodes.
func serializeComponents(g model.Graph, components [][]string) string {
	byID := make(map[string]model.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}

	var sb strings.Builder
	for i, members := range components {
		fmt.Fprintf(&sb, "Cluster %d:\n", i+1)
		for _, id := range members {
			n := byID[id]
			fmt.Fprintf(&sb, "- id: %s, name: %s, type: %s\n", id, n.Name, n.Type)
		}
	}
	return sb.String()
}
