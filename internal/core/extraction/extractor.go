package extraction

import (
	"context"
	"fmt"

	"github.com/agenthands/lattice/internal/core/common"
	"github.com/agenthands/lattice/internal/core/model"
	"github.com/agenthands/lattice/internal/llm"
)

// Extractor turns a free-text document into a raw entity-relationship graph
// via the LLM. Its output carries no guarantees: callers must normalize.
type Extractor struct {
	LLM    llm.LLMClient
	Prompt string
}

func NewExtractor(llmClient llm.LLMClient, prompt string) *Extractor {
	return &Extractor{
		LLM:    llmClient,
		Prompt: prompt,
	}
}

func (e *Extractor) Extract(ctx context.Context, text string) (model.Graph, error) {
	prompt := fmt.Sprintf(e.Prompt, text)

	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return model.Graph{}, fmt.Errorf("extraction failed: %w", err)
	}

	raw, err := common.ParseJSON[model.ExtractedGraph](response)
	if err != nil {
		return model.Graph{}, fmt.Errorf("extraction returned malformed graph: %w", err)
	}

	return raw.Graph(), nil
}
