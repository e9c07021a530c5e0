package llm

import "context"

// LLMClient is the single capability the core asks of a language model:
// given a prompt, return text. Structured output is the caller's problem.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmbedderClient produces a vector for a piece of text. Providers without an
// embedding endpoint return a nil EmbedderClient from the factory and callers
// degrade to text-only behavior.
type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
