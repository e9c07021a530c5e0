// Package chat answers free-text questions about the current graph. It sits
// entirely outside the consistency core: the graph is serialized to text,
// the reply is free text, and a provider failure degrades to a fallback
// message so the conversation keeps going.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/agenthands/lattice/internal/core/graph"
	"github.com/agenthands/lattice/internal/core/model"
	"github.com/agenthands/lattice/internal/llm"
)

// FallbackReply is returned when the provider call fails.
const FallbackReply = "I couldn't reach the language model just now. Please try again in a moment."

type Chat struct {
	LLM    llm.LLMClient
	Prompt string
	Logger *log.Logger
}

func NewChat(llmClient llm.LLMClient, prompt string, logger *log.Logger) *Chat {
	return &Chat{
		LLM:    llmClient,
		Prompt: prompt,
		Logger: logger,
	}
}

// Reply answers message against the graph. It never returns an error: on
// provider failure the fallback reply is returned and the cause is logged.
func (c *Chat) Reply(ctx context.Context, message string, g model.Graph) string {
	prompt := fmt.Sprintf(c.Prompt, serializeGraph(g), message)

	response, err := c.LLM.Generate(ctx, prompt)
	if err != nil {
		c.Logger.Warn("chat generation failed, using fallback reply", "err", err)
		return FallbackReply
	}
	return strings.TrimSpace(response)
}

func serializeGraph(g model.Graph) string {
	var sb strings.Builder
	sb.WriteString("Entities:\n")
	for _, n := range g.Nodes {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", n.Name, n.Type, n.Description)
	}
	sb.WriteString("Relationships:\n")
	byID := make(map[string]model.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}
	for _, l := range g.Links {
		src := byID[graph.ResolveID(l.Source)]
		dst := byID[graph.ResolveID(l.Target)]
		fmt.Fprintf(&sb, "- %s %s %s\n", src.Name, l.Relationship, dst.Name)
	}
	return sb.String()
}
