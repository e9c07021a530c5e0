package chat

import (
	"context"
	"errors"
	"io"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/agenthands/lattice/internal/core/model"
)

type MockLLM struct {
	Response string
	Err      error
	Prompt   string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func testLogger() *charmlog.Logger {
	return charmlog.New(io.Discard)
}

func testGraph() model.Graph {
	return model.Graph{
		Nodes: []model.Node{
			{ID: "alice", Name: "Alice", Type: "Person", Description: "an engineer"},
			{ID: "acme", Name: "Acme", Type: "Company", Description: "a company"},
		},
		Links: []model.Link{
			{Source: model.ID("alice"), Target: model.ID("acme"), Relationship: "works_at"},
		},
	}
}

func TestReply(t *testing.T) {
	mockLLM := &MockLLM{Response: "  Alice works at Acme.\n"}
	c := NewChat(mockLLM, "graph:\n%s\nquestion: %s", testLogger())

	reply := c.Reply(context.Background(), "Where does Alice work?", testGraph())

	assert.Equal(t, "Alice works at Acme.", reply)
	assert.Contains(t, mockLLM.Prompt, "Where does Alice work?")
	assert.Contains(t, mockLLM.Prompt, "Alice (Person): an engineer")
	assert.Contains(t, mockLLM.Prompt, "Alice works_at Acme")
}

func TestReply_FallbackOnError(t *testing.T) {
	mockLLM := &MockLLM{Err: errors.New("provider down")}
	c := NewChat(mockLLM, "%s %s", testLogger())

	reply := c.Reply(context.Background(), "hello?", testGraph())

	assert.Equal(t, FallbackReply, reply)
}
