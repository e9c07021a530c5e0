package config

// Built-in capability prompts. Each is a fmt template; the placeholder order
// is part of the contract with the package that renders it.

// defaultExtractionPrompt takes one argument: the document text.
const defaultExtractionPrompt = `You are a knowledge graph extraction engine.
Read the document below and extract an entity-relationship graph.

Return ONLY a JSON object with this exact shape:
{
  "nodes": [
    {"id": "short-slug", "name": "Display Name", "type": "Person|Place|Concept|...", "description": "one sentence of context", "importance": 1}
  ],
  "links": [
    {"source": "node-id", "target": "node-id", "relationship": "verb_phrase"}
  ]
}

Rules:
- "id" must be a short lowercase slug, unique per node.
- "importance" is an integer from 1 (minor) to 10 (central).
- Every link's "source" and "target" must be ids from "nodes".

Document:
%s`

// defaultBridgePrompt takes one argument: the serialized component listing.
const defaultBridgePrompt = `A knowledge graph has split into disconnected clusters.
Propose plausible relationships that connect them.

Clusters:
%s

Return ONLY a JSON object with this exact shape:
{
  "links": [
    {"source": "node-id", "target": "node-id", "relationship": "verb_phrase"}
  ]
}

Rules:
- Use only node ids listed above.
- Each proposed link must connect two DIFFERENT clusters.
- Propose at most one link per pair of clusters. If no sensible connection
  exists, return {"links": []}.`

// defaultChatPrompt takes two arguments: the serialized graph and the user
// message.
const defaultChatPrompt = `You are an assistant answering questions about a knowledge graph.

Graph:
%s

Answer the user's question using only the graph above. Be concise.

Question: %s`
