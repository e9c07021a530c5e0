package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ServerConfig struct {
	Addr     string `toml:"addr"`
	LogLevel string `toml:"log_level"`
}

// Prompts are fmt templates for the three external capabilities. Each has a
// built-in default; config entries override per deployment.
type Prompts struct {
	Extraction string `toml:"extraction"`
	Bridge     string `toml:"bridge"`
	Chat       string `toml:"chat"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Server   ServerConfig   `toml:"server"`
	Prompts  Prompts        `toml:"prompts"`
}

// Default returns the configuration used when no file is present: Ollama on
// localhost, no persistence, built-in prompts.
func Default() *Config {
	cfg := &Config{
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.1",
			BaseURL:  "http://localhost:11434",
		},
		Server: ServerConfig{
			Addr:     ":8080",
			LogLevel: "info",
		},
	}
	cfg.applyPromptDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	cfg.applyPromptDefaults()
	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when set.
func (c *Config) ApplyEnv() {
	for env, dst := range map[string]*string{
		"LLM_PROVIDER":        &c.LLM.Provider,
		"LLM_MODEL":           &c.LLM.Model,
		"LLM_EMBEDDING_MODEL": &c.LLM.EmbeddingModel,
		"LLM_API_KEY":         &c.LLM.APIKey,
		"LLM_BASE_URL":        &c.LLM.BaseURL,
		"MEMGRAPH_URI":        &c.Memgraph.URI,
		"MEMGRAPH_USER":       &c.Memgraph.User,
		"MEMGRAPH_PASSWORD":   &c.Memgraph.Password,
		"SERVER_ADDR":         &c.Server.Addr,
		"LOG_LEVEL":           &c.Server.LogLevel,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}

func (c *Config) applyPromptDefaults() {
	if c.Prompts.Extraction == "" {
		c.Prompts.Extraction = defaultExtractionPrompt
	}
	if c.Prompts.Bridge == "" {
		c.Prompts.Bridge = defaultBridgePrompt
	}
	if c.Prompts.Chat == "" {
		c.Prompts.Chat = defaultChatPrompt
	}
}
