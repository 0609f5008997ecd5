package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the news engine.
type Config struct {
	Store     StoreConfig       `yaml:"store"`
	Chunking  ChunkingConfig    `yaml:"chunking"`
	Embedding EmbeddingConfig   `yaml:"embedding"`
	Retrieve  RetrieveConfig    `yaml:"retrieve"`
	LLM       LLMConfig         `yaml:"llm"`
	Feeds     map[string]string `yaml:"feeds"`
}

// StoreConfig holds vector store configuration.
type StoreConfig struct {
	Dir        string `yaml:"dir"`        // data directory for the database file
	Collection string `yaml:"collection"` // logical collection name
}

// ChunkingConfig holds text splitting configuration.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "ollama", "openai", "mock"
	Model     string `yaml:"model"`       // e.g., "all-minilm"
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k"`
}

// LLMConfig holds summary generation configuration.
type LLMConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Dir:        "./data",
			Collection: "news_articles",
		},
		Chunking: ChunkingConfig{
			Size:    1000,
			Overlap: 200,
		},
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			Model:     "all-minilm",
			APIKeyEnv: "OPENAI_API_KEY",
			BaseURL:   "http://localhost:11434/v1",
			Dimension: 384,
			BatchSize: 100,
		},
		Retrieve: RetrieveConfig{
			TopK: 5,
		},
		LLM: LLMConfig{
			Model:   "llama3.2",
			BaseURL: "http://localhost:11434",
		},
		Feeds: map[string]string{
			"BBC World":      "http://feeds.bbci.co.uk/news/world/rss.xml",
			"BBC Technology": "http://feeds.bbci.co.uk/news/technology/rss.xml",
			"Reuters World":  "https://feeds.reuters.com/Reuters/worldNews",
			"TechCrunch":     "https://techcrunch.com/feed/",
			"Hacker News":    "https://hnrss.org/frontpage",
			"Ars Technica":   "https://feeds.arstechnica.com/arstechnica/index",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for newsrag.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "newsrag.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".newsrag", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DBPath returns the path to the vector database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.Store.Dir, "news.db")
}

// EnsureDataDir ensures the data directory exists.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.Store.Dir, 0755)
}
