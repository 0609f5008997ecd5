package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"newsrag/config"
	"newsrag/internal/adapter/embedding"
	"newsrag/internal/adapter/store"
	"newsrag/internal/port"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "newsrag",
	Short: "News summary engine - fetch, index and query news with retrieval-augmented generation",
	Long: `newsrag fetches articles from RSS feeds, indexes them into a local
vector store, and answers questions by retrieving the most relevant
articles and summarizing them with a local LLM.

Example usage:
  newsrag fetch                       # Fetch feeds and index new articles
  newsrag ask "AI developments"       # Summarize relevant news
  newsrag search -q "elections"       # Raw retrieval without generation`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./newsrag.yaml)")
}

func GetConfig() *config.Config {
	return cfg
}

// newEmbedder builds the configured embedding provider.
func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "ollama":
		return embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL)
	case "openai":
		return embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model)
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
}

// openCollection opens the vector store and binds the configured collection.
func openCollection(cfg *config.Config) (*store.Collection, func(), error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open vector store: %w", err)
	}

	collection := store.NewCollection(db, cfg.Store.Collection, embedder)
	return collection, func() { db.Close() }, nil
}
