package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"newsrag/internal/adapter/llm"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index and service status",
	Long: `Stats reports the size of the local index and whether the embedding
and generation services are reachable.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	fmt.Printf("Collection:      %s\n", cfg.Store.Collection)
	fmt.Printf("Database:        %s\n", cfg.DBPath())

	if _, err := os.Stat(cfg.DBPath()); os.IsNotExist(err) {
		fmt.Println("Indexed chunks:  0 (no index yet, run 'newsrag fetch')")
	} else {
		collection, closeStore, err := openCollection(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		count, err := collection.Count()
		if err != nil {
			return fmt.Errorf("failed to read collection size: %w", err)
		}
		fmt.Printf("Indexed chunks:  %d\n", count)
	}

	fmt.Printf("Embedding model: %s (%s)\n", cfg.Embedding.Model, cfg.Embedding.Provider)
	fmt.Printf("Feeds:           %d configured\n", len(cfg.Feeds))

	generator := llm.NewOllamaLLM(cfg.LLM.BaseURL, cfg.LLM.Model)
	_, status := generator.Available()
	fmt.Printf("LLM:             %s\n", status)

	return nil
}
