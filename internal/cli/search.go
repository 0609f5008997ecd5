package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchQuery string
	searchTopK  int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search indexed articles without generating a summary",
	Long: `Search runs raw semantic retrieval against the vector store and prints
the matching chunks with their similarity scores.

Examples:
  newsrag search -q "climate policy"
  newsrag search -q "chip manufacturing" --top-k 10 --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

// searchResult is the JSON output shape for one retrieved chunk.
type searchResult struct {
	Title  string  `json:"title"`
	Source string  `json:"source"`
	URL    string  `json:"url"`
	Date   string  `json:"date,omitempty"`
	Score  float64 `json:"score"`
	Text   string  `json:"text"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	collection, closeStore, err := openCollection(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	topK := cfg.Retrieve.TopK
	if searchTopK > 0 {
		topK = searchTopK
	}

	chunks, err := collection.Query(searchQuery, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	results := make([]searchResult, 0, len(chunks))
	for _, c := range chunks {
		results = append(results, searchResult{
			Title:  c.Metadata.Title,
			Source: c.Metadata.Source,
			URL:    c.Metadata.URL,
			Date:   c.Metadata.PublishedAt,
			Score:  c.Score,
			Text:   c.Text,
		})
	}

	if searchJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results for: %s\n\n", len(results), searchQuery)
	for i, r := range results {
		fmt.Printf("--- [%d] %s (score: %.2f) ---\n", i+1, r.Title, r.Score)
		if r.Source != "" {
			fmt.Printf("Source: %s", r.Source)
			if r.Date != "" {
				fmt.Printf(" | %s", r.Date)
			}
			fmt.Println()
		}
		if r.URL != "" {
			fmt.Printf("URL: %s\n", r.URL)
		}
		text := r.Text
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}

	return nil
}
