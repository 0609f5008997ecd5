package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"newsrag/internal/adapter/chunker"
	"newsrag/internal/adapter/feed"
	"newsrag/internal/usecase"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch articles from configured feeds and index them",
	Long: `Fetch pulls every configured RSS feed, deduplicates the articles,
and indexes the new ones into the local vector store. Articles that are
already indexed are skipped, so fetch is safe to run repeatedly.

Examples:
  newsrag fetch              # Fetch and index all configured feeds`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

// barProgress adapts a terminal progress bar to the pipeline sink.
type barProgress struct {
	bar *progressbar.ProgressBar
}

func newBarProgress(description string) *barProgress {
	return &barProgress{
		bar: progressbar.NewOptions(100,
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		),
	}
}

func (p *barProgress) Report(fraction float64, message string) {
	p.bar.Describe(message)
	p.bar.Set(int(fraction * 100))
}

func (p *barProgress) Finish() {
	p.bar.Set(100)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if len(cfg.Feeds) == 0 {
		return fmt.Errorf("no feeds configured")
	}

	collection, closeStore, err := openCollection(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	fetcher := feed.NewRSSFetcher(0)

	fmt.Printf("Fetching %d feeds...\n", len(cfg.Feeds))
	fetchBar := newBarProgress("[cyan]Fetching[reset]")
	articles, err := fetcher.FetchAll(cfg.Feeds, fetchBar)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	fetchBar.Finish()

	for _, warning := range fetcher.Warnings() {
		fmt.Printf("Warning: %s\n", warning)
	}

	if len(articles) == 0 {
		fmt.Println("No articles fetched.")
		return nil
	}
	fmt.Printf("Fetched %d articles.\n\n", len(articles))

	builder := usecase.NewDocumentBuilder(
		chunker.NewRecursiveSplitter(cfg.Chunking.Size, cfg.Chunking.Overlap),
	)
	indexUC := usecase.NewIndexUseCase(builder, collection)

	indexBar := newBarProgress("[cyan]Indexing[reset]")
	indexed, err := indexUC.IndexArticles(articles, indexBar)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	indexBar.Finish()

	total, err := collection.Count()
	if err != nil {
		return fmt.Errorf("failed to read collection size: %w", err)
	}

	fmt.Printf("\nIndexing complete:\n")
	fmt.Printf("  New chunks indexed: %d\n", indexed)
	fmt.Printf("  Total in store:     %d\n", total)
	fmt.Printf("\nIndex stored at: %s\n", cfg.DBPath())
	return nil
}
