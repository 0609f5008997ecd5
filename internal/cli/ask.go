package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"newsrag/internal/adapter/llm"
	"newsrag/internal/domain"
	"newsrag/internal/usecase"
)

var askTopK int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Summarize relevant news for a question",
	Long: `Ask retrieves the most relevant indexed articles for the question and
generates a grounded summary with a local LLM. When the LLM is not
available the raw retrieved articles are shown instead.

Examples:
  newsrag ask "what happened in the AI industry this week"
  newsrag ask --top-k 10 "election results"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of articles to retrieve (default from config)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	query := strings.Join(args, " ")

	collection, closeStore, err := openCollection(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	generator := llm.NewOllamaLLM(cfg.LLM.BaseURL, cfg.LLM.Model)
	answerUC := usecase.NewAnswerUseCase(collection, generator)

	topK := cfg.Retrieve.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	answer, err := answerUC.Answer(query, topK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Println(answer.Summary)
	if answer.Status == domain.StatusNoData || answer.Status == domain.StatusNoResults {
		return nil
	}

	if len(answer.Sources) > 0 {
		fmt.Printf("\nSources:\n")
		for i, s := range answer.Sources {
			line := fmt.Sprintf("  [%d] %s", i+1, s.Title)
			if s.Source != "" {
				line += fmt.Sprintf(" (%s", s.Source)
				if s.Date != "" {
					line += ", " + s.Date
				}
				line += ")"
			}
			fmt.Println(line)
			if s.URL != "" {
				fmt.Printf("      %s\n", s.URL)
			}
		}
	}

	return nil
}
