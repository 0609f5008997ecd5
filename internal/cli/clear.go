package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all indexed articles",
	Long: `Clear deletes every chunk from the vector store. The configuration and
feed list are untouched; the next fetch rebuilds the index from scratch.`,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if _, err := os.Stat(cfg.DBPath()); os.IsNotExist(err) {
		fmt.Println("Nothing to clear, no index found.")
		return nil
	}

	if !clearForce {
		fmt.Print("This removes all indexed articles. Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	collection, closeStore, err := openCollection(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := collection.Clear(); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	fmt.Println("Index cleared.")
	return nil
}
