package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evelynxu/marksearch/internal/constants"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search bookmarks by semantic similarity",
	Long: `Embed the query and rank all indexed bookmarks by cosine similarity.

Examples:
  marksearch search "rust async runtime"
  marksearch search "sourdough starter" --limit 10 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", constants.DefaultSearchLimit, "Maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	engine, err := newSearchEngine()
	if err != nil {
		return err
	}

	results, err := engine.Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No matching bookmarks found.")
		return nil
	}

	fmt.Printf("Found %d matching bookmarks:\n\n", len(results))
	for i, result := range results {
		fmt.Printf("%d. %s\n", i+1, result.Name)
		fmt.Printf("   URL: %s\n", result.URL)
		fmt.Printf("   Similarity: %.4f\n\n", result.Score)
	}
	return nil
}
