package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evelynxu/marksearch/internal/bookmarks"
	"github.com/evelynxu/marksearch/internal/indexer"
	"github.com/evelynxu/marksearch/internal/scrape"
	"github.com/evelynxu/marksearch/internal/textprep"
)

var reindexWorkers int

var reindexCmd = &cobra.Command{
	Use:   "reindex <bookmarks-file>",
	Short: "Index bookmarks from an exported Chrome bookmark file",
	Long: `Parse an exported Chrome Bookmarks file, scrape each bookmarked page, and
embed any bookmark whose content changed since the last run.

Unchanged bookmarks are detected by content fingerprint and skipped without
calling the embedding API, so re-running on the same file is cheap.

Example:
  marksearch reindex ~/Library/Application\ Support/Google/Chrome/Default/Bookmarks`,
	Args: cobra.ExactArgs(1),
	RunE: runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
	reindexCmd.Flags().IntVarP(&reindexWorkers, "workers", "w", 0, "Concurrent scrape+embed workers (default: from config)")
}

func runReindex(cmd *cobra.Command, args []string) error {
	records, err := bookmarks.ParseFile(args[0])
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No bookmarks found in file.")
		return nil
	}

	fmt.Printf("Found %d bookmarks. Indexing with model %s...\n", len(records), appConfig.EmbeddingModel)

	embedder, err := newEmbedder()
	if err != nil {
		return err
	}

	normalizer, err := textprep.NewNormalizer(appConfig.TokenizerEncoding, appConfig.MaxTextTokens)
	if err != nil {
		return err
	}

	workers := reindexWorkers
	if workers <= 0 {
		workers = appConfig.IndexWorkers
	}

	fetcher := scrape.NewScraper(time.Duration(appConfig.ScrapeTimeoutSeconds) * time.Second)
	ix := indexer.New(bookmarkRepo, fetcher, embedder, normalizer, workers)

	start := time.Now()
	stats, err := ix.Reindex(cmd.Context(), records)
	if err != nil {
		return fmt.Errorf("reindex aborted: %w", err)
	}

	fmt.Printf("\nReindex complete in %v:\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Indexed: %d\n", stats.Indexed)
	fmt.Printf("  Skipped (unchanged): %d\n", stats.Skipped)
	if stats.Failed > 0 {
		fmt.Printf("  Failed: %d (see log for details)\n", stats.Failed)
	}
	return nil
}
