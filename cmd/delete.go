package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <url>",
	Short: "Remove a bookmark from the index",
	Long:  `Remove a bookmark's embedding and content fingerprint. The next reindex of a file containing this URL will re-embed it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(_ *cobra.Command, args []string) error {
	url := args[0]
	if err := bookmarkRepo.Delete(url); err != nil {
		return fmt.Errorf("failed to delete %s: %w", url, err)
	}

	fmt.Printf("Deleted bookmark: %s\n", url)
	return nil
}
