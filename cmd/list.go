package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed bookmarks",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	bookmarks, err := bookmarkRepo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to list bookmarks: %w", err)
	}

	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks indexed yet. Run 'marksearch reindex <bookmarks-file>' first.")
		return nil
	}

	fmt.Printf("%d indexed bookmarks:\n\n", len(bookmarks))
	for _, bookmark := range bookmarks {
		fmt.Printf("%s\n  %s (indexed %s)\n", bookmark.Name, bookmark.URL, bookmark.LastUpdated.Format("2006-01-02 15:04"))
	}
	return nil
}
