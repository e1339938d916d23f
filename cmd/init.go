package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evelynxu/marksearch/internal/config"
)

var (
	initDataDir        string
	initOllamaEndpoint string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize marksearch configuration",
	Long: `Create the configuration file and data directory.

By default the configuration lives in your user config directory and the
bookmark database in ~/.local/share/marksearch.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initDataDir, "data-dir", "", "Directory for the bookmark database")
	initCmd.Flags().StringVar(&initOllamaEndpoint, "ollama-endpoint", "", "Ollama API endpoint (default: http://localhost:11434)")
}

func runInit(_ *cobra.Command, _ []string) error {
	cfg, err := config.InitializeConfig(initDataDir, initOllamaEndpoint)
	if err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	configPath, _ := config.GetConfigPath()
	fmt.Printf("Configuration written to %s\n", configPath)
	fmt.Printf("Data directory: %s\n", cfg.DataDirectory)
	fmt.Printf("Embedding provider: %s (model: %s)\n", cfg.EmbeddingProvider, cfg.EmbeddingModel)
	fmt.Println("\nRun 'marksearch reindex <bookmarks-file>' to build the index.")
	return nil
}
