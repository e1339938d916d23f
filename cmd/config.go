package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evelynxu/marksearch/internal/config"
	interrors "github.com/evelynxu/marksearch/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or modify configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it.

Supported keys:
  embedding-provider   ollama or openai
  embedding-model      model name passed to the provider
  ollama-endpoint      Ollama base URL
  vector-dimensions    expected embedding dimensionality
  max-text-tokens      token budget for normalized bookmark text
  scrape-timeout       per-page scrape timeout in seconds
  index-workers        concurrent scrape+embed workers
  debug                true or false`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "embedding-provider":
		if value != config.ProviderOllama && value != config.ProviderOpenAI {
			return fmt.Errorf("unknown provider %q (use %s or %s)", value, config.ProviderOllama, config.ProviderOpenAI)
		}
		cfg.EmbeddingProvider = value
	case "embedding-model":
		cfg.EmbeddingModel = value
	case "ollama-endpoint":
		cfg.OllamaEndpoint = value
	case "vector-dimensions":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("vector-dimensions must be a positive integer")
		}
		cfg.VectorDimensions = n
	case "max-text-tokens":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("max-text-tokens must be a positive integer")
		}
		cfg.MaxTextTokens = n
	case "scrape-timeout":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("scrape-timeout must be a positive integer")
		}
		cfg.ScrapeTimeoutSeconds = n
	case "index-workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("index-workers must be a positive integer")
		}
		cfg.IndexWorkers = n
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return interrors.ErrInvalidBoolean
		}
		cfg.Debug = b
	default:
		return fmt.Errorf("%w: %s", interrors.ErrUnknownConfigKey, key)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}
