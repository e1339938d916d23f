package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/evelynxu/marksearch/internal/constants"
)

// Embedding provider names accepted in the configuration.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

type Config struct {
	DataDirectory string `json:"data_directory,omitempty"`
	DatabasePath  string `json:"database_path,omitempty"`

	// Embedding settings
	EmbeddingProvider string `json:"embedding_provider"`
	OllamaEndpoint    string `json:"ollama_endpoint"`
	OpenAIEndpoint    string `json:"openai_endpoint,omitempty"`
	EmbeddingModel    string `json:"embedding_model"`
	VectorDimensions  int    `json:"vector_dimensions"`

	// Text preparation settings
	TokenizerEncoding string `json:"tokenizer_encoding"`
	MaxTextTokens     int    `json:"max_text_tokens"`

	// Indexing settings
	ScrapeTimeoutSeconds int `json:"scrape_timeout_seconds"`
	IndexWorkers         int `json:"index_workers"`

	Debug bool `json:"debug"`
}

// getDefaultConfig returns a fresh copy of the default configuration
func getDefaultConfig() Config {
	return Config{
		DataDirectory: "", // Will be set to ~/.local/share/marksearch
		DatabasePath:  "", // Will be set to DataDirectory/bookmarks.db

		EmbeddingProvider: ProviderOllama,
		OllamaEndpoint:    "http://localhost:11434",
		OpenAIEndpoint:    "https://api.openai.com/v1",
		EmbeddingModel:    "nomic-embed-text",
		VectorDimensions:  768,

		TokenizerEncoding: "cl100k_base",
		MaxTextTokens:     constants.DefaultMaxTextTokens,

		ScrapeTimeoutSeconds: 15,
		IndexWorkers:         constants.DefaultIndexWorkers,

		Debug: false,
	}
}

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "marksearch", "config.json"), nil
}

func GetDefaultDataDirectory() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", ".marksearch")
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "marksearch")
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		cfg := getDefaultConfig()
		applyDefaults(&cfg)
		return &cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills empty fields so configs written by older versions keep working.
func applyDefaults(cfg *Config) {
	defaults := getDefaultConfig()

	if cfg.DataDirectory == "" {
		cfg.DataDirectory = GetDefaultDataDirectory()
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.DataDirectory, "bookmarks.db")
	}
	if cfg.EmbeddingProvider == "" {
		cfg.EmbeddingProvider = defaults.EmbeddingProvider
	}
	if cfg.OllamaEndpoint == "" {
		cfg.OllamaEndpoint = defaults.OllamaEndpoint
	}
	if cfg.OpenAIEndpoint == "" {
		cfg.OpenAIEndpoint = defaults.OpenAIEndpoint
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = defaults.EmbeddingModel
	}
	if cfg.VectorDimensions == 0 {
		cfg.VectorDimensions = defaults.VectorDimensions
	}
	if cfg.TokenizerEncoding == "" {
		cfg.TokenizerEncoding = defaults.TokenizerEncoding
	}
	if cfg.MaxTextTokens == 0 {
		cfg.MaxTextTokens = defaults.MaxTextTokens
	}
	if cfg.ScrapeTimeoutSeconds == 0 {
		cfg.ScrapeTimeoutSeconds = defaults.ScrapeTimeoutSeconds
	}
	if cfg.IndexWorkers == 0 {
		cfg.IndexWorkers = defaults.IndexWorkers
	}
}

func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create data directory if it doesn't exist
	if cfg.DataDirectory != "" {
		if err := os.MkdirAll(cfg.DataDirectory, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write config file with secure permissions
	if err := os.WriteFile(configPath, data, constants.ConfigFileMode); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func InitializeConfig(dataDir, ollamaEndpoint string) (*Config, error) {
	cfg := getDefaultConfig()

	if dataDir != "" {
		cfg.DataDirectory = dataDir
	} else {
		cfg.DataDirectory = GetDefaultDataDirectory()
	}

	cfg.DatabasePath = filepath.Join(cfg.DataDirectory, "bookmarks.db")

	if ollamaEndpoint != "" {
		cfg.OllamaEndpoint = ollamaEndpoint
	}

	if err := Save(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) GetDatabasePath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(c.DataDirectory, "bookmarks.db")
}

func (c *Config) GetOllamaAPIURL(endpoint string) string {
	return fmt.Sprintf("%s/api/%s", c.OllamaEndpoint, endpoint)
}
