package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evelynxu/marksearch/internal/config"
	"github.com/evelynxu/marksearch/internal/database"
	"github.com/evelynxu/marksearch/internal/embeddings"
	"github.com/evelynxu/marksearch/internal/logger"
	"github.com/evelynxu/marksearch/internal/models"
	"github.com/evelynxu/marksearch/internal/search"
)

var (
	appConfig    *config.Config
	db           *database.DB
	bookmarkRepo *models.BookmarkRepository
	debugFlag    bool
	Version      = "dev" // Version is set from main.go
)

var rootCmd = &cobra.Command{
	Use:     "marksearch",
	Short:   "Semantic search over your browser bookmarks",
	Version: Version,
	Long: `marksearch indexes an exported Chrome bookmark tree, enriches each bookmark
with scraped page text, embeds it, and answers free-text queries by cosine
similarity over the stored vectors.

First time users should run 'marksearch init' to set up the configuration.`,
}

func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initAppConfig)
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

func initAppConfig() {
	// Skip initialization for init and config commands
	if len(os.Args) > 1 && (os.Args[1] == "init" || os.Args[1] == "config") {
		return
	}

	var err error
	appConfig, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		fmt.Fprintf(os.Stderr, "Please run 'marksearch init' to set up the configuration.\n")
		os.Exit(1)
	}

	// Enable debug mode from flag or config
	if debugFlag || appConfig.Debug {
		logger.SetDebugMode(true)
		logger.Debug("Data directory: %s", appConfig.DataDirectory)
		logger.Debug("Embedding provider: %s", appConfig.EmbeddingProvider)
		logger.Debug("Embedding model: %s", appConfig.EmbeddingModel)
		logger.Debug("Vector dimensions: %d", appConfig.VectorDimensions)
	}

	db, err = database.New(appConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing database: %v\n", err)
		os.Exit(1)
	}

	bookmarkRepo = models.NewBookmarkRepository(db.Conn())
}

// newEmbedder is deferred to the commands that need one so that commands
// like list and delete work without embedding credentials.
func newEmbedder() (embeddings.Provider, error) {
	embedder, err := embeddings.NewProvider(appConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}
	return embedder, nil
}

func newSearchEngine() (*search.Engine, error) {
	embedder, err := newEmbedder()
	if err != nil {
		return nil, err
	}
	return search.NewEngine(bookmarkRepo, embedder), nil
}
