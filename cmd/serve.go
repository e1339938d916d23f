package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evelynxu/marksearch/internal/api"
	"github.com/evelynxu/marksearch/internal/logger"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Start an HTTP API server exposing bookmark search via REST endpoints.

Endpoints:
  GET    /api/v1/health
  GET    /api/v1/search?q=<query>&limit=<n>
  GET    /api/v1/bookmarks
  DELETE /api/v1/bookmarks?url=<url>
  GET    /api/v1/stats

Examples:
  marksearch serve                           # localhost:8080
  marksearch serve --host 0.0.0.0 --port 3000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to bind the server to")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to bind the server to")
}

func runServe(_ *cobra.Command, _ []string) error {
	engine, err := newSearchEngine()
	if err != nil {
		return err
	}

	logger.Info("Initializing HTTP API server...")
	apiServer := api.NewAPIServer(appConfig, bookmarkRepo, engine)

	fmt.Printf("marksearch API server\n")
	fmt.Printf("  Server URL: http://%s:%d\n", serveHost, servePort)
	fmt.Printf("  Try: curl 'http://%s:%d/api/v1/search?q=example'\n", serveHost, servePort)

	return apiServer.Start(serveHost, servePort)
}
