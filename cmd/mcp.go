package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/evelynxu/marksearch/internal/logger"
	"github.com/evelynxu/marksearch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for LLM integration",
	Long: `Start a Model Context Protocol (MCP) server over stdio so LLM clients can
search your bookmark index.

Tools:
- search_bookmarks: semantic search with an optional result limit
- list_bookmarks: list everything in the index
- delete_bookmark: remove a bookmark by URL

To use with Claude Desktop, add this to your claude_desktop_config.json:
{
  "mcpServers": {
    "marksearch": {
      "command": "marksearch",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(_ *cobra.Command, _ []string) error {
	engine, err := newSearchEngine()
	if err != nil {
		return err
	}

	logger.Info("Starting MCP server...")
	bookmarkServer := mcp.NewBookmarkServer(appConfig, bookmarkRepo, engine)

	logger.Info("MCP server ready. Listening on stdio...")
	if err := server.ServeStdio(bookmarkServer.GetMCPServer()); err != nil {
		if err.Error() != "EOF" {
			logger.Error("MCP server error: %v", err)
			return err
		}
	}

	logger.Info("MCP server shutting down")
	return nil
}
