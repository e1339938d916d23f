package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/evelynxu/marksearch/internal/config"
	"github.com/evelynxu/marksearch/internal/constants"
	"github.com/evelynxu/marksearch/internal/logger"
	"github.com/evelynxu/marksearch/internal/models"
	"github.com/evelynxu/marksearch/internal/search"
)

// BookmarkServer exposes bookmark search over the Model Context Protocol so
// LLM clients can query the index directly.
type BookmarkServer struct {
	cfg       *config.Config
	repo      *models.BookmarkRepository
	engine    *search.Engine
	mcpServer *server.MCPServer
}

func NewBookmarkServer(cfg *config.Config, repo *models.BookmarkRepository, engine *search.Engine) *BookmarkServer {
	bs := &BookmarkServer{
		cfg:    cfg,
		repo:   repo,
		engine: engine,
	}

	bs.mcpServer = server.NewMCPServer(
		"marksearch",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	bs.registerTools()

	return bs
}

func (s *BookmarkServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *BookmarkServer) registerTools() {
	searchTool := mcp.NewTool("search_bookmarks",
		mcp.WithDescription("Search indexed bookmarks by semantic similarity to a free-text query"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text search query"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of results (default: %d)", constants.DefaultSearchLimit)),
		),
	)
	s.mcpServer.AddTool(searchTool, s.handleSearchBookmarks)

	listTool := mcp.NewTool("list_bookmarks",
		mcp.WithDescription("List all indexed bookmarks"),
	)
	s.mcpServer.AddTool(listTool, s.handleListBookmarks)

	deleteTool := mcp.NewTool("delete_bookmark",
		mcp.WithDescription("Remove a bookmark and its embedding from the index"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the bookmark to delete"),
		),
	)
	s.mcpServer.AddTool(deleteTool, s.handleDeleteBookmark)
}

func (s *BookmarkServer) handleSearchBookmarks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: search_bookmarks")

	query, err := request.RequireString("query")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'query': %w", err)
	}

	limit := request.GetInt("limit", constants.DefaultSearchLimit)
	if limit < 1 {
		limit = constants.DefaultSearchLimit
	}

	results, err := s.engine.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No bookmarks found matching your query."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d bookmarks:\n", len(results))
	for i, result := range results {
		fmt.Fprintf(&sb, "\n%d. %s\n   URL: %s\n   Similarity: %.4f\n", i+1, result.Name, result.URL, result.Score)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *BookmarkServer) handleListBookmarks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: list_bookmarks")

	bookmarks, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	if len(bookmarks) == 0 {
		return mcp.NewToolResultText("No bookmarks indexed yet."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d indexed bookmarks:\n", len(bookmarks))
	for _, bookmark := range bookmarks {
		fmt.Fprintf(&sb, "\n- %s\n  %s\n", bookmark.Name, bookmark.URL)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *BookmarkServer) handleDeleteBookmark(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: delete_bookmark")

	url, err := request.RequireString("url")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'url': %w", err)
	}

	if err := s.repo.Delete(url); err != nil {
		return nil, fmt.Errorf("failed to delete bookmark: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted bookmark: %s", url)), nil
}
