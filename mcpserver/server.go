package mcpserver

import (
	"fmt"
	"net/http"

	mcp "github.com/mark3labs/mcp-go/mcp"
	srv "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"webscout/orchestrator"
)

// Server exposes the search and fetch tools over the MCP streamable HTTP
// transport.
type Server struct {
	handler http.Handler
	orch    *orchestrator.Orchestrator
	logger  *zap.Logger
}

func NewServer(orch *orchestrator.Orchestrator, logger *zap.Logger) (*Server, error) {
	if orch == nil {
		return nil, fmt.Errorf("orchestrator is required")
	}

	mcpServer := srv.NewMCPServer(
		"webscout",
		"1.0.0",
		srv.WithToolCapabilities(true),
		srv.WithInstructions("Use search_and_fetch for web searches with page summaries, search for bare results, and fetch to read a single page."),
		srv.WithRecovery(),
	)

	s := &Server{
		orch:   orch,
		logger: logger.Named("mcp"),
	}

	searchAndFetchTool := mcp.NewTool(
		"search_and_fetch",
		mcp.WithDescription("Search the web using DuckDuckGo, fetch every result page concurrently, and return results with title, url, snippet, and a fetched summary."),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("The search query string."),
		),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of results to return (default 3, capped at 10)."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
	mcpServer.AddTool(searchAndFetchTool, s.handleSearchAndFetch)

	searchTool := mcp.NewTool(
		"search",
		mcp.WithDescription("Search the web using DuckDuckGo and return results without fetching the pages."),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("The search query string."),
		),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of results to return (default 3, capped at 10)."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
	mcpServer.AddTool(searchTool, s.handleSearch)

	fetchTool := mcp.NewTool(
		"fetch",
		mcp.WithDescription("Fetch a webpage and return its clean text content."),
		mcp.WithString(
			"url",
			mcp.Required(),
			mcp.Description("The URL to fetch and extract content from."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
	mcpServer.AddTool(fetchTool, s.handleFetch)

	s.handler = srv.NewStreamableHTTPServer(mcpServer)
	return s, nil
}

// Handler returns the HTTP handler serving the MCP transport.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start blocks serving the MCP endpoint on the given port.
func (s *Server) Start(port int) error {
	s.logger.Info("starting MCP server", zap.Int("port", port))
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s.handler)
}
