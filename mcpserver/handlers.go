package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	mcp "github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"webscout/orchestrator"
	"webscout/search"
)

// ErrorMarker is the single-element sequence shape used when the search step
// itself fails.
type ErrorMarker struct {
	Error string `json:"error"`
}

// Message is the informational shape returned when a search yields nothing.
// Distinct from a result record so clients can distinguish by shape.
type Message struct {
	Message string `json:"message"`
}

func (s *Server) handleSearchAndFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	invocationID := uuid.NewString()

	query, limit, errResult := s.searchArguments(req)
	if errResult != nil {
		return errResult, nil
	}

	s.logger.Info("tool_invocation",
		zap.String("invocation_id", invocationID),
		zap.String("tool", "search_and_fetch"),
		zap.String("query", query),
		zap.Int("limit", limit),
	)

	results, err := s.orch.SearchAndFetch(ctx, query, limit)
	if err != nil {
		return s.renderSearchFailure(invocationID, err)
	}
	if len(results) == 0 {
		return newJSONResult([]Message{{Message: fmt.Sprintf("No results found for '%s'", query)}})
	}
	return newJSONResult(results)
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	invocationID := uuid.NewString()

	query, limit, errResult := s.searchArguments(req)
	if errResult != nil {
		return errResult, nil
	}

	s.logger.Info("tool_invocation",
		zap.String("invocation_id", invocationID),
		zap.String("tool", "search"),
		zap.String("query", query),
		zap.Int("limit", limit),
	)

	results, err := s.orch.Search(ctx, query, limit)
	if err != nil {
		return s.renderSearchFailure(invocationID, err)
	}
	if len(results) == 0 {
		return newJSONResult([]Message{{Message: fmt.Sprintf("No results found for '%s'", query)}})
	}
	return newJSONResult(results)
}

func (s *Server) handleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	invocationID := uuid.NewString()

	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("tool_invocation",
		zap.String("invocation_id", invocationID),
		zap.String("tool", "fetch"),
		zap.String("url", url),
	)

	return mcp.NewToolResultText(s.orch.Fetch(ctx, url)), nil
}

// searchArguments extracts and validates the query/limit pair shared by the
// two search tools. Validation failures come back as ready tool errors.
func (s *Server) searchArguments(req mcp.CallToolRequest) (string, int, *mcp.CallToolResult) {
	query, err := req.RequireString("query")
	if err != nil {
		return "", 0, mcp.NewToolResultError(err.Error())
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return "", 0, mcp.NewToolResultError("query must be a non-empty string")
	}

	limit := s.orch.DefaultLimit()
	if raw, ok := req.GetArguments()["limit"]; ok {
		n, ok := intArgument(raw)
		if !ok || n < 1 {
			return "", 0, mcp.NewToolResultError("limit must be a positive integer")
		}
		limit = n
	}

	return query, limit, nil
}

// renderSearchFailure converts a search-step failure into the one-element
// error-marker sequence; only argument validation surfaces as a tool error.
func (s *Server) renderSearchFailure(invocationID string, err error) (*mcp.CallToolResult, error) {
	if orchestrator.IsInvalidArgument(err) {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Warn("search_failed",
		zap.String("invocation_id", invocationID),
		zap.Error(err),
	)

	if search.IsTimeout(err) {
		return newJSONResult([]ErrorMarker{{Error: "Request timed out"}})
	}

	description := err.Error()
	var se *search.Error
	if errors.As(err, &se) {
		description = se.Description()
	}
	return newJSONResult([]ErrorMarker{{Error: "Search failed: " + description}})
}

func newJSONResult(payload any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(payload)
	if err != nil {
		return mcp.NewToolResultError("failed to encode response"), nil
	}
	return result, nil
}

// intArgument accepts the numeric encodings MCP clients produce. JSON
// numbers decode into float64; a fractional value is rejected rather than
// rounded.
func intArgument(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
