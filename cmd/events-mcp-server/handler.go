package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/open-ug/cloudnative-kampala/internal/events"
	"github.com/open-ug/cloudnative-kampala/internal/web"
)

// ListEventsParams defines the input parameters for list_events
type ListEventsParams struct {
	Status string `json:"status,omitempty" jsonschema:"Optional filter: upcoming, past or ongoing"`
}

// GetEventParams defines the input parameters for get_event
type GetEventParams struct {
	ID string `json:"id" jsonschema:"The event id, e.g. observability-night"`
}

// toolHandlers answers tool calls from a loaded catalog.
type toolHandlers struct {
	catalog *events.Catalog
	logger  *zap.Logger
}

// HandleListEvents handles the list_events tool call
func (h *toolHandlers) HandleListEvents(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params ListEventsParams,
) (*mcp.CallToolResult, any, error) {
	h.logger.Debug("list_events", zap.String("status", params.Status))

	list := h.catalog.All()
	if params.Status != "" {
		status, err := events.ParseStatus(params.Status)
		if err != nil {
			return errorResult(err), nil, nil
		}
		list = h.catalog.ByStatus(status)
	}

	views := make([]web.EventView, 0, len(list))
	for _, e := range list {
		views = append(views, web.NewEventView(e))
	}
	return jsonResult(map[string]any{"events": views, "count": len(views)})
}

// HandleGetEvent handles the get_event tool call
func (h *toolHandlers) HandleGetEvent(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params GetEventParams,
) (*mcp.CallToolResult, any, error) {
	if params.ID == "" {
		return nil, nil, fmt.Errorf("id parameter is required")
	}

	e, ok := h.catalog.Find(params.ID)
	if !ok {
		h.logger.Debug("get_event miss", zap.String("id", params.ID))
		return errorResult(fmt.Errorf("event %q not found", params.ID)), nil, nil
	}
	return jsonResult(web.NewEventView(e))
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)},
		},
		IsError: true,
	}
}
