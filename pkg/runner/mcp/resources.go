package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/wins/pkg/daykey"
)

func registerResources(srv *server.MCPServer, h *handlers) {
	registerItemsResource(srv, h)
	registerDayTemplate(srv, h)
}

func registerItemsResource(srv *server.MCPServer, h *handlers) {
	resource := mcp.NewResource(
		"wins://items",
		"Tracked Items",
		mcp.WithResourceDescription("Active tracked items in display order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		items, err := h.svc.Items(ctx, true)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"items": items,
			"count": len(items),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDayTemplate(srv *server.MCPServer, h *handlers) {
	template := mcp.NewResourceTemplate(
		"wins://days/{day}",
		"Journal Day",
		mcp.WithTemplateDescription("One day with rating, journal text, wins, and streaks."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		raw := templateArg(request.Params.Arguments, "day")
		if raw == "" {
			return nil, fmt.Errorf("day is required")
		}
		day, err := daykey.Parse(raw)
		if err != nil {
			return nil, err
		}
		view, err := h.svc.Today(ctx, day)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, view)
	})
}

// templateArg reads a URI template variable, which arrives either as a
// string or as a single-element list.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
