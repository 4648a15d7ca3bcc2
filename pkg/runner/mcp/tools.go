package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/wins/pkg/app"
	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/journal"
)

// handlers serves tool and resource calls from an app.Service.
type handlers struct {
	svc   *app.Service
	today func() daykey.Key
}

func registerTools(srv *server.MCPServer, h *handlers, readOnly bool) {
	srv.AddTools(h.tools(readOnly)...)
}

// tools lists the served tools. Read-only servers leave out save_day.
func (h *handlers) tools(readOnly bool) []server.ServerTool {
	tools := []server.ServerTool{
		{
			Tool: mcp.NewTool(
				"get_day",
				mcp.WithDescription("Fetch one day: its rating, journal text, tracked wins with streaks, and the overall streak."),
				mcp.WithString("day",
					mcp.Description("Day as YYYY-MM-DD. Defaults to today."),
				),
			),
			Handler: h.getDay,
		},
		{
			Tool: mcp.NewTool(
				"get_streaks",
				mcp.WithDescription("Current overall and per-item streaks ending on a day."),
				mcp.WithString("day",
					mcp.Description("Day as YYYY-MM-DD. Defaults to today."),
				),
			),
			Handler: h.getStreaks,
		},
		{
			Tool: mcp.NewTool(
				"get_progress",
				mcp.WithDescription("Calendar of a year with per-day classification and a rating summary."),
				mcp.WithNumber("year",
					mcp.Description("Four digit year. Defaults to the current year."),
				),
			),
			Handler: h.getProgress,
		},
		{
			Tool: mcp.NewTool(
				"list_items",
				mcp.WithDescription("List tracked items in display order."),
				mcp.WithBoolean("all",
					mcp.Description("Include retired items."),
				),
			),
			Handler: h.listItems,
		},
	}
	if readOnly {
		return tools
	}

	return append(tools, server.ServerTool{
		Tool: mcp.NewTool(
			"save_day",
			mcp.WithDescription("Record a day. Fields that are omitted keep their stored value."),
			mcp.WithString("day",
				mcp.Required(),
				mcp.Description("Day as YYYY-MM-DD. Days after today are refused."),
			),
			mcp.WithNumber("rating",
				mcp.Description("Rating from 1 to 5, or 0 to clear."),
			),
			mcp.WithString("text",
				mcp.Description("Free journal text. Replaces the stored text."),
			),
			mcp.WithString("wins",
				mcp.Description("Comma separated item names to mark completed, each optionally NAME:note."),
			),
			mcp.WithString("undo",
				mcp.Description("Comma separated item names to mark not completed."),
			),
		),
		Handler: h.saveDay,
	})
}

func (h *handlers) day(request mcp.CallToolRequest) (daykey.Key, error) {
	raw := strings.TrimSpace(request.GetString("day", ""))
	if raw == "" {
		return h.today(), nil
	}
	return daykey.Parse(raw)
}

func (h *handlers) getDay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := h.day(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view, err := h.svc.Today(ctx, day)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(view)
}

type streakDTO struct {
	Day     daykey.Key      `json:"day"`
	Overall int             `json:"overall"`
	Items   []itemStreakDTO `json:"items"`
}

type itemStreakDTO struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Streak int    `json:"streak"`
}

func (h *handlers) getStreaks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := h.day(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view, err := h.svc.Today(ctx, day)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dto := streakDTO{Day: view.Day, Overall: view.Overall, Items: make([]itemStreakDTO, 0, len(view.Items))}
	for _, st := range view.Items {
		dto.Items = append(dto.Items, itemStreakDTO{ID: st.Item.ID, Name: st.Item.Name, Streak: st.Streak})
	}
	return toJSONResult(dto)
}

func (h *handlers) getProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year := request.GetInt("year", 0)
	if year == 0 {
		year = h.today().Year()
	}
	if year < 1 || year > 9999 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid year %d", year)), nil
	}
	view, err := h.svc.Progress(ctx, year)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(view)
}

func (h *handlers) listItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := h.svc.Items(ctx, !request.GetBool("all", false))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(map[string]any{"items": items, "count": len(items)})
}

func (h *handlers) saveDay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("day")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	day, err := daykey.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ed, err := h.svc.Editor(ctx, h.today())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := ed.Navigate(ctx, day, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	if _, ok := args["rating"]; ok {
		if err := ed.SetRating(request.GetInt("rating", 0)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if _, ok := args["text"]; ok {
		ed.SetText(request.GetString("text", ""))
	}
	items := ed.Items()
	for _, w := range splitList(request.GetString("wins", "")) {
		name, note, _ := strings.Cut(w, ":")
		it, ok := journal.FindItem(items, name)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown item %q", name)), nil
		}
		if err := ed.SetWin(it.ID, true, note); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	for _, name := range splitList(request.GetString("undo", "")) {
		it, ok := journal.FindItem(items, name)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown item %q", name)), nil
		}
		if err := ed.SetWin(it.ID, false, ""); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	if !ed.Dirty() {
		return toJSONResult(ed.View())
	}
	if _, err := ed.Save(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(ed.View())
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
