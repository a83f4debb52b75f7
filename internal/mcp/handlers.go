package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/scenecoach/internal/coach"
	"github.com/ziadkadry99/scenecoach/internal/screenplay"
)

// handleCoachTurn runs one stateless coaching turn.
func (s *Server) handleCoachTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := coach.Request{
		Style:         coach.ParseStyle(request.GetString("style", "")),
		Intent:        coach.ParseIntent(request.GetString("intent", "")),
		Mode:          coach.ParseMode(request.GetString("mode", "")),
		SceneText:     request.GetString("scene_text", ""),
		SceneSlugline: request.GetString("scene_slugline", ""),
		SelectionText: request.GetString("selection_text", ""),
		ScriptTitle:   request.GetString("script_title", ""),
		UserMessage:   strings.TrimSpace(request.GetString("user_message", "")),
	}

	if fountain := request.GetString("fountain", ""); fountain != "" {
		if line := request.GetInt("line", 0); line > 0 {
			scenes := screenplay.ParseScenes(fountain)
			cc := screenplay.ComputeCursorContext(fountain, line, request.GetInt("column", 1), scenes)
			req.Cursor = &cc
			if req.SceneText == "" && cc.SceneIndex > 0 {
				req.SceneText, _ = screenplay.SceneText(fountain, scenes, cc.SceneIndex)
			}
			if req.SceneSlugline == "" {
				req.SceneSlugline = cc.SceneSlugline
			}
		}
	}

	if req.Mode == coach.ModeSelection && strings.TrimSpace(req.SelectionText) == "" {
		return mcp.NewToolResultError("selection mode requires selection_text"), nil
	}
	if req.Mode != coach.ModeSelection && req.Mode != coach.ModeProfile && strings.TrimSpace(req.SceneText) == "" {
		return mcp.NewToolResultError("scene_text (or fountain with line) is required"), nil
	}

	res, err := s.coach.Run(ctx, req)
	if err != nil {
		var exhausted *coach.ContractExhaustedError
		if errors.As(err, &exhausted) {
			msg := exhausted.Message()
			if exhausted.Last != nil {
				msg += ": " + exhausted.Last.Error()
			}
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("coach turn failed: %v", err)), nil
	}

	return mcp.NewToolResultText(res.Text), nil
}

type validation struct {
	Valid              bool             `json:"valid"`
	Violation          *coach.Violation `json:"violation,omitempty"`
	StartsWithQuestion bool             `json:"starts_with_question"`
	HasQuickRead       bool             `json:"has_quick_read"`
}

// handleValidateResponse reports the validator verdict for a reply.
func (s *Server) handleValidateResponse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	v := coach.Validate(coach.ParseStyle(request.GetString("style", "")), text)
	return jsonResult(validation{
		Valid:              v == nil,
		Violation:          v,
		StartsWithQuestion: coach.StartsWithQuestion(text),
		HasQuickRead:       coach.HasQuickReadSection(text),
	})
}

// handleCursorContext computes the editor context at a position.
func (s *Server) handleCursorContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fountain, err := request.RequireString("fountain")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: fountain"), nil
	}
	line := request.GetInt("line", 0)
	if line < 1 {
		return mcp.NewToolResultError("line must be a positive integer"), nil
	}

	cc := screenplay.ComputeCursorContext(fountain, line, request.GetInt("column", 1), screenplay.ParseScenes(fountain))
	return jsonResult(cc)
}

// handleListCharacters lists the character cues of a document.
func (s *Server) handleListCharacters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fountain, err := request.RequireString("fountain")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: fountain"), nil
	}

	names := screenplay.CharacterNames(fountain)
	if len(names) == 0 {
		return mcp.NewToolResultText("No character cues found."), nil
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
