package mcp

import "github.com/mark3labs/mcp-go/mcp"

// coachTurnTool defines the coach_turn MCP tool.
var coachTurnTool = mcp.NewTool("coach_turn",
	mcp.WithDescription("Ask the screenwriting coach about a scene or selection. Replies never contain rewritten screenplay lines."),
	mcp.WithString("style",
		mcp.Description("Coaching style (default director)"),
		mcp.Enum("socratic", "director"),
	),
	mcp.WithString("intent",
		mcp.Description("Explicit discussion request from the editor"),
		mcp.Enum("discuss_scene", "discuss_selection"),
	),
	mcp.WithString("mode",
		mcp.Description("Prompt framing (default scene)"),
		mcp.Enum("scene", "selection", "profile", "stuck"),
	),
	mcp.WithString("scene_text",
		mcp.Description("Text of the current scene"),
	),
	mcp.WithString("scene_slugline",
		mcp.Description("Scene heading, e.g. INT. KITCHEN - NIGHT"),
	),
	mcp.WithString("selection_text",
		mcp.Description("Selected text, for selection mode"),
	),
	mcp.WithString("script_title",
		mcp.Description("Title of the screenplay"),
	),
	mcp.WithString("user_message",
		mcp.Description("The writer's question or note"),
	),
	mcp.WithString("fountain",
		mcp.Description("Full document; with line set, the scene and cursor context are derived from it"),
	),
	mcp.WithNumber("line",
		mcp.Description("1-based cursor line in fountain"),
	),
	mcp.WithNumber("column",
		mcp.Description("1-based cursor column in fountain"),
	),
)

// validateResponseTool defines the validate_response MCP tool.
var validateResponseTool = mcp.NewTool("validate_response",
	mcp.WithDescription("Check a coaching reply against the rules of a style without calling a model."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Reply text to check"),
	),
	mcp.WithString("style",
		mcp.Description("Style whose rules apply (default director)"),
		mcp.Enum("socratic", "director"),
	),
)

// cursorContextTool defines the cursor_context MCP tool.
var cursorContextTool = mcp.NewTool("cursor_context",
	mcp.WithDescription("Describe the screenplay element, scene and speaking character at a cursor position."),
	mcp.WithString("fountain",
		mcp.Required(),
		mcp.Description("Full document text"),
	),
	mcp.WithNumber("line",
		mcp.Required(),
		mcp.Description("1-based line"),
	),
	mcp.WithNumber("column",
		mcp.Description("1-based column (default 1)"),
	),
)

// listCharactersTool defines the list_characters MCP tool.
var listCharactersTool = mcp.NewTool("list_characters",
	mcp.WithDescription("List the speaking characters of a screenplay, most frequent first."),
	mcp.WithString("fountain",
		mcp.Required(),
		mcp.Description("Full document text"),
	),
)
