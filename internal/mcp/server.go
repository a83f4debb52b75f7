package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/scenecoach/internal/coach"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the coach to agent clients.
type Server struct {
	coach *coach.Coach
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server backed by the given coach.
func NewServer(c *coach.Coach) *Server {
	s := &Server{coach: c}

	s.mcp = server.NewMCPServer(
		"scenecoach",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(coachTurnTool, s.handleCoachTurn)
	s.mcp.AddTool(validateResponseTool, s.handleValidateResponse)
	s.mcp.AddTool(cursorContextTool, s.handleCursorContext)
	s.mcp.AddTool(listCharactersTool, s.handleListCharacters)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
