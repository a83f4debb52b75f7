package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/scenecoach/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol server on stdio exposing coach_turn, validate_response, cursor_context and list_characters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// zap writes to stderr; stdout carries the protocol.
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		c, err := newCoachFromConfig(cfg, logger)
		if err != nil {
			return err
		}

		mcpserver.Version = Version
		fmt.Fprintf(os.Stderr, "scenecoach MCP server started on stdio (provider=%s, model=%s)\n", cfg.Provider, cfg.Model)
		return mcpserver.NewServer(c).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
