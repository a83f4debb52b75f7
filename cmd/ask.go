package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/scenecoach/internal/agent"
	"github.com/ziadkadry99/scenecoach/internal/coach"
	"github.com/ziadkadry99/scenecoach/internal/llm"
	"github.com/ziadkadry99/scenecoach/internal/progress"
)

var (
	askStyle     string
	askIntent    string
	askMode      string
	askMessage   string
	askSelection string
	askSlugline  string
	askTitle     string
	askLine      int
	askColumn    int
	askJSON      bool
)

var askCmd = &cobra.Command{
	Use:   "ask [scene-file]",
	Short: "Run one coaching turn against a scene",
	Long: `Sends a scene to the coach and prints the accepted reply.

The file holds the scene text, or "-" (the default) reads it from stdin.
With --line the file is read as the whole screenplay instead: the scene
under the cursor is extracted and the cursor context is added to the prompt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		text, err := readInput(path)
		if err != nil {
			return err
		}

		req := coach.Request{
			Style:         coach.ParseStyle(askStyle),
			Intent:        coach.ParseIntent(askIntent),
			Mode:          coach.ParseMode(askMode),
			SelectionText: askSelection,
			SceneSlugline: askSlugline,
			ScriptTitle:   askTitle,
			UserMessage:   strings.TrimSpace(askMessage),
		}
		if askLine > 0 {
			agent.FillFromDocument(&req, text, agent.CursorPosition{Line: askLine, Column: askColumn})
		} else {
			req.SceneText = text
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		c, err := newCoachFromConfig(cfg, logger)
		if err != nil {
			return err
		}

		reporter := progress.NewReporter(os.Stderr)
		reporter.Start(coach.Resolve(req.Style, req.Intent, req.UserMessage).MaxAttempts())
		req.OnAttempt = reporter.Attempt

		res, err := c.Run(cmd.Context(), req)
		reporter.Finish()
		if err != nil {
			var exhausted *coach.ContractExhaustedError
			if errors.As(err, &exhausted) && exhausted.Last != nil {
				return fmt.Errorf("%s: %s", exhausted.Message(), exhausted.Last.Error())
			}
			return err
		}

		logger.Debug("turn complete",
			zap.Int("attempts", len(res.Attempts)),
			zap.Int("input_tokens", res.InputTokens),
			zap.Int("output_tokens", res.OutputTokens),
			zap.Float64("estimated_cost_usd", llm.EstimateCost(cfg.Model, res.InputTokens, res.OutputTokens)))

		out := cmd.OutOrStdout()
		if askJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		fmt.Fprintln(out, res.Text)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askStyle, "style", string(coach.StyleDirector), "coaching style: socratic or director")
	askCmd.Flags().StringVar(&askIntent, "intent", "", "explicit intent: discuss_scene or discuss_selection")
	askCmd.Flags().StringVar(&askMode, "mode", "", "request mode: scene, selection, profile or stuck")
	askCmd.Flags().StringVarP(&askMessage, "message", "m", "", "what the writer says to the coach")
	askCmd.Flags().StringVar(&askSelection, "selection", "", "selected text for selection mode")
	askCmd.Flags().StringVar(&askSlugline, "slugline", "", "scene heading, when the file is a bare scene")
	askCmd.Flags().StringVar(&askTitle, "title", "", "script title")
	askCmd.Flags().IntVar(&askLine, "line", 0, "1-based cursor line; treats the file as the whole script")
	askCmd.Flags().IntVar(&askColumn, "column", 0, "1-based cursor column")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full result, attempts included, as JSON")
	rootCmd.AddCommand(askCmd)
}
