package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/scenecoach/internal/agent"
	"github.com/ziadkadry99/scenecoach/internal/coach"
)

var (
	validateStyle string
	validateJSON  bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a coach reply against its style's contract",
	Long: `Runs the response validator over a reply read from a file or stdin and
reports the first violation. Exits non-zero when the reply breaks the contract.`,
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

		res := agent.Validate(agent.ValidateRequest{Style: validateStyle, Text: text})

		out := cmd.OutOrStdout()
		if validateJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
		} else if res.Valid {
			fmt.Fprintf(out, "ok (%s)\n", coach.ParseStyle(validateStyle))
		}

		if !res.Valid {
			return res.Violation
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateStyle, "style", string(coach.StyleDirector), "coaching style: socratic or director")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "print the validation result as JSON")
	rootCmd.AddCommand(validateCmd)
}
