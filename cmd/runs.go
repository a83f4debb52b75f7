package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/scenecoach/internal/audit"
	"github.com/ziadkadry99/scenecoach/internal/coach"
)

var (
	runsUser      string
	runsOutcome   string
	runsStyle     string
	runsLimit     int
	runsOlderThan time.Duration
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the log of coaching runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent coaching runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		filter := audit.QueryFilter{
			UserID:  runsUser,
			Outcome: audit.Outcome(runsOutcome),
			Limit:   runsLimit,
		}
		if runsStyle != "" {
			filter.Style = coach.ParseStyle(runsStyle)
		}
		entries, err := audit.NewStore(database).Query(cmd.Context(), filter)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No coaching runs recorded.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tUSER\tCONTRACT\tOUTCOME\tATTEMPTS\tVIOLATIONS")
		for _, e := range entries {
			violations := strings.Join(e.Violations, ",")
			if violations == "" {
				violations = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				e.UserID, e.ContractKind, e.Outcome, e.Attempts, violations)
		}
		return tw.Flush()
	},
}

var runsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete coaching runs older than a given age",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runsOlderThan <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		n, err := audit.NewStore(database).DeleteBefore(cmd.Context(), time.Now().Add(-runsOlderThan))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d coaching runs.\n", n)
		return nil
	},
}

func init() {
	runsListCmd.Flags().StringVar(&runsUser, "user", "", "only runs for this user")
	runsListCmd.Flags().StringVar(&runsOutcome, "outcome", "", "only runs with this outcome: accepted, exhausted or upstream_error")
	runsListCmd.Flags().StringVar(&runsStyle, "style", "", "only runs in this style")
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to show")
	runsPruneCmd.Flags().DurationVar(&runsOlderThan, "older-than", 30*24*time.Hour, "age beyond which runs are deleted")

	runsCmd.AddCommand(runsListCmd, runsPruneCmd)
	rootCmd.AddCommand(runsCmd)
}
