package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/scenecoach/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "scenecoach",
	Short: "A screenwriting coach that asks before it advises",
	Long: `scenecoach reads a scene from a fountain screenplay and answers as a
coach: either Socratic questions only, or Director Mode observations,
interpretations and questions. Every reply is checked against its style's
contract and re-asked when it breaks it.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
