package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/scenecoach/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a scenecoach configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that picks the model provider, quality tier, database path and port, and writes them to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
