package main

import (
	"github.com/spf13/cobra"

	"github.com/Sawyer-Powell/mont/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a task directory here",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := store.Init(tasksDir)
		if err != nil {
			fatal(err)
		}
		if jsonOutput {
			outputJSON(map[string]string{"initialized": s.Dir()})
			return
		}
		successf("initialized %s", s.Dir())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
