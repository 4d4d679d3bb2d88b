package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop <id>",
	Short: "Pause work on a task without completing it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := resolveID(args[0], pickInProgress)
		if err != nil {
			fatal(err)
		}
		if _, err := taskStore.Stop(id); err != nil {
			fatal(err)
		}
		snapshot(fmt.Sprintf("stop %s", id))
		if jsonOutput {
			outputJSON(map[string]string{"stopped": id})
			return
		}
		successf("stopped %s", id)
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
