package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Begin a work session on a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := resolveID(args[0], pickActive)
		if err != nil {
			fatal(err)
		}
		if _, err := taskStore.Start(id); err != nil {
			fatal(err)
		}
		snapshot(fmt.Sprintf("start %s", id))
		if jsonOutput {
			outputJSON(map[string]string{"started": id})
			return
		}
		successf("started %s", id)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
