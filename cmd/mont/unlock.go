package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sawyer-Powell/mont/internal/task"
)

var unlockSkipped bool

var unlockCmd = &cobra.Command{
	Use:   "unlock <id> [gate...]",
	Short: "Mark gates on a task as passed (or skipped)",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := resolveID(args[0], pickAll)
		if err != nil {
			fatal(err)
		}
		names := args[1:]
		if len(names) == 0 {
			fatal(fmt.Errorf("no gates named; usage: mont unlock %s <gate...>", id))
		}
		status := task.GatePassed
		if unlockSkipped {
			status = task.GateSkipped
		}
		if _, err := taskStore.Unlock(id, names, status); err != nil {
			fatal(err)
		}
		snapshot(fmt.Sprintf("unlock %s %s", id, strings.Join(names, " ")))
		if jsonOutput {
			outputJSON(map[string]interface{}{"id": id, "gates": names, "status": status})
			return
		}
		successf("%s: %v now %s", id, names, status)
	},
}

func init() {
	unlockCmd.Flags().BoolVar(&unlockSkipped, "skipped", false, "mark the gates skipped instead of passed")
	rootCmd.AddCommand(unlockCmd)
}
