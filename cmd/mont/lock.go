package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var lockCmd = &cobra.Command{
	Use:   "lock <id> <gate...>",
	Short: "Return passed gates to pending",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := resolveID(args[0], pickAll)
		if err != nil {
			fatal(err)
		}
		names := args[1:]
		if _, err := taskStore.Lock(id, names); err != nil {
			fatal(err)
		}
		snapshot(fmt.Sprintf("lock %s %s", id, strings.Join(names, " ")))
		if jsonOutput {
			outputJSON(map[string]interface{}{"id": id, "gates": names})
			return
		}
		successf("%s: %v back to pending", id, names)
	},
}

func init() {
	rootCmd.AddCommand(lockCmd)
}
