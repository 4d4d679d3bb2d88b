package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Open a record in your editor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := resolveID(args[0], pickAll)
		if err != nil {
			fatal(err)
		}
		g, err := taskStore.Graph()
		if err != nil {
			fatal(err)
		}
		t, ok := g.Get(id)
		if !ok {
			fatal(fmt.Errorf("no task with id %q", id))
		}
		edited, err := editTask(t)
		if err != nil {
			fatal(err)
		}
		if _, err := taskStore.Replace(id, edited); err != nil {
			fatal(err)
		}
		snapshot(fmt.Sprintf("edit %s", edited.ID))
		if jsonOutput {
			outputJSON(map[string]string{"edited": edited.ID})
			return
		}
		if edited.ID != id {
			successf("edited %s (renamed from %s, references updated)", edited.ID, id)
			return
		}
		successf("edited %s", id)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
