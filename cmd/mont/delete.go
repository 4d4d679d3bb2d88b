package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task and scrub references to it",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := resolveID(args[0], pickAll)
		if err != nil {
			fatal(err)
		}
		refs, err := taskStore.References(id)
		if err != nil {
			fatal(err)
		}
		if !deleteForce {
			prompt := fmt.Sprintf("Delete %s?", id)
			if len(refs) > 0 {
				prompt = fmt.Sprintf("Delete %s? Referenced by %v", id, refs)
			}
			ok, err := confirm(prompt)
			if err != nil {
				fatal(err)
			}
			if !ok {
				return
			}
		}
		if _, err := taskStore.Delete(id); err != nil {
			fatal(err)
		}
		snapshot(fmt.Sprintf("delete %s", id))
		if jsonOutput {
			outputJSON(map[string]interface{}{"deleted": id, "was_referenced_by": refs})
			return
		}
		successf("deleted %s", id)
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
