package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sawyer-Powell/mont/internal/store"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task complete",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := resolveID(args[0], pickInProgress)
		if err != nil {
			fatal(err)
		}
		if _, err := taskStore.Done(id); err != nil {
			var cerr *store.CompletionError
			if errors.As(err, &cerr) && cerr.Code == store.CodeGatesPending {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				fmt.Fprintf(os.Stderr, "unlock them with: mont unlock %s %s\n", id, strings.Join(cerr.Gates, " "))
				os.Exit(1)
			}
			fatal(err)
		}
		snapshot(fmt.Sprintf("done %s", id))
		if jsonOutput {
			outputJSON(map[string]string{"completed": id})
			return
		}
		successf("completed %s", id)
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
