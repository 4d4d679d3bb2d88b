package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sawyer-Powell/mont/internal/task"
)

var distillStdin bool

var distillCmd = &cobra.Command{
	Use:   "distill <jot-id>",
	Short: "Break a jot out into proper tasks",
	Long: `Distill replaces a jot with one or more new records. The editor opens
with a template seeded from the jot; separate additional records with a
line containing only ===. The jot is removed and the new records written
in one step, so a failure leaves everything as it was.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := resolveID(args[0], pickJots)
		if err != nil {
			fatal(err)
		}
		g, err := taskStore.Graph()
		if err != nil {
			fatal(err)
		}
		jot, ok := g.Get(id)
		if !ok {
			fatal(fmt.Errorf("no task with id %q", id))
		}
		if jot.Kind != task.KindJot {
			fatal(fmt.Errorf("task %q is a %s, only jots can be distilled", id, jot.Kind))
		}

		var tasks []task.Task
		if distillStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal(err)
			}
			tasks, err = task.ParseSet("stdin", data)
			if err != nil {
				fatal(err)
			}
		} else {
			tasks, err = distillInEditor(jot)
			if err != nil {
				fatal(err)
			}
		}

		if _, err := taskStore.Distill(id, tasks); err != nil {
			fatal(err)
		}
		snapshot(fmt.Sprintf("distill %s", id))
		ids := make([]string, len(tasks))
		for i, t := range tasks {
			ids[i] = t.ID
		}
		if jsonOutput {
			outputJSON(map[string]interface{}{"distilled": id, "created": ids})
			return
		}
		successf("distilled %s into %s", id, strings.Join(ids, ", "))
	},
}

// distillInEditor seeds the template from the jot so its title, body,
// and edges carry over, then loops until the saved set parses.
func distillInEditor(jot task.Task) ([]task.Task, error) {
	seed := jot.Clone()
	seed.Kind = task.KindTask
	newID, err := taskStore.GenerateID()
	if err != nil {
		return nil, err
	}
	seed.ID = newID
	md, err := seed.Markdown()
	if err != nil {
		return nil, err
	}
	content := []byte(md)
	for {
		data, err := editBytes("mont-distill-*.md", content)
		if err != nil {
			return nil, err
		}
		tasks, err := task.ParseSet("", data)
		if err == nil && len(tasks) == 0 {
			err = fmt.Errorf("the distilled set is empty")
		}
		if err != nil {
			retry, perr := retryPrompt(err)
			if perr != nil {
				return nil, perr
			}
			if !retry {
				return nil, err
			}
			content = data
			continue
		}
		return tasks, nil
	}
}

func init() {
	distillCmd.Flags().BoolVar(&distillStdin, "stdin", false, "read the new records from stdin instead of the editor")
	rootCmd.AddCommand(distillCmd)
}
