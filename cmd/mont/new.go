package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sawyer-Powell/mont/internal/task"
)

var (
	newTitle       string
	newKind        string
	newID          string
	newDescription string
	newAfter       []string
	newBefore      []string
	newValidations []string
	newGates       []string
	newPriority    int
	newEdit        bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a task, jot, or validator",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		t := task.Task{
			ID:          newID,
			Title:       newTitle,
			Kind:        task.Kind(newKind),
			Description: newDescription,
			After:       newAfter,
			Before:      newBefore,
			Validations: newValidations,
			Priority:    newPriority,
		}
		for _, g := range newGates {
			t.Gates = append(t.Gates, task.Gate{Name: g, Status: task.GatePending})
		}

		if newEdit || newTitle == "" {
			edited, err := editTask(t)
			if err != nil {
				fatal(err)
			}
			t = edited
		}

		id, _, err := taskStore.Insert(t)
		if err != nil {
			fatal(err)
		}
		snapshot(fmt.Sprintf("new %s", id))
		if jsonOutput {
			outputJSON(map[string]string{"created": id})
			return
		}
		successf("created %s", id)
	},
}

// editTask round-trips a record through the editor, reopening it while
// the saved content fails to parse.
func editTask(t task.Task) (task.Task, error) {
	if t.ID == "" {
		id, err := taskStore.GenerateID()
		if err != nil {
			return task.Task{}, err
		}
		t.ID = id
	}
	md, err := t.Markdown()
	if err != nil {
		return task.Task{}, err
	}
	content := []byte(md)
	for {
		data, err := editBytes("mont-*.md", content)
		if err != nil {
			return task.Task{}, err
		}
		out, err := task.Parse("", data)
		if err != nil {
			retry, perr := retryPrompt(err)
			if perr != nil {
				return task.Task{}, perr
			}
			if !retry {
				return task.Task{}, err
			}
			content = data
			continue
		}
		return out, nil
	}
}

func init() {
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "task title (omit to compose in the editor)")
	newCmd.Flags().StringVarP(&newKind, "kind", "k", string(task.KindTask), "record kind: task, jot, or validator")
	newCmd.Flags().StringVar(&newID, "id", "", "explicit id (generated when empty)")
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "markdown description body")
	newCmd.Flags().StringSliceVar(&newAfter, "after", nil, "ids this record depends on")
	newCmd.Flags().StringSliceVar(&newBefore, "before", nil, "ids this record blocks")
	newCmd.Flags().StringSliceVar(&newValidations, "validation", nil, "validator ids attached to this record")
	newCmd.Flags().StringSliceVar(&newGates, "gate", nil, "gate names, created pending")
	newCmd.Flags().IntVarP(&newPriority, "priority", "p", 0, "priority (higher is more urgent)")
	newCmd.Flags().BoolVarP(&newEdit, "edit", "e", false, "open the editor even when flags are given")
	rootCmd.AddCommand(newCmd)
}
