package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sawyer-Powell/mont/internal/display"
	"github.com/Sawyer-Powell/mont/internal/gate"
	"github.com/Sawyer-Powell/mont/internal/graph"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Render the task graph",
	Run: func(cmd *cobra.Command, args []string) {
		g, err := taskStore.Graph()
		if err != nil {
			fatal(err)
		}
		if jsonOutput {
			outputJSON(listPayload(g))
			return
		}
		r := &display.Renderer{
			Graph:            g,
			DefaultGates:     taskStore.Config().DefaultGates,
			IncludeCompleted: listAll,
		}
		out := r.Render()
		if out == "" {
			fmt.Println("No tasks yet. Create one with 'mont new'.")
			return
		}
		fmt.Print(out)
	},
}

type listEntry struct {
	ID       string       `json:"id"`
	Title    string       `json:"title,omitempty"`
	Kind     string       `json:"type"`
	Status   graph.Status `json:"status"`
	Priority int          `json:"priority"`
	After    []string     `json:"after,omitempty"`
	Before   []string     `json:"before,omitempty"`
}

func listPayload(g *graph.TaskGraph) []listEntry {
	eff := g.EffectivePriorities()
	var out []listEntry
	for _, t := range g.Tasks() {
		if t.Complete && !listAll {
			continue
		}
		out = append(out, listEntry{
			ID:       t.ID,
			Title:    t.Title,
			Kind:     string(t.Kind),
			Status:   graph.StatusOf(g, t, gate.Effective(taskStore.Config().DefaultGates, &t)),
			Priority: eff[t.ID],
			After:    t.After,
			Before:   t.Before,
		})
	}
	return out
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include completed tasks")
	rootCmd.AddCommand(listCmd)
}
