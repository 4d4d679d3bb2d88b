package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sawyer-Powell/mont/internal/gate"
	"github.com/Sawyer-Powell/mont/internal/graph"
)

var checkCmd = &cobra.Command{
	Use:   "check [id]",
	Short: "Validate the graph, or one task's standing in it",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		g, err := taskStore.Graph()
		if err != nil {
			fatal(err)
		}
		if len(args) == 0 {
			if jsonOutput {
				outputJSON(map[string]interface{}{"ok": true, "tasks": g.Len()})
				return
			}
			successf("graph is valid (%d tasks)", g.Len())
			return
		}

		id, err := resolveID(args[0], pickAll)
		if err != nil {
			fatal(err)
		}
		t, ok := g.Get(id)
		if !ok {
			fatal(fmt.Errorf("no task with id %q", id))
		}
		gates := gate.Effective(taskStore.Config().DefaultGates, &t)
		st := graph.StatusOf(g, t, gates)
		blocking := gate.Blocking(taskStore.Config().DefaultGates, &t)

		if jsonOutput {
			outputJSON(map[string]interface{}{
				"id": id, "status": st, "blocking_gates": blocking,
				"waiting_on": incompleteDeps(g, id),
			})
			return
		}
		fmt.Printf("%s: %s\n", id, describeStatus(st))
		if deps := incompleteDeps(g, id); len(deps) > 0 {
			fmt.Printf("waiting on: %v\n", deps)
		}
		if len(blocking) > 0 {
			fmt.Printf("unpassed gates: %v\n", blocking)
		}
	},
}

func incompleteDeps(g *graph.TaskGraph, id string) []string {
	var out []string
	for _, dep := range g.Predecessors(id) {
		if d, ok := g.Get(dep); ok && !d.Complete {
			out = append(out, dep)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
