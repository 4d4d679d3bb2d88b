package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Sawyer-Powell/mont/internal/gate"
	"github.com/Sawyer-Powell/mont/internal/graph"
	"github.com/Sawyer-Powell/mont/internal/task"
	"github.com/Sawyer-Powell/mont/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize where the graph stands",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		g, err := taskStore.Graph()
		if err != nil {
			fatal(err)
		}
		defaults := taskStore.Config().DefaultGates
		eff := g.EffectivePriorities()

		counts := make(map[graph.State]int)
		var jots, validators, total int
		for _, t := range g.Tasks() {
			switch t.Kind {
			case task.KindJot:
				jots++
			case task.KindValidator:
				validators++
			default:
				total++
				counts[graph.StatusOf(g, t, gate.Effective(defaults, &t)).State]++
			}
		}

		inProgress := g.InProgress()
		var ready []string
		for _, id := range g.Ready() {
			if t, ok := g.Get(id); ok && t.Kind == task.KindTask {
				ready = append(ready, id)
			}
		}
		sort.SliceStable(ready, func(i, j int) bool { return eff[ready[i]] > eff[ready[j]] })
		if len(ready) > 5 {
			ready = ready[:5]
		}

		if jsonOutput {
			outputJSON(map[string]interface{}{
				"in_progress": inProgress,
				"up_next":     ready,
				"tasks":       total,
				"jots":        jots,
				"validators":  validators,
				"counts":      counts,
			})
			return
		}

		if len(inProgress) > 0 {
			fmt.Println(ui.RenderCategory("IN PROGRESS"))
			for _, id := range inProgress {
				printReadyLine(g, id, ui.MarkerInProgress, yellow)
			}
			fmt.Println()
		}
		if len(ready) > 0 {
			fmt.Println(ui.RenderCategory("UP NEXT"))
			for _, id := range ready {
				printReadyLine(g, id, ui.MarkerReady, green)
			}
			fmt.Println()
		}
		fmt.Printf("%d tasks (%d ready, %d blocked, %d complete)",
			total, counts[graph.StateReady], counts[graph.StateBlocked], counts[graph.StateComplete])
		if jots > 0 {
			fmt.Printf(", %d jots", jots)
		}
		if validators > 0 {
			fmt.Printf(", %d validators", validators)
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
