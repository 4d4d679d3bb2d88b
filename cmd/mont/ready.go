package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sawyer-Powell/mont/internal/display"
	"github.com/Sawyer-Powell/mont/internal/graph"
	"github.com/Sawyer-Powell/mont/internal/task"
	"github.com/Sawyer-Powell/mont/internal/ui"
)

var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "Show tasks that are ready to work on",
	Long:  `Shows in-progress work first, then every task whose dependencies are all complete, then jots.`,
	Run: func(cmd *cobra.Command, args []string) {
		g, err := taskStore.Graph()
		if err != nil {
			fatal(err)
		}

		inProgress := g.InProgress()
		var ready, jots []string
		for _, id := range g.Ready() {
			t, _ := g.Get(id)
			if t.Kind == task.KindJot {
				jots = append(jots, id)
			} else {
				ready = append(ready, id)
			}
		}

		if jsonOutput {
			outputJSON(map[string][]string{
				"in_progress": inProgress,
				"ready":       ready,
				"jots":        jots,
			})
			return
		}
		if len(inProgress)+len(ready)+len(jots) == 0 {
			fmt.Println("Nothing ready. Run 'mont list' to see what is blocked.")
			return
		}
		for _, id := range inProgress {
			printReadyLine(g, id, ui.MarkerInProgress, yellow)
		}
		for _, id := range ready {
			printReadyLine(g, id, ui.MarkerReady, green)
		}
		for _, id := range jots {
			printReadyLine(g, id, ui.MarkerJot, yellow)
		}
	},
}

func printReadyLine(g *graph.TaskGraph, id, marker string, paint func(...interface{}) string) {
	t, _ := g.Get(id)
	line := fmt.Sprintf("%s %s", paint(marker), paint(id))
	if t.Title != "" {
		line += " " + display.TruncateTitle(t.Title, display.MaxTitleWidth)
	}
	if t.Kind == task.KindJot {
		line += gray(" (jot)")
	}
	fmt.Println(line)
}

func init() {
	rootCmd.AddCommand(readyCmd)
}
