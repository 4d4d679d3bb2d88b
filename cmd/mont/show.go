package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sawyer-Powell/mont/internal/gate"
	"github.com/Sawyer-Powell/mont/internal/graph"
	"github.com/Sawyer-Powell/mont/internal/task"
	"github.com/Sawyer-Powell/mont/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in full",
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

		gates := gate.Effective(taskStore.Config().DefaultGates, &t)
		st := graph.StatusOf(g, t, gates)

		if jsonOutput {
			outputJSON(map[string]interface{}{
				"id": t.ID, "title": t.Title, "type": t.Kind,
				"status": st, "priority": t.Priority,
				"before": t.Before, "after": t.After,
				"validations": t.Validations, "gates": gatePayload(gates),
				"description": t.Description,
			})
			return
		}

		fmt.Printf("%s %s\n", ui.RenderAccent(t.ID), t.Title)
		fmt.Printf("%s %s", label("type"), t.Kind)
		switch t.Kind {
		case task.KindJot:
			fmt.Print(gray("  (distill into tasks when ready)"))
		case task.KindValidator:
			fmt.Print(gray("  (reusable completion criterion)"))
		}
		fmt.Println()
		fmt.Printf("%s %s\n", label("status"), describeStatus(st))
		if t.Priority != 0 {
			fmt.Printf("%s %d\n", label("priority"), t.Priority)
		}
		printIDList("before", t.Before)
		printIDList("after", t.After)
		printIDList("validations", t.Validations)
		if len(gates) > 0 {
			fmt.Printf("%s\n", label("gates"))
			for _, gt := range gates {
				fmt.Printf("  %s %s\n", gateIcon(gt.Status), gt.Name)
			}
		}
		if t.Description != "" {
			fmt.Println()
			fmt.Print(ui.RenderMarkdown(t.Description))
		}
	},
}

func label(s string) string {
	return gray(fmt.Sprintf("%-12s", s+":"))
}

func printIDList(name string, ids []string) {
	if len(ids) > 0 {
		fmt.Printf("%s %s\n", label(name), strings.Join(ids, ", "))
	}
}

func describeStatus(st graph.Status) string {
	switch st.State {
	case graph.StateInProgress:
		return yellow(fmt.Sprintf("in progress (session %d)", st.Sessions))
	case graph.StateGatesPending:
		return yellow("gates pending")
	case graph.StateReady:
		return green("ready")
	case graph.StateComplete:
		return gray("complete")
	case graph.StateBlocked:
		return gray("blocked")
	default:
		return string(st.State)
	}
}

func gateIcon(s task.GateStatus) string {
	switch s {
	case task.GatePassed:
		return green(ui.IconPass)
	case task.GateFailed:
		return ui.RenderFail(ui.IconFail)
	case task.GateSkipped:
		return gray(ui.IconSkip)
	default:
		return gray(ui.IconWait)
	}
}

func gatePayload(gates []task.Gate) []map[string]string {
	out := make([]map[string]string, 0, len(gates))
	for _, g := range gates {
		out = append(out, map[string]string{"name": g.Name, "status": string(g.Status)})
	}
	return out
}

func init() {
	rootCmd.AddCommand(showCmd)
}
