package main

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/Sawyer-Powell/mont/internal/graph"
	"github.com/Sawyer-Powell/mont/internal/task"
)

// pickFilter narrows which tasks the interactive picker offers.
type pickFilter int

const (
	pickActive     pickFilter = iota // incomplete tasks and jots
	pickInProgress                   // actively in-progress tasks
	pickJots                         // jots only
	pickAll                          // everything
)

func (f pickFilter) match(g *graph.TaskGraph, t task.Task) bool {
	switch f {
	case pickInProgress:
		return t.Active() && !t.Complete
	case pickJots:
		return t.Kind == task.KindJot
	case pickActive:
		return !t.Complete && t.Kind != task.KindValidator
	default:
		return true
	}
}

// resolveID turns a command's id argument into a real task id. The
// reserved placeholder "?" opens an interactive picker over the tasks
// matching the filter.
func resolveID(arg string, filter pickFilter) (string, error) {
	if arg != task.ReservedID {
		return arg, nil
	}
	g, err := taskStore.Graph()
	if err != nil {
		return "", err
	}
	var options []huh.Option[string]
	for _, t := range g.Tasks() {
		if !filter.match(g, t) {
			continue
		}
		label := t.ID
		if t.Title != "" {
			label = fmt.Sprintf("%s  %s", t.ID, t.Title)
		}
		options = append(options, huh.NewOption(label, t.ID))
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no matching tasks to pick from")
	}
	var picked string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Pick a task").
			Options(options...).
			Value(&picked),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return picked, nil
}

// confirm asks a yes/no question interactively.
func confirm(prompt string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().Title(prompt).Value(&ok).Run()
	return ok, err
}
