// Package graph forms a validated dependency graph over task records and
// computes readiness, ordering, and priority over it. A TaskGraph is an
// immutable snapshot: mutations edit the underlying records and rebuild.
package graph

import (
	"sort"

	"github.com/Sawyer-Powell/mont/internal/task"
)

// TaskGraph is a validated, immutable view of a full record set.
// Dependency edges run dependency -> dependent; a task's predecessors are
// its `after` entries plus every task that names it in `before`.
type TaskGraph struct {
	tasks map[string]task.Task
	ids   []string
	pred  map[string][]string
	succ  map[string][]string
	topo  []string
}

// Build forms a TaskGraph from a full set of records, or returns the
// first structural violation as a *Error. Tasks are checked in id-sorted
// order so the reported violation is deterministic. No partial graph is
// ever returned.
func Build(tasks []task.Task) (*TaskGraph, error) {
	g := &TaskGraph{
		tasks: make(map[string]task.Task, len(tasks)),
		pred:  make(map[string][]string, len(tasks)),
		succ:  make(map[string][]string, len(tasks)),
	}
	for _, t := range tasks {
		if _, dup := g.tasks[t.ID]; dup {
			return nil, &Error{Code: CodeDuplicateID, ID: t.ID}
		}
		g.tasks[t.ID] = t.Clone()
		g.ids = append(g.ids, t.ID)
	}
	sort.Strings(g.ids)

	for _, id := range g.ids {
		t := g.tasks[id]
		for _, ref := range t.Before {
			if _, ok := g.tasks[ref]; !ok {
				return nil, &Error{Code: CodeInvalidParent, ID: id, Ref: ref}
			}
		}
		for _, ref := range t.After {
			if _, ok := g.tasks[ref]; !ok {
				return nil, &Error{Code: CodeInvalidPrecondition, ID: id, Ref: ref}
			}
		}
		for _, ref := range t.Validations {
			v, ok := g.tasks[ref]
			if !ok || v.Kind != task.KindValidator {
				return nil, &Error{Code: CodeInvalidValidation, ID: id, Ref: ref}
			}
			if len(v.Before) > 0 {
				return nil, &Error{Code: CodeValidationNotRootValidator, ID: id, Ref: ref}
			}
		}
	}

	g.buildEdges()
	if cyclic := g.findCycle(); cyclic != "" {
		return nil, &Error{Code: CodeCycleDetected, ID: cyclic}
	}
	g.topo = g.topologicalOrder()
	return g, nil
}

func (g *TaskGraph) buildEdges() {
	addEdge := func(from, to string) {
		for _, s := range g.succ[from] {
			if s == to {
				return
			}
		}
		g.succ[from] = append(g.succ[from], to)
		g.pred[to] = append(g.pred[to], from)
	}
	for _, id := range g.ids {
		t := g.tasks[id]
		for _, dep := range t.After {
			addEdge(dep, id)
		}
		for _, blocked := range t.Before {
			addEdge(id, blocked)
		}
	}
	for _, id := range g.ids {
		sort.Strings(g.succ[id])
		sort.Strings(g.pred[id])
	}
}

const (
	white = iota // unvisited
	gray         // on the traversal stack
	black        // finished
)

// findCycle runs a three-color depth-first traversal over the dependency
// edges and returns the task where the first gray back-edge lands, or ""
// when the graph is acyclic.
func (g *TaskGraph) findCycle() string {
	color := make(map[string]int, len(g.ids))
	var visit func(id string) string
	visit = func(id string) string {
		color[id] = gray
		for _, next := range g.succ[id] {
			switch color[next] {
			case gray:
				return next
			case white:
				if hit := visit(next); hit != "" {
					return hit
				}
			}
		}
		color[id] = black
		return ""
	}
	for _, id := range g.ids {
		if color[id] == white {
			if hit := visit(id); hit != "" {
				return hit
			}
		}
	}
	return ""
}

// topologicalOrder is Kahn's algorithm with a sorted ready queue, so the
// order is fully deterministic for a given record set.
func (g *TaskGraph) topologicalOrder() []string {
	indeg := make(map[string]int, len(g.ids))
	var queue []string
	for _, id := range g.ids {
		indeg[id] = len(g.pred[id])
		if indeg[id] == 0 {
			queue = append(queue, id)
		}
	}
	order := make([]string, 0, len(g.ids))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		var freed []string
		for _, next := range g.succ[id] {
			indeg[next]--
			if indeg[next] == 0 {
				freed = append(freed, next)
			}
		}
		if len(freed) > 0 {
			queue = append(queue, freed...)
			sort.Strings(queue)
		}
	}
	return order
}

// Len returns the number of tasks in the graph.
func (g *TaskGraph) Len() int { return len(g.ids) }

// IDs returns all task ids in sorted order.
func (g *TaskGraph) IDs() []string {
	return append([]string(nil), g.ids...)
}

// Get returns a copy of the task with the given id.
func (g *TaskGraph) Get(id string) (task.Task, bool) {
	t, ok := g.tasks[id]
	if !ok {
		return task.Task{}, false
	}
	return t.Clone(), true
}

// Tasks returns copies of all tasks in id-sorted order.
func (g *TaskGraph) Tasks() []task.Task {
	out := make([]task.Task, 0, len(g.ids))
	for _, id := range g.ids {
		t := g.tasks[id]
		out = append(out, t.Clone())
	}
	return out
}

// Predecessors returns the ids this task depends on, sorted.
func (g *TaskGraph) Predecessors(id string) []string {
	return append([]string(nil), g.pred[id]...)
}

// Successors returns the ids that depend on this task, sorted.
func (g *TaskGraph) Successors(id string) []string {
	return append([]string(nil), g.succ[id]...)
}

// TopologicalOrder returns a deterministic dependency-first ordering.
func (g *TaskGraph) TopologicalOrder() []string {
	return append([]string(nil), g.topo...)
}
