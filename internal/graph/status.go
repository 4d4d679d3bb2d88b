package graph

import "github.com/Sawyer-Powell/mont/internal/task"

// State is a task's computed lifecycle state.
type State string

const (
	StateNotStarted   State = "not_started"
	StateReady        State = "ready"
	StateBlocked      State = "blocked"
	StateInProgress   State = "in_progress"
	StateGatesPending State = "gates_pending"
	StateComplete     State = "complete"
)

// Status pairs a state with the work-session counter, which is only
// meaningful for in-progress tasks.
type Status struct {
	State    State `json:"state"`
	Sessions int   `json:"sessions,omitempty"`
}

// StatusOf computes a task's lifecycle state against the graph snapshot.
// gates is the task's effective gate list (defaults plus task-declared);
// the caller resolves it so this package stays independent of config.
//
// A task is ready iff it is not complete, not a validator, not actively
// in progress, and every dependency is complete. An in-progress task
// whose gate evaluation has begun but not fully passed reports
// gates_pending.
func StatusOf(g *TaskGraph, t task.Task, gates []task.Gate) Status {
	if t.Complete {
		return Status{State: StateComplete}
	}
	if t.Kind == task.KindValidator {
		return Status{State: StateNotStarted}
	}
	if t.Active() {
		if gatesUnderway(gates) {
			return Status{State: StateGatesPending, Sessions: t.Sessions()}
		}
		return Status{State: StateInProgress, Sessions: t.Sessions()}
	}
	for _, dep := range g.pred[t.ID] {
		if d, ok := g.tasks[dep]; ok && !d.Complete {
			return Status{State: StateBlocked}
		}
	}
	return Status{State: StateReady, Sessions: t.Sessions()}
}

// gatesUnderway reports whether gate evaluation has begun without every
// gate being satisfied yet. Skipped gates count as satisfied.
func gatesUnderway(gates []task.Gate) bool {
	if len(gates) == 0 {
		return false
	}
	started, satisfied := false, true
	for _, gt := range gates {
		if gt.Status != task.GatePending {
			started = true
		}
		if gt.Status != task.GatePassed && gt.Status != task.GateSkipped {
			satisfied = false
		}
	}
	return started && !satisfied
}

// Ready returns the ids of all ready tasks, sorted. Jots are included;
// they are startable even though they cannot be completed directly.
func (g *TaskGraph) Ready() []string {
	var out []string
	for _, id := range g.ids {
		t := g.tasks[id]
		if s := StatusOf(g, t, t.Gates); s.State == StateReady {
			out = append(out, id)
		}
	}
	return out
}

// InProgress returns the ids of all actively in-progress tasks, sorted.
func (g *TaskGraph) InProgress() []string {
	var out []string
	for _, id := range g.ids {
		if t := g.tasks[id]; t.Active() && !t.Complete {
			out = append(out, id)
		}
	}
	return out
}
