// Package gate tracks per-task gate state: the merge of configured
// default gates with task-declared gates, and the unlock/lock
// transitions over them. Gate names refer to root validator records; the
// pass/fail state is always local to the task being gated.
package gate

import (
	"fmt"

	"github.com/Sawyer-Powell/mont/internal/task"
)

// Code identifies a gate rule violation.
type Code string

const (
	CodeGateNotFound  Code = "gate-not-found"
	CodeGateNotPassed Code = "gate-not-passed"
	CodeCannotGateJot Code = "cannot-gate-jot"
)

// Error reports a failed gate transition on a specific task and gate.
type Error struct {
	Code Code
	Task string
	Gate string
}

func (e *Error) Error() string {
	switch e.Code {
	case CodeGateNotFound:
		return fmt.Sprintf("task %q has no gate %q, declare it as a root validator first", e.Task, e.Gate)
	case CodeGateNotPassed:
		return fmt.Sprintf("gate %q on task %q is not passed, only passed gates can be locked", e.Gate, e.Task)
	case CodeCannotGateJot:
		return fmt.Sprintf("%q is a jot and carries no gates, distill it into a task first", e.Task)
	}
	return fmt.Sprintf("gate %q on task %q: %s", e.Gate, e.Task, e.Code)
}

// Effective merges the configured default gates with the task's own
// entries, deduplicated by name keeping the earliest occurrence's
// position. Defaults come first, in their configured order, at pending
// status unless the task carries an explicit entry for the same name.
func Effective(defaults []string, t *task.Task) []task.Gate {
	var out []task.Gate
	seen := make(map[string]int)
	add := func(g task.Gate) {
		if i, ok := seen[g.Name]; ok {
			// A later explicit status wins over an implied pending
			// default, but the earliest position is kept.
			if out[i].Status == task.GatePending {
				out[i].Status = g.Status
			}
			return
		}
		seen[g.Name] = len(out)
		out = append(out, g)
	}
	for _, name := range defaults {
		add(task.Gate{Name: name, Status: task.GatePending})
	}
	for _, g := range t.Gates {
		add(g)
	}
	return out
}

// Unlock transitions the named gate to the given terminal status, passed
// or skipped. Pending and failed gates may be unlocked; unlocking an
// already-passed gate is a no-op. A name missing from the effective list
// is appended when knownValidator accepts it, otherwise the transition
// fails with GateNotFound.
func Unlock(t *task.Task, defaults []string, knownValidator func(string) bool, name string, status task.GateStatus) error {
	if t.Kind == task.KindJot {
		return &Error{Code: CodeCannotGateJot, Task: t.ID}
	}
	if status != task.GatePassed && status != task.GateSkipped {
		return fmt.Errorf("unlock to %q: gates unlock to passed or skipped", status)
	}
	if g := ensure(t, defaults, name); g != nil {
		if g.Status != task.GatePassed {
			g.Status = status
		}
		return nil
	}
	if knownValidator != nil && knownValidator(name) {
		t.Gates = append(t.Gates, task.Gate{Name: name, Status: status})
		return nil
	}
	return &Error{Code: CodeGateNotFound, Task: t.ID, Gate: name}
}

// Lock reverses a passed gate back to pending.
func Lock(t *task.Task, defaults []string, name string) error {
	if t.Kind == task.KindJot {
		return &Error{Code: CodeCannotGateJot, Task: t.ID}
	}
	g := ensure(t, defaults, name)
	if g == nil {
		return &Error{Code: CodeGateNotFound, Task: t.ID, Gate: name}
	}
	if g.Status != task.GatePassed {
		return &Error{Code: CodeGateNotPassed, Task: t.ID, Gate: name}
	}
	g.Status = task.GatePending
	return nil
}

// Blocking returns the names of effective gates standing between the
// task and completion, in effective order. Skipped gates do not block;
// skipping is the explicit record that a gate does not apply.
func Blocking(defaults []string, t *task.Task) []string {
	var out []string
	for _, g := range Effective(defaults, t) {
		if g.Status != task.GatePassed && g.Status != task.GateSkipped {
			out = append(out, g.Name)
		}
	}
	return out
}

// ensure resolves the named gate against the effective list and
// materializes a default-implied entry onto the task so the transition
// has somewhere to persist. Returns nil when the name is not effective.
func ensure(t *task.Task, defaults []string, name string) *task.Gate {
	if g := t.Gate(name); g != nil {
		return g
	}
	for _, d := range defaults {
		if d == name {
			t.Gates = append(t.Gates, task.Gate{Name: name, Status: task.GatePending})
			return &t.Gates[len(t.Gates)-1]
		}
	}
	return nil
}
