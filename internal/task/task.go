// Package task defines the work-item record model: tasks, jots, and
// validators, each persisted as a markdown file with YAML frontmatter.
package task

import (
	"strings"
)

// ReservedID is the placeholder id commands accept in place of a real
// task id. It resolves through the interactive picker and can never be
// assigned to a record.
const ReservedID = "?"

// Kind discriminates the three record shapes.
type Kind string

const (
	KindJot       Kind = "jot"
	KindTask      Kind = "task"
	KindValidator Kind = "validator"
)

// IsValid returns true if the kind is a known value.
func (k Kind) IsValid() bool {
	switch k {
	case KindJot, KindTask, KindValidator:
		return true
	}
	return false
}

// GateStatus is the lifecycle state of a single gate on a single task.
type GateStatus string

const (
	GatePending GateStatus = "pending"
	GatePassed  GateStatus = "passed"
	GateFailed  GateStatus = "failed"
	GateSkipped GateStatus = "skipped"
)

// IsValid returns true if the status is a known value.
func (s GateStatus) IsValid() bool {
	switch s {
	case GatePending, GatePassed, GateFailed, GateSkipped:
		return true
	}
	return false
}

// Gate is one named checkpoint on one task. The name refers to a root
// validator record; the status is local to the owning task.
type Gate struct {
	Name   string
	Status GateStatus
}

// Task is a single parsed record. Before/After/Validations hold ids of
// other records. InProgress counts work sessions; nil means the task was
// never started. Stopped marks a paused task whose counter is preserved.
type Task struct {
	ID          string
	Title       string
	Kind        Kind
	Description string
	Before      []string
	After       []string
	Validations []string
	Gates       []Gate
	Complete    bool
	InProgress  *int
	Stopped     bool
	Priority    int
}

// Active reports whether the task is currently being worked on.
func (t *Task) Active() bool {
	return t.InProgress != nil && !t.Stopped
}

// Sessions returns the work-session counter, zero if never started.
func (t *Task) Sessions() int {
	if t.InProgress == nil {
		return 0
	}
	return *t.InProgress
}

// Gate returns a pointer to the named gate entry, or nil.
func (t *Task) Gate(name string) *Gate {
	for i := range t.Gates {
		if t.Gates[i].Name == name {
			return &t.Gates[i]
		}
	}
	return nil
}

// References returns every id this task mentions, in field order.
func (t *Task) References() []string {
	refs := make([]string, 0, len(t.Before)+len(t.After)+len(t.Validations))
	refs = append(refs, t.Before...)
	refs = append(refs, t.After...)
	refs = append(refs, t.Validations...)
	return refs
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() Task {
	c := *t
	c.Before = append([]string(nil), t.Before...)
	c.After = append([]string(nil), t.After...)
	c.Validations = append([]string(nil), t.Validations...)
	c.Gates = append([]Gate(nil), t.Gates...)
	if t.InProgress != nil {
		n := *t.InProgress
		c.InProgress = &n
	}
	return c
}

// Validate checks the record-local invariants that do not require the
// rest of the graph. Reference resolution is the graph builder's job.
func (t *Task) Validate() error {
	if t.ID == "" {
		return &ParseError{Code: ParseEmptyID}
	}
	if t.ID == ReservedID {
		return &ParseError{ID: t.ID, Code: ParseReservedID}
	}
	if strings.ContainsAny(t.ID, " \t\n") {
		return &ParseError{ID: t.ID, Code: ParseInvalidID}
	}
	if !t.Kind.IsValid() {
		return &ParseError{ID: t.ID, Code: ParseInvalidKind, Detail: string(t.Kind)}
	}
	for _, g := range t.Gates {
		if !g.Status.IsValid() {
			return &ParseError{ID: t.ID, Code: ParseInvalidGateStatus, Detail: string(g.Status)}
		}
	}
	switch t.Kind {
	case KindValidator:
		if len(t.After) > 0 {
			return &ParseError{ID: t.ID, Code: ParseValidatorWithAfter}
		}
	case KindJot:
		if len(t.Gates) > 0 {
			return &ParseError{ID: t.ID, Code: ParseJotWithGates}
		}
		if t.Complete {
			return &ParseError{ID: t.ID, Code: ParseJotComplete}
		}
	}
	return nil
}
