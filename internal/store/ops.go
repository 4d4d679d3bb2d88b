package store

import (
	"fmt"
	"strings"

	"github.com/Sawyer-Powell/mont/internal/gate"
	"github.com/Sawyer-Powell/mont/internal/graph"
	"github.com/Sawyer-Powell/mont/internal/task"
)

// CompletionCode identifies why a completion attempt was refused.
type CompletionCode string

const (
	CodeGatesPending      CompletionCode = "gates-pending"
	CodeNotInProgress     CompletionCode = "not-in-progress"
	CodeCannotCompleteJot CompletionCode = "cannot-complete-jot"
)

// CompletionError reports a refused completion. Gates lists the blocking
// gate names for gates-pending failures.
type CompletionError struct {
	Code  CompletionCode
	ID    string
	Gates []string
}

func (e *CompletionError) Error() string {
	switch e.Code {
	case CodeGatesPending:
		return fmt.Sprintf("task %q still has unpassed gates (%s), unlock them first", e.ID, strings.Join(e.Gates, ", "))
	case CodeNotInProgress:
		return fmt.Sprintf("task %q is not in progress, start it before completing it", e.ID)
	case CodeCannotCompleteJot:
		return fmt.Sprintf("%q is a jot and cannot be completed, distill it into tasks instead", e.ID)
	}
	return fmt.Sprintf("cannot complete %q (%s)", e.ID, e.Code)
}

// Start begins (or resumes) work on a task, incrementing its session
// counter. Starting a complete or already-active task is an error.
func (s *Store) Start(id string) (*graph.TaskGraph, error) {
	return s.Update(func(tx *Tx) error {
		t, ok := tx.Get(id)
		if !ok {
			return fmt.Errorf("no task with id %q", id)
		}
		if t.Complete {
			return fmt.Errorf("task %q is already complete", id)
		}
		if t.Active() {
			return fmt.Errorf("task %q is already in progress", id)
		}
		n := t.Sessions() + 1
		t.InProgress = &n
		t.Stopped = false
		return tx.Put(t)
	})
}

// Stop pauses work on a task. The session counter is preserved so a
// resumed task is distinguishable from one never started.
func (s *Store) Stop(id string) (*graph.TaskGraph, error) {
	return s.Update(func(tx *Tx) error {
		t, ok := tx.Get(id)
		if !ok {
			return fmt.Errorf("no task with id %q", id)
		}
		if !t.Active() {
			return &CompletionError{Code: CodeNotInProgress, ID: id}
		}
		t.Stopped = true
		return tx.Put(t)
	})
}

// Done marks an in-progress task complete, provided every effective gate
// is passed or skipped. Completing an already-complete task is a no-op.
func (s *Store) Done(id string) (*graph.TaskGraph, error) {
	return s.Update(func(tx *Tx) error {
		t, ok := tx.Get(id)
		if !ok {
			return fmt.Errorf("no task with id %q", id)
		}
		if t.Complete {
			return nil
		}
		if t.Kind == task.KindJot {
			return &CompletionError{Code: CodeCannotCompleteJot, ID: id}
		}
		if !t.Active() {
			return &CompletionError{Code: CodeNotInProgress, ID: id}
		}
		if blocking := gate.Blocking(s.cfg.DefaultGates, &t); len(blocking) > 0 {
			return &CompletionError{Code: CodeGatesPending, ID: id, Gates: blocking}
		}
		t.Complete = true
		t.Stopped = false
		return tx.Put(t)
	})
}

// Unlock transitions the named gates on a task to passed (or skipped).
func (s *Store) Unlock(id string, names []string, status task.GateStatus) (*graph.TaskGraph, error) {
	return s.Update(func(tx *Tx) error {
		t, ok := tx.Get(id)
		if !ok {
			return fmt.Errorf("no task with id %q", id)
		}
		known := rootValidators(tx)
		for _, name := range names {
			if err := gate.Unlock(&t, s.cfg.DefaultGates, known, name, status); err != nil {
				return err
			}
		}
		return tx.Put(t)
	})
}

// Lock reverses passed gates on a task back to pending.
func (s *Store) Lock(id string, names []string) (*graph.TaskGraph, error) {
	return s.Update(func(tx *Tx) error {
		t, ok := tx.Get(id)
		if !ok {
			return fmt.Errorf("no task with id %q", id)
		}
		for _, name := range names {
			if err := gate.Lock(&t, s.cfg.DefaultGates, name); err != nil {
				return err
			}
		}
		return tx.Put(t)
	})
}

// Insert adds a new record, generating an id when the record has none.
func (s *Store) Insert(t task.Task) (string, *graph.TaskGraph, error) {
	id := t.ID
	g, err := s.Update(func(tx *Tx) error {
		if id == "" {
			id = tx.GenerateID()
		}
		if _, taken := tx.Get(id); taken {
			return fmt.Errorf("id %q is already taken", id)
		}
		t.ID = id
		return tx.Put(t)
	})
	if err != nil {
		return "", nil, err
	}
	return id, g, nil
}

// Replace swaps a record wholesale, rewriting references when the edit
// renamed it.
func (s *Store) Replace(id string, t task.Task) (*graph.TaskGraph, error) {
	return s.Update(func(tx *Tx) error {
		if _, ok := tx.Get(id); !ok {
			return fmt.Errorf("no task with id %q", id)
		}
		if t.ID != id {
			if err := tx.Rename(id, t.ID); err != nil {
				return err
			}
		}
		return tx.Put(t)
	})
}

// Delete removes a record and every reference to it.
func (s *Store) Delete(id string) (*graph.TaskGraph, error) {
	return s.Update(func(tx *Tx) error {
		return tx.Delete(id)
	})
}

// Distill converts one jot into a set of new tasks, all-or-nothing:
// either every new record is committed and the jot removed, or nothing
// changes.
func (s *Store) Distill(jotID string, tasks []task.Task) (*graph.TaskGraph, error) {
	return s.Update(func(tx *Tx) error {
		j, ok := tx.Get(jotID)
		if !ok {
			return fmt.Errorf("no task with id %q", jotID)
		}
		if j.Kind != task.KindJot {
			return fmt.Errorf("task %q is a %s, only jots can be distilled", jotID, j.Kind)
		}
		if len(tasks) == 0 {
			return fmt.Errorf("distilling %q requires at least one new task", jotID)
		}
		if err := tx.Delete(jotID); err != nil {
			return err
		}
		for _, t := range tasks {
			if t.ID == "" {
				t.ID = tx.GenerateID()
			}
			if _, taken := tx.Get(t.ID); taken {
				return fmt.Errorf("id %q is already taken", t.ID)
			}
			if err := tx.Put(t); err != nil {
				return err
			}
		}
		return nil
	})
}

// rootValidators returns a membership test over the staged root
// validator ids, used to let unlock append well-known gates.
func rootValidators(tx *Tx) func(string) bool {
	set := make(map[string]bool)
	for _, t := range tx.All() {
		if t.Kind == task.KindValidator && len(t.Before) == 0 {
			set[t.ID] = true
		}
	}
	return func(name string) bool { return set[name] }
}
