package store

import (
	"fmt"
	"os"
	"sort"

	"github.com/Sawyer-Powell/mont/internal/graph"
	"github.com/Sawyer-Powell/mont/internal/task"
)

// Tx stages edits against a snapshot of the record set. Nothing reaches
// the filesystem until every staged record passes graph validation.
type Tx struct {
	tasks   map[string]task.Task
	dirty   map[string]bool
	deleted map[string]bool
}

// Get returns a copy of a staged record.
func (tx *Tx) Get(id string) (task.Task, bool) {
	t, ok := tx.tasks[id]
	if !ok {
		return task.Task{}, false
	}
	return t.Clone(), true
}

// All returns copies of every staged record, id-sorted.
func (tx *Tx) All() []task.Task {
	ids := make([]string, 0, len(tx.tasks))
	for id := range tx.tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		t := tx.tasks[id]
		out = append(out, t.Clone())
	}
	return out
}

// Put stages an insert or update. Record-local invariants are checked
// here so a broken record fails before it can dirty the transaction.
func (tx *Tx) Put(t task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	tx.tasks[t.ID] = t.Clone()
	tx.dirty[t.ID] = true
	delete(tx.deleted, t.ID)
	return nil
}

// Delete stages a removal and rewrites every reference to the removed
// id: before/after/validations entries are dropped, as are gate entries
// naming a removed validator.
func (tx *Tx) Delete(id string) error {
	if _, ok := tx.tasks[id]; !ok {
		return fmt.Errorf("no task with id %q", id)
	}
	delete(tx.tasks, id)
	tx.deleted[id] = true
	delete(tx.dirty, id)
	tx.rewriteReferences(id, "")
	return nil
}

// Rename changes a record's id and rewrites every reference to it.
func (tx *Tx) Rename(oldID, newID string) error {
	t, ok := tx.tasks[oldID]
	if !ok {
		return fmt.Errorf("no task with id %q", oldID)
	}
	if oldID == newID {
		return nil
	}
	if _, taken := tx.tasks[newID]; taken {
		return fmt.Errorf("id %q is already taken", newID)
	}
	renamed := t.Clone()
	renamed.ID = newID
	if err := renamed.Validate(); err != nil {
		return err
	}
	delete(tx.tasks, oldID)
	tx.deleted[oldID] = true
	delete(tx.dirty, oldID)
	tx.tasks[newID] = renamed
	tx.dirty[newID] = true
	tx.rewriteReferences(oldID, newID)
	return nil
}

// References returns the ids of staged records that mention id.
func (tx *Tx) References(id string) []string {
	var out []string
	for _, t := range tx.All() {
		for _, ref := range t.References() {
			if ref == id {
				out = append(out, t.ID)
				break
			}
		}
	}
	return out
}

// rewriteReferences replaces oldID with newID in every record's reference
// lists and gate entries, dropping the entry when newID is empty.
func (tx *Tx) rewriteReferences(oldID, newID string) {
	for id, t := range tx.tasks {
		c := t.Clone()
		changed := false
		if list, ok := rewriteList(c.Before, oldID, newID); ok {
			c.Before, changed = list, true
		}
		if list, ok := rewriteList(c.After, oldID, newID); ok {
			c.After, changed = list, true
		}
		if list, ok := rewriteList(c.Validations, oldID, newID); ok {
			c.Validations, changed = list, true
		}
		if gates, ok := rewriteGates(c.Gates, oldID, newID); ok {
			c.Gates, changed = gates, true
		}
		if changed {
			tx.tasks[id] = c
			tx.dirty[id] = true
		}
	}
}

func rewriteList(list []string, oldID, newID string) ([]string, bool) {
	changed := false
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != oldID {
			out = append(out, v)
			continue
		}
		changed = true
		if newID != "" {
			out = append(out, newID)
		}
	}
	if !changed {
		return list, false
	}
	if len(out) == 0 {
		return nil, true
	}
	return out, true
}

func rewriteGates(gates []task.Gate, oldID, newID string) ([]task.Gate, bool) {
	changed := false
	out := make([]task.Gate, 0, len(gates))
	for _, g := range gates {
		if g.Name != oldID {
			out = append(out, g)
			continue
		}
		changed = true
		if newID != "" {
			g.Name = newID
			out = append(out, g)
		}
	}
	if !changed {
		return gates, false
	}
	if len(out) == 0 {
		return nil, true
	}
	return out, true
}

// Update runs fn against a staged snapshot, validates the result as a
// whole, and persists atomically: every changed record is written to a
// temporary file first, and only when all of them succeed are the
// temporaries renamed into place and deleted records removed. On any
// failure the temporaries are discarded and the directory is untouched.
func (s *Store) Update(fn func(tx *Tx) error) (*graph.TaskGraph, error) {
	tasks, err := s.Load()
	if err != nil {
		return nil, err
	}
	tx := &Tx{
		tasks:   make(map[string]task.Task, len(tasks)),
		dirty:   make(map[string]bool),
		deleted: make(map[string]bool),
	}
	for _, t := range tasks {
		tx.tasks[t.ID] = t
	}

	if err := fn(tx); err != nil {
		return nil, err
	}

	g, err := graph.Build(tx.All())
	if err != nil {
		return nil, err
	}
	if err := s.cfg.Validate(g); err != nil {
		return nil, err
	}

	if err := s.persist(tx); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Store) persist(tx *Tx) error {
	dirty := make([]string, 0, len(tx.dirty))
	for id := range tx.dirty {
		dirty = append(dirty, id)
	}
	sort.Strings(dirty)

	var temps []string
	cleanup := func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}
	for _, id := range dirty {
		t := tx.tasks[id]
		out, err := t.Markdown()
		if err != nil {
			cleanup()
			return err
		}
		tmp := s.path(id) + ".tmp"
		if err := s.writeFile(tmp, []byte(out), 0o644); err != nil {
			cleanup()
			return fmt.Errorf("writing %s: %w", tmp, err)
		}
		temps = append(temps, tmp)
	}
	for i, tmp := range temps {
		if err := os.Rename(tmp, s.path(dirty[i])); err != nil {
			cleanup()
			return err
		}
	}
	for id := range tx.deleted {
		if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
