package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sawyer-Powell/mont/internal/task"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	dir := filepath.Join(t.TempDir(), DefaultDir)
	s, err := Init(dir)
	require.NoError(t, err)
	return s
}

func put(t *testing.T, s *Store, tasks ...task.Task) {
	t.Helper()
	_, err := s.Update(func(tx *Tx) error {
		for _, tk := range tasks {
			if err := tx.Put(tk); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func get(t *testing.T, s *Store, id string) task.Task {
	t.Helper()
	tasks, err := s.Load()
	require.NoError(t, err)
	for _, tk := range tasks {
		if tk.ID == id {
			return tk
		}
	}
	t.Fatalf("task %q not found", id)
	return task.Task{}
}

func TestInitAndOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)
	_, err := Open(dir)
	require.Error(t, err, "open before init fails")

	_, err = Init(dir)
	require.NoError(t, err)
	_, err = Init(dir)
	require.Error(t, err, "double init fails")

	s, err := Open(dir)
	require.NoError(t, err)
	tasks, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUpdatePersistsRecords(t *testing.T) {
	s := newStore(t)
	put(t, s,
		task.Task{ID: "a", Title: "First", Kind: task.KindTask},
		task.Task{ID: "b", Kind: task.KindTask, After: []string{"a"}},
	)

	data, err := os.ReadFile(filepath.Join(s.Dir(), "a.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "id: a")

	g, err := s.Graph()
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"a"}, g.Predecessors("b"))
}

func TestUpdateRejectsInvalidGraphWithoutWriting(t *testing.T) {
	s := newStore(t)
	put(t, s, task.Task{ID: "a", Kind: task.KindTask})

	_, err := s.Update(func(tx *Tx) error {
		return tx.Put(task.Task{ID: "b", Kind: task.KindTask, After: []string{"ghost"}})
	})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(s.Dir(), "b.md"))
	assert.True(t, os.IsNotExist(statErr), "rejected record must not be written")
}

func TestStartStopDone(t *testing.T) {
	s := newStore(t)
	put(t, s, task.Task{ID: "a", Kind: task.KindTask})

	_, err := s.Start("a")
	require.NoError(t, err)
	tk := get(t, s, "a")
	assert.True(t, tk.Active())
	assert.Equal(t, 1, tk.Sessions())

	_, err = s.Start("a")
	require.Error(t, err, "double start fails")

	_, err = s.Stop("a")
	require.NoError(t, err)
	tk = get(t, s, "a")
	assert.False(t, tk.Active())
	assert.Equal(t, 1, tk.Sessions(), "counter preserved across stop")

	_, err = s.Start("a")
	require.NoError(t, err)
	tk = get(t, s, "a")
	assert.Equal(t, 2, tk.Sessions(), "counter increments on restart")

	_, err = s.Done("a")
	require.NoError(t, err)
	assert.True(t, get(t, s, "a").Complete)

	// Idempotent: completing again is a no-op success.
	_, err = s.Done("a")
	require.NoError(t, err)
}

func TestDoneRequiresInProgress(t *testing.T) {
	s := newStore(t)
	put(t, s, task.Task{ID: "a", Kind: task.KindTask})

	_, err := s.Done("a")
	var cerr *CompletionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, CodeNotInProgress, cerr.Code)
}

func TestDoneBlockedByGates(t *testing.T) {
	s := newStore(t)
	put(t, s,
		task.Task{ID: "review", Kind: task.KindValidator},
		task.Task{ID: "a", Kind: task.KindTask, Gates: []task.Gate{{Name: "review", Status: task.GatePending}}},
	)
	_, err := s.Start("a")
	require.NoError(t, err)

	_, err = s.Done("a")
	var cerr *CompletionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, CodeGatesPending, cerr.Code)
	assert.Equal(t, []string{"review"}, cerr.Gates)

	_, err = s.Unlock("a", []string{"review"}, task.GatePassed)
	require.NoError(t, err)
	_, err = s.Done("a")
	require.NoError(t, err)
}

func TestDoneRejectsJots(t *testing.T) {
	s := newStore(t)
	put(t, s, task.Task{ID: "j", Kind: task.KindJot})
	_, err := s.Start("j")
	require.NoError(t, err)

	_, err = s.Done("j")
	var cerr *CompletionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, CodeCannotCompleteJot, cerr.Code)
}

func TestUnlockAppliesDefaultGates(t *testing.T) {
	s := newStore(t)
	put(t, s,
		task.Task{ID: "tests", Kind: task.KindValidator},
		task.Task{ID: "a", Kind: task.KindTask},
	)
	s.cfg.DefaultGates = []string{"tests"}

	_, err := s.Unlock("a", []string{"tests"}, task.GatePassed)
	require.NoError(t, err)
	tk := get(t, s, "a")
	require.Len(t, tk.Gates, 1)
	assert.Equal(t, task.Gate{Name: "tests", Status: task.GatePassed}, tk.Gates[0])
}

func TestUnlockAppendsRootValidator(t *testing.T) {
	s := newStore(t)
	put(t, s,
		task.Task{ID: "lint", Kind: task.KindValidator},
		task.Task{ID: "a", Kind: task.KindTask},
	)
	_, err := s.Unlock("a", []string{"lint"}, task.GateSkipped)
	require.NoError(t, err)
	assert.Equal(t, []task.Gate{{Name: "lint", Status: task.GateSkipped}}, get(t, s, "a").Gates)

	_, err = s.Unlock("a", []string{"ghost"}, task.GatePassed)
	require.Error(t, err)
}

func TestDeleteRewritesReferences(t *testing.T) {
	s := newStore(t)
	put(t, s,
		task.Task{ID: "core", Kind: task.KindTask},
		task.Task{ID: "dep", Kind: task.KindTask, After: []string{"core"}},
		task.Task{ID: "sib", Kind: task.KindTask, Before: []string{"core"}, After: []string{"dep"}},
	)

	_, err := s.Delete("core")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(s.Dir(), "core.md"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, get(t, s, "dep").After)
	assert.Empty(t, get(t, s, "sib").Before)
	assert.Equal(t, []string{"dep"}, get(t, s, "sib").After, "unrelated references survive")
}

func TestRenameRewritesReferences(t *testing.T) {
	s := newStore(t)
	put(t, s,
		task.Task{ID: "old-name", Kind: task.KindValidator},
		task.Task{ID: "user", Kind: task.KindTask,
			Validations: []string{"old-name"},
			Gates:       []task.Gate{{Name: "old-name", Status: task.GatePassed}}},
	)

	_, err := s.Update(func(tx *Tx) error { return tx.Rename("old-name", "new-name") })
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(s.Dir(), "old-name.md"))
	assert.True(t, os.IsNotExist(statErr))
	user := get(t, s, "user")
	assert.Equal(t, []string{"new-name"}, user.Validations)
	assert.Equal(t, []task.Gate{{Name: "new-name", Status: task.GatePassed}}, user.Gates)
}

func TestDistill(t *testing.T) {
	s := newStore(t)
	put(t, s,
		task.Task{ID: "j", Kind: task.KindJot, Title: "big idea"},
		task.Task{ID: "ref", Kind: task.KindTask, After: []string{"j"}},
	)

	_, err := s.Distill("j", []task.Task{
		{ID: "x", Kind: task.KindTask},
		{ID: "y", Kind: task.KindTask, After: []string{"x"}},
	})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(s.Dir(), "j.md"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, get(t, s, "ref").After, "jot references dropped")
	assert.Equal(t, []string{"x"}, get(t, s, "y").After)
}

func TestDistillIsAllOrNothing(t *testing.T) {
	s := newStore(t)
	put(t, s, task.Task{ID: "j", Kind: task.KindJot, Title: "big idea"})

	// Simulate a write failure after the first new record is staged.
	calls := 0
	s.writeFile = func(name string, data []byte, perm os.FileMode) error {
		calls++
		if calls > 1 {
			return errors.New("disk full")
		}
		return os.WriteFile(name, data, perm)
	}

	_, err := s.Distill("j", []task.Task{
		{ID: "x", Kind: task.KindTask},
		{ID: "y", Kind: task.KindTask, After: []string{"x"}},
	})
	require.Error(t, err)

	// The jot is untouched and no new record is left dangling.
	s.writeFile = os.WriteFile
	tasks, err := s.Load()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "j", tasks[0].ID)
	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "no temp files left behind")
	}
}

func TestDistillRejectsNonJots(t *testing.T) {
	s := newStore(t)
	put(t, s, task.Task{ID: "a", Kind: task.KindTask})
	_, err := s.Distill("a", []task.Task{{ID: "x", Kind: task.KindTask}})
	require.Error(t, err)
}

func TestInsertGeneratesID(t *testing.T) {
	s := newStore(t)
	id, _, err := s.Insert(task.Task{Kind: task.KindJot, Title: "note"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, task.KindJot, get(t, s, id).Kind)
}

func TestGenerateIDAvoidsCollisions(t *testing.T) {
	tx := &Tx{tasks: map[string]task.Task{}, dirty: map[string]bool{}, deleted: map[string]bool{}}
	for i := 0; i < 50; i++ {
		id := tx.GenerateID()
		_, taken := tx.tasks[id]
		require.False(t, taken, "generated id %q collides", id)
		tx.tasks[id] = task.Task{ID: id}
	}
	assert.Len(t, tx.tasks, 50)
}
