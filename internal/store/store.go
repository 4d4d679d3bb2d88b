// Package store persists task records as markdown files in a tasks
// directory and applies every mutation through a validate-then-commit
// transaction: stage edits against a copy of the record set, rebuild and
// validate the graph, and only then touch the filesystem. A failed
// validation leaves the directory byte-for-byte intact.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Sawyer-Powell/mont/internal/config"
	"github.com/Sawyer-Powell/mont/internal/graph"
	"github.com/Sawyer-Powell/mont/internal/task"
)

// DefaultDir is the tasks directory name, resolved relative to the
// working directory unless overridden.
const DefaultDir = ".tasks"

// Store is a handle on one tasks directory.
type Store struct {
	dir string
	cfg *config.Config

	// writeFile is swapped in tests to simulate partial write failures.
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// Open opens an existing tasks directory.
func Open(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no tasks directory at %s, run 'mont init' first", dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s exists but is not a directory", dir)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, cfg: cfg, writeFile: os.WriteFile}, nil
}

// Init creates a tasks directory with a default configuration. It is an
// error if the directory already exists.
func Init(dir string) (*Store, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%s already exists", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	cfg := &config.Config{}
	if err := cfg.Write(dir); err != nil {
		return nil, err
	}
	return &Store{dir: dir, cfg: cfg, writeFile: os.WriteFile}, nil
}

// Dir returns the tasks directory path.
func (s *Store) Dir() string { return s.dir }

// Config returns the loaded global configuration.
func (s *Store) Config() *config.Config { return s.cfg }

// Load parses every record in the directory, in filename order.
func (s *Store) Load() ([]task.Task, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var tasks []task.Task
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		t, err := task.Parse(path, data)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// Graph loads all records, forms the validated graph, and checks the
// configuration against it.
func (s *Store) Graph() (*graph.TaskGraph, error) {
	tasks, err := s.Load()
	if err != nil {
		return nil, err
	}
	g, err := graph.Build(tasks)
	if err != nil {
		return nil, err
	}
	if err := s.cfg.Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// GenerateID produces a fresh id against the current record set without
// reserving it. Callers racing each other are caught by Insert.
func (s *Store) GenerateID() (string, error) {
	tasks, err := s.Load()
	if err != nil {
		return "", err
	}
	tx := &Tx{tasks: make(map[string]task.Task, len(tasks))}
	for _, t := range tasks {
		tx.tasks[t.ID] = t
	}
	return tx.GenerateID(), nil
}

// References reports the ids of records that name id in their before,
// after, validations, or gates.
func (s *Store) References(id string) ([]string, error) {
	tasks, err := s.Load()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, t := range tasks {
		for _, ref := range t.References() {
			if ref == id {
				out = append(out, t.ID)
				break
			}
		}
	}
	return out, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".md")
}
