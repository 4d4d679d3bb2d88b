// Package mont provides a minimal public API for driving mont's task
// graph programmatically.
//
// Most automation should shell out to the mont CLI with --json. This
// package exports only the essential types and functions needed for
// Go programs that want to read or mutate a tasks directory directly.
package mont

import (
	"github.com/Sawyer-Powell/mont/internal/graph"
	"github.com/Sawyer-Powell/mont/internal/store"
	"github.com/Sawyer-Powell/mont/internal/task"
)

// Core types for working with records
type (
	Task       = task.Task
	Kind       = task.Kind
	Gate       = task.Gate
	GateStatus = task.GateStatus
	TaskGraph  = graph.TaskGraph
	Status     = graph.Status
	State      = graph.State
)

// Kind constants
const (
	KindTask      = task.KindTask
	KindJot       = task.KindJot
	KindValidator = task.KindValidator
)

// GateStatus constants
const (
	GatePending = task.GatePending
	GatePassed  = task.GatePassed
	GateFailed  = task.GateFailed
	GateSkipped = task.GateSkipped
)

// State constants
const (
	StateNotStarted   = graph.StateNotStarted
	StateReady        = graph.StateReady
	StateBlocked      = graph.StateBlocked
	StateInProgress   = graph.StateInProgress
	StateGatesPending = graph.StateGatesPending
	StateComplete     = graph.StateComplete
)

// Store provides validated, atomic access to a tasks directory
type Store = store.Store

// Open opens an existing tasks directory.
func Open(dir string) (*Store, error) {
	return store.Open(dir)
}

// Init creates a new tasks directory with a default configuration.
func Init(dir string) (*Store, error) {
	return store.Init(dir)
}
