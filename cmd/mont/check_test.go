package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sawyer-Powell/mont/internal/graph"
	"github.com/Sawyer-Powell/mont/internal/task"
)

func TestIncompleteDeps(t *testing.T) {
	g, err := graph.Build([]task.Task{
		{ID: "a", Kind: task.KindTask, Complete: true},
		{ID: "b", Kind: task.KindTask},
		{ID: "c", Kind: task.KindTask, After: []string{"a", "b"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, incompleteDeps(g, "c"))
	assert.Empty(t, incompleteDeps(g, "a"))
}
