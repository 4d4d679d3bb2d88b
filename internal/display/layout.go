// Package display renders a task graph as a deterministic DAG diagram:
// level assignment, priority-tier positioning, grid construction, edge
// routing, and glyph mapping, in that order.
package display

import (
	"sort"

	"github.com/Sawyer-Powell/mont/internal/graph"
)

// Cell is one grid slot: empty, a task, or a routed connection segment.
type Cell struct {
	TaskID string
	Up     bool
	Down   bool
	Left   bool
	Right  bool
}

// IsTask reports whether the cell holds a task node.
func (c Cell) IsTask() bool { return c.TaskID != "" }

// IsEmpty reports whether nothing occupies the cell.
func (c Cell) IsEmpty() bool {
	return c.TaskID == "" && !c.Up && !c.Down && !c.Left && !c.Right
}

// Grid holds the expanded diagram: task rows at even indices with one
// connection row between each consecutive pair.
type Grid struct {
	cells [][]Cell
}

func newGrid(rows int) *Grid {
	g := &Grid{cells: make([][]Cell, rows)}
	for i := range g.cells {
		g.cells[i] = []Cell{}
	}
	return g
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the current width of the grid.
func (g *Grid) Cols() int {
	max := 0
	for _, row := range g.cells {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// At returns the cell at (row, col); out-of-range reads are empty.
func (g *Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return Cell{}
	}
	return g.cells[row][col]
}

func (g *Grid) ensure(row, col int) {
	for len(g.cells[row]) <= col {
		g.cells[row] = append(g.cells[row], Cell{})
	}
}

func (g *Grid) setTask(row, col int, id string) {
	g.ensure(row, col)
	g.cells[row][col].TaskID = id
}

// connect merges direction flags into a cell; crossing edges accumulate
// into tees and crosses rather than overwriting each other.
func (g *Grid) connect(row, col int, up, down, left, right bool) {
	g.ensure(row, col)
	c := &g.cells[row][col]
	c.Up = c.Up || up
	c.Down = c.Down || down
	c.Left = c.Left || left
	c.Right = c.Right || right
}

// Placement is the computed position of every task in one diagram:
// row and column indexes into the task-row coordinate space (before
// connection rows are interleaved).
type Placement struct {
	Order []string
	Row   map[string]int
	Col   map[string]int
}

// tier buckets tasks for positioning inside a level: in-progress work
// first, then anything with urgent effective priority, then the rest.
func tier(active bool, effPriority int) int {
	switch {
	case active:
		return 0
	case effPriority > 0:
		return 1
	default:
		return 2
	}
}

// ComputeLayout assigns each member task a row and column. Rows follow
// level order; within a level, tasks sort by tier and then id. Columns
// align a task under its leftmost placed dependency, shifting right when
// another task at the same level already claimed that column.
func ComputeLayout(g *graph.TaskGraph, members []string) Placement {
	inSet := make(map[string]bool, len(members))
	for _, id := range members {
		inSet[id] = true
	}
	levels := g.Levels()
	eff := g.EffectivePriorities()

	ordered := append([]string(nil), members...)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if levels[a] != levels[b] {
			return levels[a] < levels[b]
		}
		ta, _ := g.Get(a)
		tb, _ := g.Get(b)
		ra, rb := tier(ta.Active(), eff[a]), tier(tb.Active(), eff[b])
		if ra != rb {
			return ra < rb
		}
		return a < b
	})

	p := Placement{
		Order: ordered,
		Row:   make(map[string]int, len(ordered)),
		Col:   make(map[string]int, len(ordered)),
	}
	taken := make(map[int]map[int]bool) // level -> col -> claimed
	for i, id := range ordered {
		p.Row[id] = i
		level := levels[id]
		if taken[level] == nil {
			taken[level] = make(map[int]bool)
		}

		// Align under the leftmost placed dependency; tasks without one
		// start from column zero. Conflicts shift right.
		col := -1
		for _, dep := range g.Predecessors(id) {
			if !inSet[dep] {
				continue
			}
			if c, ok := p.Col[dep]; ok && (col == -1 || c < col) {
				col = c
			}
		}
		if col == -1 {
			col = 0
		}
		for taken[level][col] {
			col++
		}
		taken[level][col] = true
		p.Col[id] = col
	}
	return p
}

// BuildGrid expands the placement into the routed grid: task rows at
// even indices, connection rows between them, and every reduced edge
// traced through connection cells.
func BuildGrid(g *graph.TaskGraph, members []string, p Placement) *Grid {
	if len(p.Order) == 0 {
		return newGrid(0)
	}
	inSet := make(map[string]bool, len(members))
	for _, id := range members {
		inSet[id] = true
	}
	grid := newGrid(2*len(p.Order) - 1)
	for _, id := range p.Order {
		grid.setTask(2*p.Row[id], p.Col[id], id)
	}
	reduced := g.TransitiveReduction()
	for _, from := range p.Order {
		for _, to := range reduced[from] {
			if inSet[to] {
				routeEdge(grid, p, from, to)
			}
		}
	}
	return grid
}
