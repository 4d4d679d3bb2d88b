package display

// routeEdge traces one dependency edge through the expanded grid. The
// edge leaves the dependency's task row downward, travels vertically in
// a single column, and enters the dependent's row from above, with
// horizontal jogs in the connection rows directly below the source and
// directly above the target.
//
// The travel column must not pass through an unrelated task cell. The
// target's column is preferred, then the source's, then the nearest
// free column scanning outward from the target.
func routeEdge(grid *Grid, p Placement, from, to string) {
	r1, c1 := 2*p.Row[from], p.Col[from]
	r2, c2 := 2*p.Row[to], p.Col[to]
	if r2 <= r1 {
		return
	}

	// Adjacent rows share one connection row; a straight or L-shaped
	// run inside it is always safe.
	if r2 == r1+2 {
		drawJog(grid, r1+1, c1, c2)
		return
	}

	ct := travelColumn(grid, r1, r2, c1, c2)
	drawJog(grid, r1+1, c1, ct)
	for r := r1 + 2; r <= r2-2; r++ {
		grid.connect(r, ct, true, true, false, false)
	}
	drawJog(grid, r2-1, ct, c2)
}

// drawJog fills one connection row from the column above (entered going
// down) to the column below (exited going down).
func drawJog(grid *Grid, row, fromCol, toCol int) {
	if fromCol == toCol {
		grid.connect(row, fromCol, true, true, false, false)
		return
	}
	rightward := toCol > fromCol
	lo, hi := fromCol, toCol
	if lo > hi {
		lo, hi = hi, lo
	}
	for c := lo; c <= hi; c++ {
		switch c {
		case fromCol:
			grid.connect(row, c, true, false, !rightward, rightward)
		case toCol:
			grid.connect(row, c, false, true, rightward, !rightward)
		default:
			grid.connect(row, c, false, false, true, true)
		}
	}
}

// travelColumn picks the vertical column for a multi-level edge. A
// column is forbidden when any task row strictly between the endpoints
// has a task cell in it; edges never cross through an unrelated node.
func travelColumn(grid *Grid, r1, r2, c1, c2 int) int {
	clear := func(col int) bool {
		if col < 0 {
			return false
		}
		for r := r1 + 2; r <= r2-2; r += 2 {
			if grid.At(r, col).IsTask() {
				return false
			}
		}
		return true
	}
	if clear(c2) {
		return c2
	}
	if clear(c1) {
		return c1
	}
	for d := 1; ; d++ {
		if clear(c2 + d) {
			return c2 + d
		}
		if clear(c2 - d) {
			return c2 - d
		}
	}
}
