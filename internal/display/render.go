package display

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Sawyer-Powell/mont/internal/gate"
	"github.com/Sawyer-Powell/mont/internal/graph"
	"github.com/Sawyer-Powell/mont/internal/task"
	"github.com/Sawyer-Powell/mont/internal/ui"
)

// MaxTitleWidth bounds rendered titles, in display cells.
const MaxTitleWidth = 60

// Renderer draws a task graph as sectioned DAG diagrams: active tasks
// first, then jots, then validators, then (on request) completed tasks.
// Each connected component renders as its own block.
type Renderer struct {
	Graph            *graph.TaskGraph
	DefaultGates     []string
	IncludeCompleted bool
}

// Render produces the full diagram. Output is deterministic for a given
// graph: section order, component order, and row order are all fixed.
func (r *Renderer) Render() string {
	sections := []struct {
		header string
		member func(t task.Task) bool
	}{
		{"", func(t task.Task) bool { return t.Kind == task.KindTask && !t.Complete }},
		{"jots", func(t task.Task) bool { return t.Kind == task.KindJot }},
		{"validators", func(t task.Task) bool { return t.Kind == task.KindValidator && !t.Complete }},
	}
	if r.IncludeCompleted {
		sections = append(sections, struct {
			header string
			member func(t task.Task) bool
		}{"completed", func(t task.Task) bool { return t.Complete }})
	}

	var blocks []string
	for _, sec := range sections {
		var members []string
		for _, t := range r.Graph.Tasks() {
			if sec.member(t) {
				members = append(members, t.ID)
			}
		}
		if len(members) == 0 {
			continue
		}
		body := r.renderSection(members)
		if sec.header != "" {
			body = ui.RenderCategory(sec.header) + "\n" + body
		}
		blocks = append(blocks, body)
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// renderSection draws one section, one block per connected component.
func (r *Renderer) renderSection(members []string) string {
	inSet := make(map[string]bool, len(members))
	for _, id := range members {
		inSet[id] = true
	}
	var parts []string
	for _, component := range r.Graph.ConnectedComponents() {
		var sub []string
		for _, id := range component {
			if inSet[id] {
				sub = append(sub, id)
			}
		}
		if len(sub) == 0 {
			continue
		}
		parts = append(parts, r.renderComponent(sub))
	}
	return strings.Join(parts, "\n\n")
}

func (r *Renderer) renderComponent(members []string) string {
	p := ComputeLayout(r.Graph, members)
	grid := BuildGrid(r.Graph, members, p)

	var lines []string
	for row := 0; row < grid.Rows(); row++ {
		if line := r.renderRow(grid, row); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// renderRow emits one grid row. Each column sits at display position
// col*2; a task line may run past its own column, in which case the
// covered cells are dropped rather than overprinted.
func (r *Renderer) renderRow(grid *Grid, row int) string {
	var out strings.Builder
	width := 0
	for col := 0; col < grid.Cols(); col++ {
		c := grid.At(row, col)
		if c.IsEmpty() {
			continue
		}
		target := col * 2
		if width > target {
			continue
		}
		for width < target {
			out.WriteString(" ")
			width++
		}
		if c.IsTask() {
			text, w := r.taskLine(c.TaskID)
			out.WriteString(text)
			width += w
		} else {
			out.WriteString(cellText(c))
			width += 2
		}
	}
	return strings.TrimRight(out.String(), " ")
}

// taskLine renders the marker, colored id, truncated title, and kind
// suffix for one task, returning the text and its display width
// (styling sequences excluded).
func (r *Renderer) taskLine(id string) (string, int) {
	t, _ := r.Graph.Get(id)
	st := graph.StatusOf(r.Graph, t, gate.Effective(r.DefaultGates, &t))

	marker, paint := markerFor(t, st)
	var out strings.Builder
	width := 0
	out.WriteString(paint(marker))
	out.WriteString(" ")
	out.WriteString(paint(t.ID))
	width += 2 + runewidth.StringWidth(t.ID)
	if t.Title != "" {
		title := TruncateTitle(t.Title, MaxTitleWidth)
		out.WriteString(" ")
		out.WriteString(title)
		width += 1 + runewidth.StringWidth(title)
	}
	switch t.Kind {
	case task.KindJot:
		out.WriteString(ui.RenderMuted(" (jot)"))
		width += len(" (jot)")
	case task.KindValidator:
		out.WriteString(ui.RenderMuted(" (validator)"))
		width += len(" (validator)")
	}
	return out.String(), width
}

func markerFor(t task.Task, st graph.Status) (string, func(string) string) {
	switch {
	case t.Complete:
		return ui.MarkerComplete, ui.RenderMuted
	case t.Kind == task.KindValidator:
		return ui.MarkerValidator, ui.RenderValidator
	case t.Kind == task.KindJot:
		return ui.MarkerJot, ui.RenderWarn
	case st.State == graph.StateInProgress || st.State == graph.StateGatesPending:
		return ui.MarkerInProgress, ui.RenderWarn
	case st.State == graph.StateReady:
		return ui.MarkerReady, ui.RenderPass
	default:
		return ui.MarkerBlocked, ui.RenderMuted
	}
}

// TruncateTitle bounds a title to width display cells, ending with an
// ellipsis that never follows a space.
func TruncateTitle(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	cut := runewidth.Truncate(s, width-1, "")
	cut = strings.TrimRight(cut, " ")
	return cut + "…"
}
