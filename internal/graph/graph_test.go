package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sawyer-Powell/mont/internal/task"
)

func mk(id string, mut ...func(*task.Task)) task.Task {
	t := task.Task{ID: id, Title: id, Kind: task.KindTask}
	for _, m := range mut {
		m(&t)
	}
	return t
}

func after(ids ...string) func(*task.Task)  { return func(t *task.Task) { t.After = ids } }
func before(ids ...string) func(*task.Task) { return func(t *task.Task) { t.Before = ids } }
func complete() func(*task.Task)            { return func(t *task.Task) { t.Complete = true } }
func kind(k task.Kind) func(*task.Task)     { return func(t *task.Task) { t.Kind = k } }

func mustBuild(t *testing.T, tasks ...task.Task) *TaskGraph {
	t.Helper()
	g, err := Build(tasks)
	require.NoError(t, err)
	return g
}

func buildErr(t *testing.T, tasks ...task.Task) *Error {
	t.Helper()
	g, err := Build(tasks)
	require.Nil(t, g, "no partial graph on failure")
	require.Error(t, err)
	gerr, ok := err.(*Error)
	require.True(t, ok, "want *Error, got %T", err)
	return gerr
}

func TestBuildValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		tasks []task.Task
		code  Code
		id    string
	}{
		{
			"duplicate id",
			[]task.Task{mk("a"), mk("a")},
			CodeDuplicateID, "a",
		},
		{
			"unresolved before",
			[]task.Task{mk("a", before("ghost"))},
			CodeInvalidParent, "a",
		},
		{
			"unresolved after",
			[]task.Task{mk("a", after("ghost"))},
			CodeInvalidPrecondition, "a",
		},
		{
			"unresolved validation",
			[]task.Task{mk("a", func(tk *task.Task) { tk.Validations = []string{"ghost"} })},
			CodeInvalidValidation, "a",
		},
		{
			"validation target not a validator",
			[]task.Task{mk("a", func(tk *task.Task) { tk.Validations = []string{"b"} }), mk("b")},
			CodeInvalidValidation, "a",
		},
		{
			"validator not root",
			[]task.Task{
				mk("p"),
				mk("t", func(tk *task.Task) { tk.Validations = []string{"v"} }),
				mk("v", kind(task.KindValidator), before("p")),
			},
			CodeValidationNotRootValidator, "t",
		},
		{
			"two-task cycle",
			[]task.Task{mk("a", after("b")), mk("b", after("a"))},
			CodeCycleDetected, "",
		},
		{
			"cycle through before edges",
			[]task.Task{mk("a", before("b")), mk("b", before("c")), mk("c", before("a"))},
			CodeCycleDetected, "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gerr := buildErr(t, tt.tasks...)
			assert.Equal(t, tt.code, gerr.Code)
			if tt.id != "" {
				assert.Equal(t, tt.id, gerr.ID)
			}
		})
	}
}

func TestBuildReportsFirstViolationByID(t *testing.T) {
	// Both records are broken; the id-sorted iteration pins the report.
	gerr := buildErr(t,
		mk("zebra", after("ghost")),
		mk("apple", before("ghost")),
	)
	assert.Equal(t, CodeInvalidParent, gerr.Code)
	assert.Equal(t, "apple", gerr.ID)
}

func TestCycleErrorNamesATaskOnTheCycle(t *testing.T) {
	gerr := buildErr(t,
		mk("entry", after("x")),
		mk("x", after("y")),
		mk("y", after("x")),
	)
	assert.Equal(t, CodeCycleDetected, gerr.Code)
	assert.Contains(t, []string{"x", "y"}, gerr.ID)
}

func TestBeforeEdgesAreDependencies(t *testing.T) {
	// sub declares it comes before epic: epic depends on sub.
	g := mustBuild(t, mk("epic"), mk("sub", before("epic")))
	assert.Equal(t, []string{"sub"}, g.Predecessors("epic"))
	assert.Equal(t, []string{"epic"}, g.Successors("sub"))
}

func TestReadinessScenario(t *testing.T) {
	a := mk("a")
	b := mk("b", after("a"))
	c := mk("c", after("a"))

	g := mustBuild(t, a, b, c)
	levels := g.Levels()
	assert.Equal(t, 0, levels["a"])
	assert.Equal(t, 1, levels["b"])
	assert.Equal(t, 1, levels["c"])
	assert.Equal(t, []string{"a"}, g.Ready())

	g = mustBuild(t, mk("a", complete()), b, c)
	assert.Equal(t, []string{"b", "c"}, g.Ready())
}

func TestStatusOf(t *testing.T) {
	one := 1
	deps := mustBuild(t, mk("dep"), mk("t", after("dep")))

	tests := []struct {
		name  string
		tk    task.Task
		gates []task.Gate
		want  State
	}{
		{"complete", mk("t", after("dep"), complete()), nil, StateComplete},
		{"blocked behind dep", mk("t", after("dep")), nil, StateBlocked},
		{"validator never ready", mk("v", kind(task.KindValidator)), nil, StateNotStarted},
		{
			"in progress",
			mk("t", after("dep"), func(tk *task.Task) { tk.InProgress = &one }),
			[]task.Gate{{Name: "g", Status: task.GatePending}},
			StateInProgress,
		},
		{
			"gates pending once evaluation starts",
			mk("t", after("dep"), func(tk *task.Task) { tk.InProgress = &one }),
			[]task.Gate{{Name: "g", Status: task.GateFailed}, {Name: "h", Status: task.GatePending}},
			StateGatesPending,
		},
		{
			"stopped is ready again",
			mk("t", after("dep"), func(tk *task.Task) { tk.InProgress = &one; tk.Stopped = true }),
			nil, StateBlocked, // dep incomplete, stop does not unblock
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusOf(deps, tt.tk, tt.gates)
			assert.Equal(t, tt.want, got.State)
		})
	}

	// Stopped with dependencies met: ready, counter preserved.
	g := mustBuild(t, mk("dep", complete()), mk("t", after("dep")))
	stopped := mk("t", after("dep"), func(tk *task.Task) { tk.InProgress = &one; tk.Stopped = true })
	got := StatusOf(g, stopped, nil)
	assert.Equal(t, StateReady, got.State)
	assert.Equal(t, 1, got.Sessions)
}

func TestTopologicalOrderIsDeterministic(t *testing.T) {
	g := mustBuild(t,
		mk("d", after("b", "c")),
		mk("c", after("a")),
		mk("b", after("a")),
		mk("a"),
	)
	assert.Equal(t, []string{"a", "b", "c", "d"}, g.TopologicalOrder())
}

func TestTransitiveReduction(t *testing.T) {
	// a -> b -> c plus the redundant direct edge a -> c.
	g := mustBuild(t,
		mk("a"),
		mk("b", after("a")),
		mk("c", after("a", "b")),
	)
	reduced := g.TransitiveReduction()
	assert.Equal(t, []string{"b"}, reduced["a"])
	assert.Equal(t, []string{"c"}, reduced["b"])

	// Property: no kept edge has an alternate path of length >= 2.
	for from, succs := range reduced {
		for _, to := range succs {
			for _, mid := range succs {
				if mid != to {
					assert.False(t, g.reaches(mid, to),
						"edge %s->%s is redundant via %s", from, to, mid)
				}
			}
		}
	}
}

func TestConnectedComponents(t *testing.T) {
	g := mustBuild(t,
		mk("a"), mk("b", after("a")),
		mk("x"), mk("y", before("x")),
		mk("lone"),
	)
	assert.Equal(t, [][]string{{"a", "b"}, {"lone"}, {"x", "y"}}, g.ConnectedComponents())
}

func TestEffectivePriorities(t *testing.T) {
	g := mustBuild(t,
		mk("base"),
		mk("mid", after("base")),
		mk("urgent", after("mid"), func(tk *task.Task) { tk.Priority = 3 }),
		mk("side", after("base"), func(tk *task.Task) { tk.Priority = 1 }),
	)
	eff := g.EffectivePriorities()
	assert.Equal(t, 3, eff["base"], "priority flows to transitive dependencies")
	assert.Equal(t, 3, eff["mid"])
	assert.Equal(t, 3, eff["urgent"])
	assert.Equal(t, 1, eff["side"])

	for id, tk := range map[string]int{"base": 0, "mid": 0, "urgent": 3, "side": 1} {
		assert.GreaterOrEqual(t, eff[id], tk, "effective priority never below own")
	}
}

func TestGraphIsASnapshot(t *testing.T) {
	orig := mk("a")
	g := mustBuild(t, orig)

	got, ok := g.Get("a")
	require.True(t, ok)
	got.Title = "mutated"

	again, _ := g.Get("a")
	assert.Equal(t, "a", again.Title)
}
