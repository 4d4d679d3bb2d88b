package graph

// EffectivePriorities widens each task's own priority to the maximum
// priority of anything it transitively blocks. Dependents are processed
// before their dependencies by walking the topological order in reverse,
// so each task is evaluated exactly once.
func (g *TaskGraph) EffectivePriorities() map[string]int {
	eff := make(map[string]int, len(g.ids))
	for i := len(g.topo) - 1; i >= 0; i-- {
		id := g.topo[i]
		p := g.tasks[id].Priority
		for _, dependent := range g.succ[id] {
			if eff[dependent] > p {
				p = eff[dependent]
			}
		}
		eff[id] = p
	}
	return eff
}
