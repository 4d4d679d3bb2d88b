package graph

import "sort"

// Levels assigns each task its longest-path distance from any
// dependency-free source task. Sources sit at level 0. Computed by
// propagating over the topological order, so each edge is visited once.
func (g *TaskGraph) Levels() map[string]int {
	levels := make(map[string]int, len(g.ids))
	for _, id := range g.topo {
		level := 0
		for _, dep := range g.pred[id] {
			if levels[dep]+1 > level {
				level = levels[dep] + 1
			}
		}
		levels[id] = level
	}
	return levels
}

// TransitiveReduction returns the successor lists with every redundant
// direct edge removed: an edge (a, c) is dropped when some multi-hop path
// a -> ... -> c already exists. The reduced lists are sorted.
func (g *TaskGraph) TransitiveReduction() map[string][]string {
	reduced := make(map[string][]string, len(g.ids))
	for _, a := range g.ids {
		direct := g.succ[a]
		kept := make([]string, 0, len(direct))
		for _, c := range direct {
			redundant := false
			for _, b := range direct {
				if b != c && g.reaches(b, c) {
					redundant = true
					break
				}
			}
			if !redundant {
				kept = append(kept, c)
			}
		}
		sort.Strings(kept)
		reduced[a] = kept
	}
	return reduced
}

// reaches reports whether to is reachable from from along one or more
// dependency edges.
func (g *TaskGraph) reaches(from, to string) bool {
	if from == to {
		return true
	}
	seen := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.succ[id] {
			if next == to {
				return true
			}
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// ConnectedComponents groups tasks connected by any edge, ignoring
// direction. Components are ordered by their smallest member id and each
// component's members are sorted.
func (g *TaskGraph) ConnectedComponents() [][]string {
	parent := make(map[string]string, len(g.ids))
	for _, id := range g.ids {
		parent[id] = id
	}
	var find func(string) string
	find = func(id string) string {
		if parent[id] != id {
			parent[id] = find(parent[id])
		}
		return parent[id]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for _, id := range g.ids {
		for _, next := range g.succ[id] {
			union(id, next)
		}
	}

	groups := make(map[string][]string)
	for _, id := range g.ids {
		root := find(id)
		groups[root] = append(groups[root], id)
	}
	components := make([][]string, 0, len(groups))
	for _, members := range groups {
		sort.Strings(members)
		components = append(components, members)
	}
	sort.Slice(components, func(i, j int) bool {
		return components[i][0] < components[j][0]
	})
	return components
}
