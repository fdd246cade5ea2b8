package referencemodel

import "sort"

// maxCriticalPathDepth bounds the depth-first search used when the model
// is cyclic, so rework loops (recurring payroll, monthly depreciation)
// cannot make critical-path computation run unbounded.
const maxCriticalPathDepth = 50

// CriticalPath returns the highest-weight path from any start activity to
// any end activity, and its total weight. Edge weight is its SLA target
// when one is declared, else 1. When the model is acyclic this runs a
// topological-order longest-path DP (Kahn's algorithm); when cyclic it
// falls back to a depth-bounded DFS, since no topological order exists.
func (m *ReferenceModel) CriticalPath() ([]string, float64) {
	if m.HasCycle() {
		return m.criticalPathBoundedDFS()
	}
	return m.criticalPathTopological()
}

func (m *ReferenceModel) weight(from, to string) float64 {
	if sla, ok := m.SLA(from, to); ok && sla.Target > 0 {
		return sla.Target
	}
	return 1
}

func (m *ReferenceModel) criticalPathTopological() ([]string, float64) {
	order := m.kahnOrder()

	bestWeight := make(map[string]float64, len(order))
	bestPrev := make(map[string]string, len(order))
	for _, a := range order {
		bestWeight[a] = 0
	}

	for _, a := range order {
		for _, next := range m.successors[a] {
			candidate := bestWeight[a] + m.weight(a, next)
			if candidate > bestWeight[next] {
				bestWeight[next] = candidate
				bestPrev[next] = a
			}
		}
	}

	bestEnd := ""
	bestTotal := -1.0
	ends := append([]string(nil), m.EndActivities...)
	sort.Strings(ends)
	for _, e := range ends {
		if bestWeight[e] > bestTotal {
			bestTotal = bestWeight[e]
			bestEnd = e
		}
	}
	if bestEnd == "" {
		return nil, 0
	}

	path := []string{bestEnd}
	cur := bestEnd
	for {
		prev, ok := bestPrev[cur]
		if !ok {
			break
		}
		path = append([]string{prev}, path...)
		cur = prev
	}
	return path, bestTotal
}

// kahnOrder returns a topological order of m.Activities via indegree
// reduction. Activities are visited in sorted order within each wave so
// the result is deterministic.
func (m *ReferenceModel) kahnOrder() []string {
	indegree := make(map[string]int, len(m.Activities))
	for _, a := range m.Activities {
		indegree[a] = 0
	}
	for _, e := range m.Edges {
		indegree[e.To]++
	}

	var queue []string
	for _, a := range m.Activities {
		if indegree[a] == 0 {
			queue = append(queue, a)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		order = append(order, next)

		var newlyReady []string
		for _, succ := range m.successors[next] {
			indegree[succ]--
			if indegree[succ] == 0 {
				newlyReady = append(newlyReady, succ)
			}
		}
		sort.Strings(newlyReady)
		queue = append(queue, newlyReady...)
		sort.Strings(queue)
	}
	return order
}

func (m *ReferenceModel) criticalPathBoundedDFS() ([]string, float64) {
	var bestPath []string
	bestWeight := -1.0

	starts := append([]string(nil), m.StartActivities...)
	sort.Strings(starts)

	var visit func(path []string, weight float64, visited map[string]bool, depth int)
	visit = func(path []string, weight float64, visited map[string]bool, depth int) {
		current := path[len(path)-1]
		if m.IsEnd(current) && weight > bestWeight {
			bestWeight = weight
			bestPath = append([]string(nil), path...)
		}
		if depth >= maxCriticalPathDepth {
			return
		}
		for _, next := range m.successors[current] {
			if visited[next] {
				continue
			}
			visited[next] = true
			extended := make([]string, len(path)+1)
			copy(extended, path)
			extended[len(path)] = next
			visit(extended, weight+m.weight(current, next), visited, depth+1)
			visited[next] = false
		}
	}

	for _, start := range starts {
		visited := map[string]bool{start: true}
		visit([]string{start}, 0, visited, 0)
	}

	return bestPath, bestWeight
}
