package correlation

import (
	"container/list"
	"sort"

	"github.com/riskforge/riskengine/pkg/risk"
)

// NetworkMetrics summarizes the correlation graph induced by thresholding
// the matrix: risks are nodes, pairs with correlation at or above the edge
// threshold are edges.
type NetworkMetrics struct {
	Density               float64 `json:"density"`
	ClusteringCoefficient float64 `json:"clusteringCoefficient"`

	// AvgPathLength is nil when the graph is disconnected.
	AvgPathLength *float64 `json:"avgPathLength"`

	EdgeCount     int        `json:"edgeCount"`
	CriticalPaths [][]string `json:"criticalPaths"`
}

// Analyze builds the correlation matrix and its network metrics in one call.
// Requires at least two risks.
func Analyze(risks []risk.Input, cfg Config) (*Matrix, *NetworkMetrics, error) {
	m, err := BuildMatrix(risks)
	if err != nil {
		return nil, nil, err
	}
	return m, ComputeNetworkMetrics(risks, m, cfg), nil
}

// Adjacency returns the thresholded neighbor lists of the correlation graph,
// indexed by matrix position.
func (m *Matrix) Adjacency(threshold float64) [][]int {
	n := m.Size()
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.Values[i][j] >= threshold {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}
	return adj
}

// ComputeNetworkMetrics derives density, clustering coefficient, average
// path length, and critical paths from a correlation matrix.
func ComputeNetworkMetrics(risks []risk.Input, m *Matrix, cfg Config) *NetworkMetrics {
	n := m.Size()
	adj := m.Adjacency(cfg.EdgeThreshold)

	edges := 0
	for _, neighbors := range adj {
		edges += len(neighbors)
	}
	edges /= 2

	possible := n * (n - 1) / 2
	density := 0.0
	if possible > 0 {
		density = float64(edges) / float64(possible)
	}

	return &NetworkMetrics{
		Density:               density,
		ClusteringCoefficient: clusteringCoefficient(adj),
		AvgPathLength:         averagePathLength(adj),
		EdgeCount:             edges,
		CriticalPaths:         criticalPaths(risks, m, adj, cfg),
	}
}

// clusteringCoefficient averages, over all nodes, the fraction of a node's
// neighbor pairs that are themselves connected.
func clusteringCoefficient(adj [][]int) float64 {
	n := len(adj)
	if n == 0 {
		return 0
	}

	neighborSets := make([]map[int]bool, n)
	for i, neighbors := range adj {
		neighborSets[i] = make(map[int]bool, len(neighbors))
		for _, j := range neighbors {
			neighborSets[i][j] = true
		}
	}

	total := 0.0
	for _, neighbors := range adj {
		k := len(neighbors)
		if k < 2 {
			continue
		}
		triangles := 0
		for a := 0; a < len(neighbors); a++ {
			for b := a + 1; b < len(neighbors); b++ {
				if neighborSets[neighbors[a]][neighbors[b]] {
					triangles++
				}
			}
		}
		total += float64(triangles) / float64(k*(k-1)/2)
	}
	return total / float64(n)
}

// bfsDistances returns shortest-path hop counts from start; unreachable
// nodes keep distance -1.
func bfsDistances(adj [][]int, start int) []int {
	dist := make([]int, len(adj))
	for i := range dist {
		dist[i] = -1
	}
	dist[start] = 0

	queue := list.New()
	queue.PushBack(start)
	for queue.Len() > 0 {
		cur := queue.Remove(queue.Front()).(int)
		for _, next := range adj[cur] {
			if dist[next] == -1 {
				dist[next] = dist[cur] + 1
				queue.PushBack(next)
			}
		}
	}
	return dist
}

// averagePathLength is the mean BFS distance over all connected pairs, or
// nil when the graph is disconnected (including isolated nodes).
func averagePathLength(adj [][]int) *float64 {
	n := len(adj)
	if n < 2 {
		return nil
	}

	sum := 0
	pairs := 0
	for i := 0; i < n; i++ {
		dist := bfsDistances(adj, i)
		for j := i + 1; j < n; j++ {
			if dist[j] == -1 {
				return nil
			}
			sum += dist[j]
			pairs++
		}
	}

	avg := float64(sum) / float64(pairs)
	return &avg
}

// shortestPath reconstructs one shortest path between two nodes via BFS
// parents, or nil if unreachable.
func shortestPath(adj [][]int, from, to int) []int {
	if from == to {
		return []int{from}
	}

	parent := make([]int, len(adj))
	for i := range parent {
		parent[i] = -1
	}
	parent[from] = from

	queue := list.New()
	queue.PushBack(from)
	for queue.Len() > 0 {
		cur := queue.Remove(queue.Front()).(int)
		for _, next := range adj[cur] {
			if parent[next] != -1 {
				continue
			}
			parent[next] = cur
			if next == to {
				path := []int{to}
				for node := to; node != from; {
					node = parent[node]
					path = append(path, node)
				}
				// Reverse into from->to order.
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path
			}
			queue.PushBack(next)
		}
	}
	return nil
}

// criticalPaths reports the top-K longest shortest paths between
// high-severity risk pairs, as ordered identifier sequences. Ties break on
// identifier order so output is deterministic.
func criticalPaths(risks []risk.Input, m *Matrix, adj [][]int, cfg Config) [][]string {
	if cfg.TopCriticalPaths <= 0 {
		return nil
	}

	var severe []int
	for i, r := range risks {
		if r.Severity() >= cfg.HighSeverity {
			severe = append(severe, i)
		}
	}

	type candidate struct {
		path []int
		hops int
	}
	var candidates []candidate
	for a := 0; a < len(severe); a++ {
		for b := a + 1; b < len(severe); b++ {
			path := shortestPath(adj, severe[a], severe[b])
			if len(path) < 2 {
				continue
			}
			candidates = append(candidates, candidate{path: path, hops: len(path) - 1})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].hops != candidates[j].hops {
			return candidates[i].hops > candidates[j].hops
		}
		return lessPath(m.IDs, candidates[i].path, candidates[j].path)
	})

	k := cfg.TopCriticalPaths
	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([][]string, 0, k)
	for _, c := range candidates[:k] {
		ids := make([]string, len(c.path))
		for i, idx := range c.path {
			ids[i] = m.IDs[idx]
		}
		out = append(out, ids)
	}
	return out
}

func lessPath(ids []string, a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if ids[a[i]] != ids[b[i]] {
			return ids[a[i]] < ids[b[i]]
		}
	}
	return len(a) < len(b)
}
