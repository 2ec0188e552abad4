// Package clustering partitions correlated risks into clusters and scores
// each cluster's aggregate exposure.
//
// Clusters are the connected components of the thresholded correlation
// graph. Singleton components are not reported: a risk with no correlated
// peer carries no cluster-level information beyond its own simulation, so
// only groups of two or more form a cluster. The aggregate score uses
// independent-OR combination, 1 - prod(1 - s_i), rather than a sum: summing
// double-counts overlapping exposure and can exceed 1.
package clustering

import (
	"container/list"
	"fmt"
	"sort"

	"github.com/riskforge/riskengine/pkg/correlation"
	"github.com/riskforge/riskengine/pkg/risk"
)

// Cluster is a group of two or more mutually correlated risks.
type Cluster struct {
	ID             string   `json:"id"`
	RiskIDs        []string `json:"riskIds"`
	CommonFactors  []string `json:"commonFactors"`
	AggregateScore float64  `json:"aggregateScore"`
}

// Detect finds risk clusters using the same edge threshold as the network
// analysis. Cluster IDs and member order are deterministic: components are
// numbered by the input position of their first member.
func Detect(risks []risk.Input, m *correlation.Matrix, threshold float64) []Cluster {
	adj := m.Adjacency(threshold)
	n := m.Size()

	visited := make([]bool, n)
	var clusters []Cluster

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		// BFS this component.
		var members []int
		visited[start] = true
		queue := list.New()
		queue.PushBack(start)
		for queue.Len() > 0 {
			cur := queue.Remove(queue.Front()).(int)
			members = append(members, cur)
			for _, next := range adj[cur] {
				if !visited[next] {
					visited[next] = true
					queue.PushBack(next)
				}
			}
		}

		if len(members) < 2 {
			continue
		}
		sort.Ints(members)

		clusters = append(clusters, Cluster{
			ID:             fmt.Sprintf("cluster-%d", len(clusters)+1),
			RiskIDs:        memberIDs(m.IDs, members),
			CommonFactors:  commonFactors(risks, members),
			AggregateScore: aggregateScore(risks, members),
		})
	}
	return clusters
}

func memberIDs(ids []string, members []int) []string {
	out := make([]string, len(members))
	for i, idx := range members {
		out[i] = ids[idx]
	}
	return out
}

// aggregateScore combines member severities with independent-OR logic.
func aggregateScore(risks []risk.Input, members []int) float64 {
	survival := 1.0
	for _, idx := range members {
		survival *= 1 - risks[idx].Severity()
	}
	score := 1 - survival
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// commonFactors intersects the factor sets of all cluster members,
// preserving the first member's factor order.
func commonFactors(risks []risk.Input, members []int) []string {
	if len(members) == 0 {
		return nil
	}

	var common []string
	for _, f := range risks[members[0]].Factors {
		inAll := true
		for _, idx := range members[1:] {
			if !hasFactor(risks[idx].Factors, f) {
				inAll = false
				break
			}
		}
		if inAll && !hasFactor(common, f) {
			common = append(common, f)
		}
	}
	return common
}

func hasFactor(factors []string, f string) bool {
	for _, v := range factors {
		if v == f {
			return true
		}
	}
	return false
}
