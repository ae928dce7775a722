package neighbor

import (
	"fmt"
	"slices"
)

// ReduceGreedy removes the maximum-degree node, smallest id first among
// ties, until the graph has no edges. It returns the removed nodes in
// removal order. Every iteration deletes at least one edge, so there are at
// most NodeCount iterations.
func ReduceGreedy(g *Graph) []string {
	var removed []string
	for {
		x, _, ok := g.MaxDegreeNode()
		if !ok {
			return removed
		}
		g.RemoveNode(x)
		removed = append(removed, x)
	}
}

// Reinstate restores items removed by [ResolveKeep] whose original neighbors
// all failed to survive. Candidates are visited in sorted order and each
// reinstated item joins the surviving set before the next is checked. It
// returns the reinstated items.
func Reinstate(g *Graph, kr *KeepResult) []string {
	var back []string
	for _, r := range slices.Sorted(slices.Values(kr.Removed)) {
		if slices.ContainsFunc(kr.original[r], g.HasNode) {
			continue
		}
		g.AddNode(r)
		back = append(back, r)
	}
	return back
}

// Reduction is the outcome of [Reduce].
type Reduction struct {
	// Retained is the final neighbor-free set, sorted.
	Retained []string `json:"retained"`
	// Conflicts lists keep items that were neighbors of each other.
	Conflicts []Conflict `json:"conflicts"`
	// RemovedAsKeepNeighbor lists items removed for neighboring a keep item.
	RemovedAsKeepNeighbor []string `json:"removed_as_keep_neighbor,omitempty"`
	// Eliminated lists items removed by the greedy phase, in removal order.
	Eliminated []string `json:"eliminated,omitempty"`
	// Reinstated lists keep-removed items restored by the final pass.
	Reinstated []string `json:"reinstated,omitempty"`
	// MissingKeep lists keep names that never appeared in the input.
	MissingKeep []string `json:"missing_keep,omitempty"`
}

// Reduce runs keep resolution, greedy reduction and reinstatement on g,
// mutating it in place. Afterwards g holds exactly the retained items and
// no edges.
func Reduce(g *Graph, keep []string) (*Reduction, error) {
	kr, err := ResolveKeep(g, keep)
	if err != nil {
		return nil, err
	}
	eliminated := ReduceGreedy(g)
	if g.EdgeCount() != 0 {
		return nil, fmt.Errorf("reduction left %d edges", g.EdgeCount())
	}
	reinstated := Reinstate(g, kr)

	res := &Reduction{
		Retained:              g.Nodes(),
		Conflicts:             kr.Conflicts,
		RemovedAsKeepNeighbor: kr.Removed,
		Eliminated:            eliminated,
		Reinstated:            reinstated,
		MissingKeep:           kr.Missing,
	}
	if res.Retained == nil {
		res.Retained = []string{}
	}
	if res.Conflicts == nil {
		res.Conflicts = []Conflict{}
	}
	return res, nil
}
