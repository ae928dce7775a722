package neighbor

import (
	"fmt"
	"slices"
)

// Conflict records two keep items that are neighbors of each other.
// The edge between them is dropped and both are kept.
type Conflict struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s and %s are neighbors", c.A, c.B)
}

// KeepResult is the outcome of [ResolveKeep].
type KeepResult struct {
	// Conflicts lists keep pairs that were neighbors, A < B, sorted.
	Conflicts []Conflict
	// Removed lists the items removed because they neighbored a keep item,
	// in removal order.
	Removed []string
	// Missing lists keep names that are not items of the graph.
	Missing []string

	// original holds each removed item's neighbor set from before any
	// mutation, for the reinstatement pass.
	original map[string][]string
}

// OriginalNeighbors returns the pre-reduction neighbors of an item removed
// by [ResolveKeep], or nil for any other item.
func (kr *KeepResult) OriginalNeighbors(x string) []string {
	return kr.original[x]
}

// ResolveKeep forces the keep items into the graph's surviving set.
//
// First, every edge joining two keep items is removed and reported as a
// [Conflict]. Only then are the remaining neighbors of each keep item removed
// from the graph. Keep items are never removed. Processing follows sorted
// order so the outcome does not depend on the order of keep.
func ResolveKeep(g *Graph, keep []string) (*KeepResult, error) {
	kr := &KeepResult{original: make(map[string][]string)}

	set := make(map[string]struct{}, len(keep))
	var names []string
	for _, k := range keep {
		if _, dup := set[k]; dup {
			continue
		}
		set[k] = struct{}{}
		if !g.HasNode(k) {
			kr.Missing = append(kr.Missing, k)
			continue
		}
		names = append(names, k)
	}
	slices.Sort(names)
	slices.Sort(kr.Missing)

	for _, k := range names {
		for _, n := range g.Neighbors(k) {
			if _, ok := set[n]; !ok || n < k {
				continue
			}
			if err := g.RemoveEdge(k, n); err != nil {
				return nil, fmt.Errorf("drop keep conflict: %w", err)
			}
			kr.Conflicts = append(kr.Conflicts, Conflict{A: k, B: n})
		}
	}

	// Edges lost to earlier removals in this loop are recovered from
	// pending, so each snapshot is the item's full original neighbor set.
	pending := make(map[string][]string)
	for _, k := range names {
		for _, m := range g.Neighbors(k) {
			live := g.Neighbors(m)
			orig := slices.Concat(live, pending[m])
			slices.Sort(orig)
			kr.original[m] = orig
			delete(pending, m)
			for _, y := range live {
				pending[y] = append(pending[y], m)
			}
			g.RemoveNode(m)
			kr.Removed = append(kr.Removed, m)
		}
	}
	return kr, nil
}
