package neighbor

import "container/heap"

// degreeIndex buckets nodes by degree for max-degree lookups.
//
// Each bucket is a min-heap of ids, so the top of the highest non-empty
// bucket is the lexicographically smallest max-degree node. Degrees only
// decrease once the index exists: a node is pushed into its new bucket
// whenever its degree drops, and the entry left behind in the old bucket is
// discarded lazily when it surfaces. An entry is live iff the node's current
// degree equals the bucket's degree.
type degreeIndex struct {
	buckets []idHeap
	top     int
}

func newDegreeIndex(adj map[string]map[string]struct{}) *degreeIndex {
	top := 0
	for _, nbs := range adj {
		top = max(top, len(nbs))
	}
	idx := &degreeIndex{buckets: make([]idHeap, top+1), top: top}
	for x, nbs := range adj {
		d := len(nbs)
		idx.buckets[d] = append(idx.buckets[d], x)
	}
	for d := range idx.buckets {
		heap.Init(&idx.buckets[d])
	}
	return idx
}

// push records that x now has degree d. d never exceeds the current top.
func (idx *degreeIndex) push(x string, d int) {
	heap.Push(&idx.buckets[d], x)
}

func (idx *degreeIndex) max(g *Graph) (string, int, bool) {
	for idx.top > 0 {
		b := &idx.buckets[idx.top]
		for b.Len() > 0 {
			x := (*b)[0]
			if g.Degree(x) == idx.top {
				return x, idx.top, true
			}
			heap.Pop(b)
		}
		idx.top--
	}
	return "", 0, false
}

type idHeap []string

func (h idHeap) Len() int           { return len(h) }
func (h idHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x any)        { *h = append(*h, x.(string)) }
func (h *idHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
