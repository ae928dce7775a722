package neighbor

import (
	"cmp"
	"maps"
	"slices"
)

// Edge is an unordered neighbor pair, stored with A < B.
type Edge struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Graph is the undirected neighbor graph.
//
// Every item seen in the input is a node. Only nodes with at least one
// neighbor are keys of the adjacency map, so a node's degree is the size of
// its adjacency set and isolated nodes live solely in the node set.
// All mutation goes through [Graph.AddEdge], [Graph.RemoveNode] and
// [Graph.RemoveEdge], which keep the adjacency symmetric.
//
// The zero value is not usable - use [New].
type Graph struct {
	nodes map[string]struct{}
	adj   map[string]map[string]struct{}
	edges int

	// index is built on the first MaxDegreeNode call and kept current by
	// the removal primitives. AddEdge discards it.
	index *degreeIndex
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		adj:   make(map[string]map[string]struct{}),
	}
}

// AddNode registers x as an item. Re-adding an existing node is a no-op.
func (g *Graph) AddNode(x string) {
	g.nodes[x] = struct{}{}
}

// AddEdge makes a and b neighbors, registering both as nodes.
// Self-pairs are ignored and re-adding an existing edge is a no-op.
func (g *Graph) AddEdge(a, b string) {
	g.AddNode(a)
	g.AddNode(b)
	if a == b {
		return
	}
	if _, ok := g.adj[a][b]; ok {
		return
	}
	g.link(a, b)
	g.link(b, a)
	g.edges++
	g.index = nil
}

func (g *Graph) link(a, b string) {
	set, ok := g.adj[a]
	if !ok {
		set = make(map[string]struct{})
		g.adj[a] = set
	}
	set[b] = struct{}{}
}

// RemoveNode deletes x and all its edges. Neighbors whose degree drops to
// zero stay in the graph as isolated nodes. Removing an unknown node is a
// no-op. Runs in O(degree(x)).
func (g *Graph) RemoveNode(x string) {
	if nbs, ok := g.adj[x]; ok {
		for y := range nbs {
			g.unlink(y, x)
			g.edges--
		}
		delete(g.adj, x)
	}
	delete(g.nodes, x)
}

// RemoveEdge deletes the edge between a and b. Either endpoint left without
// neighbors stays in the graph as an isolated node. Returns a
// *[NotNeighborsError] if a and b are not adjacent.
func (g *Graph) RemoveEdge(a, b string) error {
	if !g.Adjacent(a, b) {
		return &NotNeighborsError{A: a, B: b}
	}
	g.unlink(a, b)
	g.unlink(b, a)
	g.edges--
	return nil
}

// unlink removes b from a's adjacency and reindexes a.
func (g *Graph) unlink(a, b string) {
	set := g.adj[a]
	delete(set, b)
	if len(set) == 0 {
		delete(g.adj, a)
		return
	}
	if g.index != nil {
		g.index.push(a, len(set))
	}
}

// MaxDegreeNode returns a node of maximum degree and that degree. Among
// nodes tied at the maximum it returns the lexicographically smallest id.
// ok is false when the graph has no edges.
func (g *Graph) MaxDegreeNode() (id string, degree int, ok bool) {
	if g.edges == 0 {
		return "", 0, false
	}
	if g.index == nil {
		g.index = newDegreeIndex(g.adj)
	}
	return g.index.max(g)
}

// HasNode reports whether x is a live node.
func (g *Graph) HasNode(x string) bool {
	_, ok := g.nodes[x]
	return ok
}

// Adjacent reports whether a and b are currently neighbors.
func (g *Graph) Adjacent(a, b string) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Degree returns the number of live neighbors of x, 0 for isolated or
// unknown nodes.
func (g *Graph) Degree(x string) int { return len(g.adj[x]) }

// Neighbors returns a sorted snapshot of x's neighbors. The slice is
// independent of the graph, so callers may remove nodes while iterating it.
func (g *Graph) Neighbors(x string) []string {
	return slices.Sorted(maps.Keys(g.adj[x]))
}

// Nodes returns all live nodes in sorted order.
func (g *Graph) Nodes() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Edges returns all live edges sorted by (A, B).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for a, nbs := range g.adj {
		for b := range nbs {
			if a < b {
				out = append(out, Edge{A: a, B: b})
			}
		}
	}
	slices.SortFunc(out, func(x, y Edge) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})
	return out
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Degrees returns the degree of every node that has at least one neighbor.
func (g *Graph) Degrees() map[string]int {
	out := make(map[string]int, len(g.adj))
	for x, nbs := range g.adj {
		out[x] = len(nbs)
	}
	return out
}
