// Package neighbor selects a representative, non-redundant subset of items
// from a set of pairwise similarity or distance measurements.
//
// # Overview
//
// Two items are neighbors when their pairwise value crosses a cutoff in the
// "too similar" direction (see [Relation]). The neighbor relation is stored
// in an undirected [Graph]. Reduction then removes items until no two
// survivors are neighbors, approximating a maximum independent set with the
// classic greedy maximum-degree heuristic (Hobohm & Sander's algorithm 2).
//
// # Basic Usage
//
// Feed triples into a [Builder], then reduce the resulting graph:
//
//	b := neighbor.NewBuilder(neighbor.Similarity, 0.5)
//	b.Add(neighbor.Triple{A: "seq1", B: "seq2", Value: 0.9})
//	b.Add(neighbor.Triple{A: "seq1", B: "seq3", Value: 0.1})
//	summary := b.Summary()
//	res, err := neighbor.Reduce(b.Graph(), []string{"seq2"})
//	// res.Retained == [seq2 seq3]
//
// # Phases
//
// [Reduce] runs three phases over one graph, mutating it in place:
//
//  1. [ResolveKeep]: edges between two keep items are dropped and reported
//     as [Conflict] records, then every remaining neighbor of a keep item is
//     removed.
//  2. [ReduceGreedy]: the node with the highest degree is removed until the
//     graph has no edges. Ties go to the lexicographically smallest id.
//  3. [Reinstate]: items removed in phase 1 are restored when none of their
//     original neighbors survived.
//
// Items removed in phase 2 are never reconsidered: each had at least one live
// neighbor when it was removed.
//
// # Complexity
//
// [Graph.RemoveNode] runs in time proportional to the removed node's degree.
// [Graph.MaxDegreeNode] is served from a degree-bucketed index whose max
// pointer never increases, so a whole greedy reduction costs O((V+E) log V);
// the log factor pays for the deterministic tie-break.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. The reduction is a single
// synchronous pipeline over memory owned by the caller.
package neighbor
