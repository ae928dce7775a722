// Package pkg holds the hobohm libraries.
//
// # Overview
//
// Hobohm reduces a set of items to a subset in which no two items are
// neighbors, given pairwise similarities or distances. The pkg directory is
// organized as:
//
//  1. [neighbor] - Core algorithm: relation classifier, graph store, keep
//     resolution, greedy reduction and reinstatement
//  2. [io] - Pair list and keep list readers, result writers
//  3. [pipeline] - Orchestration (ingest → reduce) with caching and tracing
//  4. [cache], [config], [errors], [observability] - Infrastructure
//  5. [render/nodelink], [server] - Graph drawing and the HTTP API
//
// # Data flow
//
//	"name1 name2 value" lines
//	         ↓
//	    [io] ReadPairs
//	         ↓
//	    [neighbor] Builder → Graph
//	         ↓
//	    [neighbor] Reduce (keep → greedy → reinstate)
//	         ↓
//	    retained names / JSON result
//
// # Quick Start
//
//	g := neighbor.New()
//	g.AddEdge("A", "B")
//	g.AddEdge("B", "C")
//	red, err := neighbor.Reduce(g, nil)
//	// red.Retained == [A C]
//
// [neighbor]: github.com/matzehuels/hobohm/pkg/neighbor
// [io]: github.com/matzehuels/hobohm/pkg/io
// [pipeline]: github.com/matzehuels/hobohm/pkg/pipeline
// [cache]: github.com/matzehuels/hobohm/pkg/cache
// [config]: github.com/matzehuels/hobohm/pkg/config
// [errors]: github.com/matzehuels/hobohm/pkg/errors
// [observability]: github.com/matzehuels/hobohm/pkg/observability
// [render/nodelink]: github.com/matzehuels/hobohm/pkg/render/nodelink
// [server]: github.com/matzehuels/hobohm/pkg/server
package pkg
