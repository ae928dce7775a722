// Package nodelink draws the neighbor graph as an undirected node-link
// diagram.
//
// # Overview
//
// Nodes are items and edges join neighbors as they stood right after
// ingestion. Each node is colored by what the reduction did to it:
//
//   - Kept: named in the keep list
//   - Retained: survived the greedy phase
//   - Reinstated: removed for neighboring a keep item, then restored
//   - KeepNeighbor: removed for neighboring a keep item
//   - Eliminated: removed by the greedy phase
//
// # Usage
//
//	status := nodelink.StatusOf(reduction, keep)
//	dot := nodelink.ToDOT(nodes, edges, nodelink.Options{Status: status})
//	svg, err := nodelink.Render(ctx, dot, nodelink.FormatSVG)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering. DOT output needs no Graphviz at all.
package nodelink
