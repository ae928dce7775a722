package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hobohm/pkg/neighbor"
)

// Status is what the reduction did to one item.
type Status int

const (
	Retained Status = iota
	Kept
	Reinstated
	KeepNeighbor
	Eliminated
)

func (s Status) String() string {
	switch s {
	case Kept:
		return "kept"
	case Reinstated:
		return "reinstated"
	case KeepNeighbor:
		return "keep-neighbor"
	case Eliminated:
		return "eliminated"
	default:
		return "retained"
	}
}

// fill colors per status.
var statusFill = map[Status]string{
	Retained:     "palegreen",
	Kept:         "gold",
	Reinstated:   "lightblue",
	KeepNeighbor: "lightsalmon",
	Eliminated:   "lightgrey",
}

// Options configures node-link diagram generation.
type Options struct {
	// Status colors each node. Nodes without an entry are drawn plain.
	Status map[string]Status
	// Detailed adds the node's degree and status to its label.
	Detailed bool
}

// StatusOf classifies every item named in red. Items in keep that were
// retained are reported as Kept.
func StatusOf(red *neighbor.Reduction, keep []string) map[string]Status {
	st := make(map[string]Status, len(red.Retained)+len(red.Eliminated))
	for _, x := range red.Retained {
		st[x] = Retained
	}
	for _, x := range red.Eliminated {
		st[x] = Eliminated
	}
	for _, x := range red.RemovedAsKeepNeighbor {
		st[x] = KeepNeighbor
	}
	for _, x := range red.Reinstated {
		st[x] = Reinstated
	}
	for _, k := range keep {
		if _, ok := st[k]; ok {
			st[k] = Kept
		}
	}
	return st
}

// ToDOT converts a neighbor graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [Render].
func ToDOT(nodes []string, edges []neighbor.Edge, opts Options) string {
	degree := make(map[string]int, len(nodes))
	for _, e := range edges {
		degree[e.A]++
		degree[e.B]++
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n, strings.Join(fmtAttrs(n, degree[n], opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.A, e.B)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n string, degree int, opts Options) []string {
	st, known := opts.Status[n]
	label := n
	if opts.Detailed {
		label = fmt.Sprintf("%s\ndegree: %d", n, degree)
		if known {
			label += "\n" + st.String()
		}
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if known {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%s", statusFill[st]))
		if st == Eliminated || st == KeepNeighbor {
			attrs = append(attrs, `style="filled,dashed"`)
		}
	}
	return attrs
}

// Output formats accepted by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Render lays out a DOT graph with Graphviz and encodes it as format.
// FormatDOT returns the source unchanged.
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("unsupported format %q (must be one of: dot, svg, png)", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the SVG scales from the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
