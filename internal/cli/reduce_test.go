package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPairs = `A B 0.9
B C 0.8
C D 0.1
`

func TestReduceWritesNames(t *testing.T) {
	c, out, _ := newTestCLI(t)
	pairs := writeTemp(t, "pairs.txt", testPairs)
	result := filepath.Join(t.TempDir(), "reduced.txt")

	if err := runCLI(t, c, "reduce", pairs, result, "--val", "sim", "-c", "0.5"); err != nil {
		t.Fatalf("reduce failed: %v", err)
	}

	data, err := os.ReadFile(result)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "A\nC\nD\n"; got != want {
		t.Errorf("output file = %q, want %q", got, want)
	}

	report := out.String()
	for _, want := range []string{"Number in original set", "Number in reduced set", "Node degree original set", "Node similarities original set", result} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestReduceDistanceKeepJSON(t *testing.T) {
	c, out, errOut := newTestCLI(t)
	pairs := writeTemp(t, "dist.txt", "A B 0.1\nB C 0.2\n")
	keep := writeTemp(t, "keep.txt", "B\n")

	if err := runCLI(t, c, "reduce", pairs, "-", "--val", "dist", "-c", "0.5", "-k", keep, "--format", "json"); err != nil {
		t.Fatalf("reduce failed: %v", err)
	}

	var res struct {
		Retained              []string `json:"retained"`
		RemovedAsKeepNeighbor []string `json:"removed_as_keep_neighbor"`
		Summary               struct {
			Relation string `json:"relation"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out.String())
	}
	if strings.Join(res.Retained, ",") != "B" {
		t.Errorf("Retained = %v, want [B]", res.Retained)
	}
	if strings.Join(res.RemovedAsKeepNeighbor, ",") != "A,C" {
		t.Errorf("RemovedAsKeepNeighbor = %v, want [A C]", res.RemovedAsKeepNeighbor)
	}
	if res.Summary.Relation != "dist" {
		t.Errorf("relation = %q", res.Summary.Relation)
	}
	if !strings.Contains(errOut.String(), "Node distances original set") {
		t.Errorf("report should go to stderr when writing to stdout:\n%s", errOut.String())
	}
}

func TestReduceCutoffRequired(t *testing.T) {
	c, _, _ := newTestCLI(t)
	pairs := writeTemp(t, "pairs.txt", testPairs)
	err := runCLI(t, c, "reduce", pairs, "-", "--val", "sim")
	if err == nil || !strings.Contains(err.Error(), "cutoff is required") {
		t.Errorf("error = %v, want cutoff required", err)
	}
}

func TestReduceRelationRequired(t *testing.T) {
	c, out, _ := newTestCLI(t)
	pairs := writeTemp(t, "pairs.txt", testPairs)

	for _, args := range [][]string{
		{"reduce", pairs, "-", "-c", "0.5"},
		{"reduce", pairs, "-", "-c", "0.5", "--val", ""},
		{"stats", pairs, "-c", "0.5"},
		{"graph", pairs, "-c", "0.5"},
	} {
		err := runCLI(t, c, args...)
		if err == nil || !strings.Contains(err.Error(), "relation is required") {
			t.Errorf("%v: error = %v, want relation required", args, err)
		}
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be written without a relation, got %q", out.String())
	}
}

func TestReduceRelationFromConfig(t *testing.T) {
	c, out, _ := newTestCLI(t)
	cfg := writeTemp(t, "c.toml", "relation = \"dist\"\n")
	pairs := writeTemp(t, "pairs.txt", testPairs)

	if err := runCLI(t, c, "--config", cfg, "reduce", pairs, "-", "-c", "0.5", "--no-report"); err != nil {
		t.Fatal(err)
	}
	// only C-D is below 0.5
	if got, want := out.String(), "A\nB\nD\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestReduceCutoffFromConfig(t *testing.T) {
	c, out, _ := newTestCLI(t)
	cfg := writeTemp(t, "c.yaml", "relation: sim\ncutoff: 0.85\n")
	pairs := writeTemp(t, "pairs.txt", testPairs)

	if err := runCLI(t, c, "--config", cfg, "reduce", pairs, "-", "--no-report"); err != nil {
		t.Fatal(err)
	}
	// only A-B crosses 0.85
	if got, want := out.String(), "B\nC\nD\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestReduceFlagOverridesConfig(t *testing.T) {
	c, out, _ := newTestCLI(t)
	cfg := writeTemp(t, "c.toml", "cutoff = 0.85\nrelation = \"dist\"\n")
	pairs := writeTemp(t, "pairs.txt", testPairs)

	if err := runCLI(t, c, "--config", cfg, "reduce", pairs, "-", "-c", "0.5", "--val", "sim", "--no-report"); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "A\nC\nD\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestReduceMalformed(t *testing.T) {
	c, out, _ := newTestCLI(t)
	pairs := writeTemp(t, "bad.txt", "A B 0.9\nnot a number\n")

	err := runCLI(t, c, "reduce", pairs, "-", "--val", "sim", "-c", "0.5", "--no-cache")
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error = %v, want line 2 format error", err)
	}

	if err := runCLI(t, c, "reduce", pairs, "-", "--val", "sim", "-c", "0.5", "--skip-malformed", "--no-report", "--no-cache"); err != nil {
		t.Fatalf("--skip-malformed run failed: %v", err)
	}
	if got := out.String(); got != "B\n" {
		t.Errorf("stdout = %q, want %q", got, "B\n")
	}
}

func TestReduceBadFormat(t *testing.T) {
	c, _, _ := newTestCLI(t)
	pairs := writeTemp(t, "pairs.txt", testPairs)
	if err := runCLI(t, c, "reduce", pairs, "-", "--val", "sim", "-c", "0.5", "--format", "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestStats(t *testing.T) {
	c, out, _ := newTestCLI(t)
	pairs := writeTemp(t, "pairs.txt", testPairs)

	if err := runCLI(t, c, "stats", pairs, "--val", "sim", "-c", "0.5"); err != nil {
		t.Fatal(err)
	}
	report := out.String()
	if !strings.Contains(report, "Number in original set") || strings.Contains(report, "Number in reduced set") {
		t.Errorf("unexpected stats report:\n%s", report)
	}

	out.Reset()
	if err := runCLI(t, c, "stats", pairs, "--val", "sim", "-c", "0.5", "--json"); err != nil {
		t.Fatal(err)
	}
	var res struct {
		Summary struct {
			Items     int `json:"items"`
			MaxDegree int `json:"max_degree"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Summary.Items != 4 || res.Summary.MaxDegree != 2 {
		t.Errorf("summary = %+v", res.Summary)
	}
}

func TestGraphDOT(t *testing.T) {
	c, out, _ := newTestCLI(t)
	pairs := writeTemp(t, "pairs.txt", testPairs)
	keep := writeTemp(t, "keep.txt", "A\n")

	if err := runCLI(t, c, "graph", pairs, "--val", "sim", "-c", "0.5", "-k", keep); err != nil {
		t.Fatal(err)
	}
	dot := out.String()
	for _, want := range []string{"graph G {", `"A" -- "B";`, `"A" [label="A", fillcolor=gold];`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"g.svg": "svg",
		"g.PNG": "png",
		"g.dot": "dot",
		"-":     "dot",
	}
	for path, want := range tests {
		if got := formatFromPath(path); got != want {
			t.Errorf("formatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-12345:   "-12,345",
	}
	for n, want := range tests {
		if got := formatCount(n); got != want {
			t.Errorf("formatCount(%d) = %q, want %q", n, got, want)
		}
	}
}
