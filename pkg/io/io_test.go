package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/hobohm/pkg/neighbor"
)

func collect(t *testing.T, input string, opts ReadOptions) ([]neighbor.Triple, ReadStats, error) {
	t.Helper()
	var got []neighbor.Triple
	st, err := ReadPairs(strings.NewReader(input), opts, func(tr neighbor.Triple) error {
		got = append(got, tr)
		return nil
	})
	return got, st, err
}

func TestReadPairs(t *testing.T) {
	input := "# header\nA B 0.9\n\n  A\tC  0.1\nC C 1\n"
	got, st, err := collect(t, input, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadPairs() error: %v", err)
	}
	want := []neighbor.Triple{
		{A: "A", B: "B", Value: 0.9},
		{A: "A", B: "C", Value: 0.1},
		{A: "C", B: "C", Value: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d triples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triple %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if st.Lines != 5 || st.Triples != 3 || st.Malformed != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestReadPairsMalformedAborts(t *testing.T) {
	_, _, err := collect(t, "A B 0.9\nA B\nC D 0.1\n", ReadOptions{})
	var fe *neighbor.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *FormatError", err)
	}
	if fe.Line != 2 {
		t.Errorf("Line = %d, want 2", fe.Line)
	}
}

func TestReadPairsNonFinite(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"nan", "a b 0.9\na c NaN\n", 2},
		{"inf", "a b inf\n", 1},
		{"infinity", "a b 0.9\nb c 0.1\nb d -Infinity\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := collect(t, tt.input, ReadOptions{})
			var fe *neighbor.FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("error = %v, want *FormatError", err)
			}
			if fe.Line != tt.line {
				t.Errorf("Line = %d, want %d", fe.Line, tt.line)
			}
		})
	}

	got, st, err := collect(t, "a b 0.9\na c NaN\nb c inf\n", ReadOptions{SkipMalformed: true})
	if err != nil {
		t.Fatalf("ReadPairs() error: %v", err)
	}
	if len(got) != 1 || st.Malformed != 2 {
		t.Errorf("got %d triples and %d malformed, want 1 and 2", len(got), st.Malformed)
	}
}

func TestReadPairsMalformedSkipped(t *testing.T) {
	var skipped []int
	opts := ReadOptions{
		SkipMalformed: true,
		OnMalformed:   func(fe *neighbor.FormatError) { skipped = append(skipped, fe.Line) },
	}
	got, st, err := collect(t, "A B x\nA B 0.9\nA B C 0.1\n", opts)
	if err != nil {
		t.Fatalf("ReadPairs() error: %v", err)
	}
	if len(got) != 1 || st.Malformed != 2 {
		t.Errorf("got %d triples and %d malformed, want 1 and 2", len(got), st.Malformed)
	}
	if len(skipped) != 2 || skipped[0] != 1 || skipped[1] != 3 {
		t.Errorf("skipped lines = %v, want [1 3]", skipped)
	}
}

func TestReadPairsCallbackError(t *testing.T) {
	stop := errors.New("stop")
	_, err := ReadPairs(strings.NewReader("A B 1\nC D 1\n"), ReadOptions{}, func(neighbor.Triple) error {
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("error = %v, want %v", err, stop)
	}
}

func TestReadKeep(t *testing.T) {
	got, err := ReadKeep(strings.NewReader("  seq1 \n\nseq2\nseq1\n"))
	if err != nil {
		t.Fatalf("ReadKeep() error: %v", err)
	}
	if strings.Join(got, ",") != "seq1,seq2" {
		t.Errorf("ReadKeep() = %v, want [seq1 seq2]", got)
	}
}

func TestWriteNamesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	names := []string{"a", "b", "c"}
	if err := WriteNames(&buf, names); err != nil {
		t.Fatalf("WriteNames() error: %v", err)
	}
	if buf.String() != "a\nb\nc\n" {
		t.Errorf("output = %q", buf.String())
	}
	back, err := ReadKeep(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(back, ",") != "a,b,c" {
		t.Errorf("round trip = %v", back)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "pairs.txt")
	if err := os.WriteFile(in, []byte("x y 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	n := 0
	if _, err := ReadPairsFile(in, ReadOptions{}, func(neighbor.Triple) error { n++; return nil }); err != nil {
		t.Fatalf("ReadPairsFile() error: %v", err)
	}
	if n != 1 {
		t.Errorf("read %d triples, want 1", n)
	}

	out := filepath.Join(dir, "out.txt")
	if err := WriteNamesFile(out, []string{"x"}); err != nil {
		t.Fatalf("WriteNamesFile() error: %v", err)
	}
	names, err := ReadKeepFile(out)
	if err != nil || len(names) != 1 || names[0] != "x" {
		t.Errorf("ReadKeepFile() = %v, %v", names, err)
	}

	if _, err := ReadKeepFile(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{\n  \"a\": 1\n}\n" {
		t.Errorf("WriteJSON() = %q", buf.String())
	}
}
