package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/hobohm/pkg/neighbor"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// ReadOptions controls how [ReadPairs] treats malformed lines.
type ReadOptions struct {
	// SkipMalformed skips lines that fail to parse instead of aborting.
	SkipMalformed bool
	// OnMalformed, if set, is called for every skipped line.
	OnMalformed func(*neighbor.FormatError)
}

// ReadStats counts what [ReadPairs] consumed.
type ReadStats struct {
	Lines     int `json:"lines"`     // physical lines read
	Triples   int `json:"triples"`   // triples passed to the callback
	Malformed int `json:"malformed"` // lines skipped as malformed
}

// ReadPairs parses triples from r and passes each to fn in input order.
// It stops at the first error returned by fn. A malformed line returns a
// *neighbor.FormatError unless opts.SkipMalformed is set. ReadPairs does
// not close r.
func ReadPairs(r io.Reader, opts ReadOptions, fn func(neighbor.Triple) error) (ReadStats, error) {
	var st ReadStats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for sc.Scan() {
		st.Lines++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		t, err := neighbor.ParseTriple(line)
		if err != nil {
			var fe *neighbor.FormatError
			if !errors.As(err, &fe) {
				return st, err
			}
			fe.Line = st.Lines
			if !opts.SkipMalformed {
				return st, fe
			}
			st.Malformed++
			if opts.OnMalformed != nil {
				opts.OnMalformed(fe)
			}
			continue
		}

		st.Triples++
		if err := fn(t); err != nil {
			return st, err
		}
	}
	if err := sc.Err(); err != nil {
		return st, fmt.Errorf("read line %d: %w", st.Lines+1, err)
	}
	return st, nil
}

// OpenInput opens path for reading, or returns stdin for "-".
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// ReadPairsFile is [ReadPairs] over the file at path.
func ReadPairsFile(path string, opts ReadOptions, fn func(neighbor.Triple) error) (ReadStats, error) {
	f, err := OpenInput(path)
	if err != nil {
		return ReadStats{}, err
	}
	defer f.Close()
	return ReadPairs(f, opts, fn)
}
