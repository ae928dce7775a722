package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadKeep reads one name per line, dropping blank lines and duplicates
// while preserving first-seen order.
func ReadKeep(r io.Reader) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read keep list: %w", err)
	}
	return names, nil
}

// ReadKeepFile is [ReadKeep] over the file at path.
func ReadKeepFile(path string) ([]string, error) {
	f, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadKeep(f)
}
