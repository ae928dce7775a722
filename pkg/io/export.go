package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteNames writes one name per line to w.
func WriteNames(w io.Writer, names []string) error {
	bw := bufio.NewWriter(w)
	for _, n := range names {
		if _, err := fmt.Fprintln(bw, n); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteJSON encodes v as indented JSON to w.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// CreateOutput creates (or truncates) path, or returns stdout for "-".
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == "-" || path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// WriteNamesFile writes names to the file at path, or stdout for "-".
func WriteNamesFile(path string, names []string) error {
	out, err := CreateOutput(path)
	if err != nil {
		return err
	}
	if err := WriteNames(out, names); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
