package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxNameLength bounds item identifiers accepted from keep lists and the API.
const maxNameLength = 1024

// ValidateName checks an item identifier. Names are single whitespace-free
// tokens, because the triple format splits on whitespace.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "item name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "item name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "item name contains whitespace: %q", name)
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "item name contains invalid control characters")
		}
	}
	return nil
}

// ValidateCutoff rejects NaN and infinite cutoffs.
func ValidateCutoff(cutoff float64) error {
	if math.IsNaN(cutoff) || math.IsInf(cutoff, 0) {
		return New(ErrCodeInvalidCutoff, "cutoff must be a finite number, got %v", cutoff)
	}
	return nil
}

// ValidatePath checks a user-supplied input or output path.
// "-" is accepted as stdin/stdout.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "path contains invalid characters")
	}
	return nil
}
