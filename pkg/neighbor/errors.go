package neighbor

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTriple is the sentinel wrapped by every [FormatError].
	ErrMalformedTriple = errors.New("malformed triple")

	// ErrNotNeighbors is the sentinel wrapped by every [NotNeighborsError].
	// It signals a programming defect, never a user error.
	ErrNotNeighbors = errors.New("nodes are not neighbors")

	// ErrUnknownRelation is returned by [ParseRelation] for unrecognized names.
	ErrUnknownRelation = errors.New("unknown relation")
)

// FormatError reports an input record that is not a "name1 name2 value" triple.
// Line is 1-based and zero when the record did not come from a numbered source.
type FormatError struct {
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

// Unwrap returns [ErrMalformedTriple].
func (e *FormatError) Unwrap() error { return ErrMalformedTriple }

// NotNeighborsError is returned by [Graph.RemoveEdge] when A and B are not
// currently adjacent.
type NotNeighborsError struct {
	A, B string
}

func (e *NotNeighborsError) Error() string {
	return fmt.Sprintf("these nodes are not neighbors: %s, %s", e.A, e.B)
}

// Unwrap returns [ErrNotNeighbors].
func (e *NotNeighborsError) Unwrap() error { return ErrNotNeighbors }
