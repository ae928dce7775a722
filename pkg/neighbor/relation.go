package neighbor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Relation states whether pairwise values measure similarity or distance,
// which fixes the direction in which a value crosses the cutoff.
type Relation int

const (
	// Similarity values are neighbors when value > cutoff.
	Similarity Relation = iota
	// Distance values are neighbors when value < cutoff.
	Distance
)

// String returns the short name used on the command line ("sim" or "dist").
func (r Relation) String() string {
	switch r {
	case Similarity:
		return "sim"
	case Distance:
		return "dist"
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// Noun returns the plural noun used in reports ("similarities" or "distances").
func (r Relation) Noun() string {
	if r == Distance {
		return "distances"
	}
	return "similarities"
}

// MarshalText implements encoding.TextMarshaler.
func (r Relation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the same
// spellings as [ParseRelation].
func (r *Relation) UnmarshalText(text []byte) error {
	v, err := ParseRelation(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseRelation accepts "sim", "similarity", "dist" and "distance"
// (case-insensitive).
func ParseRelation(s string) (Relation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sim", "similarity":
		return Similarity, nil
	case "dist", "distance":
		return Distance, nil
	}
	return 0, fmt.Errorf("%w: %q (must be one of: sim, dist)", ErrUnknownRelation, s)
}

// IsNeighbor reports whether value crosses cutoff in the relation's
// "too similar" direction. Equality never makes a neighbor.
func (r Relation) IsNeighbor(value, cutoff float64) bool {
	if r == Distance {
		return value < cutoff
	}
	return value > cutoff
}

// IsNeighbor is the free-function form of [Relation.IsNeighbor].
func IsNeighbor(value, cutoff float64, r Relation) bool {
	return r.IsNeighbor(value, cutoff)
}

// Triple is one pairwise measurement.
type Triple struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Value float64 `json:"value"`
}

// ParseTriple parses a whitespace-separated "name1 name2 value" record.
// Any other token count or a non-numeric or non-finite value yields a *[FormatError].
func ParseTriple(line string) (Triple, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Triple{}, &FormatError{
			Text:   line,
			Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields)),
		}
	}
	v, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Triple{}, &FormatError{Text: line, Reason: "value is not a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Triple{}, &FormatError{Text: line, Reason: "value is not a finite number"}
	}
	return Triple{A: fields[0], B: fields[1], Value: v}, nil
}
