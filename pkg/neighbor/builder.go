package neighbor

// Builder ingests triples into a [Graph] and accumulates the values needed
// for the post-ingestion [Summary].
type Builder struct {
	g        *Graph
	relation Relation
	cutoff   float64
	rows     int
	neighbor int
	valueSum float64
}

// NewBuilder creates a builder that classifies values with relation and cutoff.
func NewBuilder(relation Relation, cutoff float64) *Builder {
	return &Builder{g: New(), relation: relation, cutoff: cutoff}
}

// Add ingests one triple. Both names always become nodes; an edge is added
// when the pair is distinct and its value crosses the cutoff. Add reports
// whether the triple produced a neighbor edge.
func (b *Builder) Add(t Triple) bool {
	b.rows++
	b.valueSum += t.Value
	b.g.AddNode(t.A)
	b.g.AddNode(t.B)
	if t.A == t.B || !b.relation.IsNeighbor(t.Value, b.cutoff) {
		return false
	}
	b.g.AddEdge(t.A, t.B)
	b.neighbor++
	return true
}

// Graph returns the graph under construction. The builder keeps no copy:
// mutating the graph affects later Summary calls.
func (b *Builder) Graph() *Graph { return b.g }

// Relation returns the relation the builder classifies with.
func (b *Builder) Relation() Relation { return b.relation }

// Cutoff returns the cutoff the builder classifies with.
func (b *Builder) Cutoff() float64 { return b.cutoff }

// Summary describes the graph as ingested. Call it before reduction.
func (b *Builder) Summary() Summary {
	s := Summary{
		Items:        b.g.NodeCount(),
		Edges:        b.g.EdgeCount(),
		Rows:         b.rows,
		NeighborRows: b.neighbor,
		Relation:     b.relation,
		Cutoff:       b.cutoff,
	}
	first := true
	total := 0
	for _, d := range b.g.Degrees() {
		total += d
		if first {
			s.MinDegree, s.MaxDegree = d, d
			first = false
			continue
		}
		s.MinDegree = min(s.MinDegree, d)
		s.MaxDegree = max(s.MaxDegree, d)
	}
	if s.Items > 0 {
		s.AvgDegree = float64(total) / float64(s.Items)
	}
	if n := float64(s.Items); n > 1 {
		s.AvgValue = b.valueSum * 2 / (n * (n - 1))
	}
	return s
}

// Summary holds read-only statistics of the graph right after ingestion.
// MinDegree and MaxDegree range over items with at least one neighbor.
// AvgDegree averages over all items. AvgValue treats the input as one value
// per unordered pair, so it is the sum of all values over n(n-1)/2.
type Summary struct {
	Items        int      `json:"items"`
	Edges        int      `json:"edges"`
	Rows         int      `json:"rows"`
	NeighborRows int      `json:"neighbor_rows"`
	MinDegree    int      `json:"min_degree"`
	MaxDegree    int      `json:"max_degree"`
	AvgDegree    float64  `json:"avg_degree"`
	AvgValue     float64  `json:"avg_value"`
	Relation     Relation `json:"relation"`
	Cutoff       float64  `json:"cutoff"`
}
