package neighbor_test

import (
	"fmt"

	"github.com/matzehuels/hobohm/pkg/neighbor"
)

func ExampleReduce() {
	b := neighbor.NewBuilder(neighbor.Similarity, 0.5)
	b.Add(neighbor.Triple{A: "seq1", B: "seq2", Value: 0.9})
	b.Add(neighbor.Triple{A: "seq1", B: "seq3", Value: 0.1})
	b.Add(neighbor.Triple{A: "seq3", B: "seq4", Value: 0.8})

	res, err := neighbor.Reduce(b.Graph(), []string{"seq2"})
	if err != nil {
		panic(err)
	}
	fmt.Println("Retained:", res.Retained)
	fmt.Println("Removed for keep:", res.RemovedAsKeepNeighbor)
	fmt.Println("Eliminated:", res.Eliminated)
	// Output:
	// Retained: [seq2 seq4]
	// Removed for keep: [seq1]
	// Eliminated: [seq3]
}

func ExampleRelation_IsNeighbor() {
	fmt.Println(neighbor.Similarity.IsNeighbor(0.95, 0.9))
	fmt.Println(neighbor.Distance.IsNeighbor(0.95, 0.9))
	fmt.Println(neighbor.Distance.IsNeighbor(0.9, 0.9))
	// Output:
	// true
	// false
	// false
}

func ExampleBuilder_Summary() {
	b := neighbor.NewBuilder(neighbor.Distance, 0.2)
	b.Add(neighbor.Triple{A: "a", B: "b", Value: 0.1})
	b.Add(neighbor.Triple{A: "a", B: "c", Value: 0.5})
	b.Add(neighbor.Triple{A: "b", B: "c", Value: 0.3})

	s := b.Summary()
	fmt.Printf("items=%d edges=%d max=%d ave=%.2f value=%.2f\n",
		s.Items, s.Edges, s.MaxDegree, s.AvgDegree, s.AvgValue)
	// Output:
	// items=3 edges=1 max=1 ave=0.67 value=0.30
}
