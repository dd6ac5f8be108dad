package digraph_test

import (
	"fmt"

	"github.com/matzehuels/graphcsv/pkg/csvload"
	"github.com/matzehuels/graphcsv/pkg/digraph"
)

func ExampleBuild() {
	rows := []csvload.Row{
		{Source: "Alice", Target: "Bob"},
		{Source: "Bob", Target: "Carol"},
		{Source: "Alice", Target: "Carol"},
	}

	g := digraph.Build(rows)
	edges, err := g.Resolve()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(g.Nodes())
	fmt.Println(edges)
	// Output:
	// [Alice Bob Carol]
	// [{0 1} {1 2} {0 2}]
}

func ExampleBuild_emptyCell() {
	g := digraph.Build([]csvload.Row{{Source: "Alice", Target: ""}})

	fmt.Println(g.Nodes(), g.EdgeCount())
	// Output:
	// [Alice] 0
}

func ExampleGraph_Validate() {
	g := digraph.New()
	g.AddNode("Alice")
	g.AddEdge("Alice", "Mordred")

	fmt.Println(g.Validate() != nil)
	// Output:
	// true
}
