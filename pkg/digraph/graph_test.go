package digraph

import (
	"bytes"
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/graphcsv/pkg/csvload"
	apperr "github.com/matzehuels/graphcsv/pkg/errors"
)

func rows(pairs ...[2]string) []csvload.Row {
	out := make([]csvload.Row, len(pairs))
	for i, p := range pairs {
		out[i] = csvload.Row{Source: p[0], Target: p[1], Line: i + 2}
	}
	return out
}

// recorder is a Declarer that records calls in order.
type recorder struct {
	calls []string
}

func (r *recorder) DeclareNode(index int, label string) {
	r.calls = append(r.calls, "node "+strconv.Itoa(index)+" "+label)
}

func (r *recorder) DeclareEdge(from, to int) {
	r.calls = append(r.calls, "edge "+strconv.Itoa(from)+" "+strconv.Itoa(to))
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		rows      []csvload.Row
		wantNodes []string
		wantEdges []IndexedEdge
	}{
		{
			name:      "three knights",
			rows:      rows([2]string{"Alice", "Bob"}, [2]string{"Bob", "Carol"}, [2]string{"Alice", "Carol"}),
			wantNodes: []string{"Alice", "Bob", "Carol"},
			wantEdges: []IndexedEdge{{0, 1}, {1, 2}, {0, 2}},
		},
		{
			name:      "empty target adds node but no edge",
			rows:      rows([2]string{"Alice", ""}),
			wantNodes: []string{"Alice"},
			wantEdges: []IndexedEdge{},
		},
		{
			name:      "empty source adds node but no edge",
			rows:      rows([2]string{"", "Bob"}),
			wantNodes: []string{"Bob"},
			wantEdges: []IndexedEdge{},
		},
		{
			name:      "duplicate rows keep duplicate edges",
			rows:      rows([2]string{"A", "B"}, [2]string{"A", "B"}),
			wantNodes: []string{"A", "B"},
			wantEdges: []IndexedEdge{{0, 1}, {0, 1}},
		},
		{
			name:      "blank row contributes nothing",
			rows:      rows([2]string{"A", "B"}, [2]string{"", ""}, [2]string{"B", "C"}),
			wantNodes: []string{"A", "B", "C"},
			wantEdges: []IndexedEdge{{0, 1}, {1, 2}},
		},
		{
			name:      "whitespace trimmed before dedup",
			rows:      rows([2]string{" Alice ", "Bob"}, [2]string{"Bob\t", "Alice"}),
			wantNodes: []string{"Alice", "Bob"},
			wantEdges: []IndexedEdge{{0, 1}, {1, 0}},
		},
		{
			name:      "whitespace-only cells are empty",
			rows:      rows([2]string{"  ", "Bob"}, [2]string{" ", "\t"}),
			wantNodes: []string{"Bob"},
			wantEdges: []IndexedEdge{},
		},
		{
			name:      "labels are case-sensitive",
			rows:      rows([2]string{"alice", "Alice"}),
			wantNodes: []string{"alice", "Alice"},
			wantEdges: []IndexedEdge{{0, 1}},
		},
		{
			name:      "self loop adds one node",
			rows:      rows([2]string{"A", "A"}),
			wantNodes: []string{"A"},
			wantEdges: []IndexedEdge{{0, 0}},
		},
		{
			name:      "cycle",
			rows:      rows([2]string{"A", "B"}, [2]string{"B", "A"}),
			wantNodes: []string{"A", "B"},
			wantEdges: []IndexedEdge{{0, 1}, {1, 0}},
		},
		{
			name:      "target seen before source",
			rows:      rows([2]string{"A", "B"}, [2]string{"C", "B"}),
			wantNodes: []string{"A", "B", "C"},
			wantEdges: []IndexedEdge{{0, 1}, {2, 1}},
		},
		{
			name:      "no rows",
			rows:      nil,
			wantNodes: nil,
			wantEdges: []IndexedEdge{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.rows)

			if diff := cmp.Diff(tt.wantNodes, g.Nodes()); diff != "" {
				t.Errorf("Nodes() mismatch (-want +got):\n%s", diff)
			}

			edges, err := g.Resolve()
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if diff := cmp.Diff(tt.wantEdges, edges); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}

			if err := g.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}

func TestBuildEdgesKeepTrimmedLabels(t *testing.T) {
	g := Build(rows([2]string{"  Guinevere, Queen ", " Arthur"}))

	want := []Edge{{From: "Guinevere, Queen", To: "Arthur"}}
	if diff := cmp.Diff(want, g.Edges()); diff != "" {
		t.Errorf("Edges() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildIdempotent(t *testing.T) {
	in := rows([2]string{"A", "B"}, [2]string{"B", ""}, [2]string{"C", "A"}, [2]string{"A", "B"})

	first := Build(in)
	second := Build(in)

	if diff := cmp.Diff(first.Nodes(), second.Nodes()); diff != "" {
		t.Errorf("Nodes() differ between builds:\n%s", diff)
	}
	if diff := cmp.Diff(first.Edges(), second.Edges()); diff != "" {
		t.Errorf("Edges() differ between builds:\n%s", diff)
	}
	if in[0].Source != "A" || in[1].Target != "" {
		t.Error("Build() must not modify its input rows")
	}
}

func TestBuildLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	Build(rows([2]string{"A", "B"}, [2]string{"B", "C"}), WithLogger(logger))

	out := buf.String()
	for _, want := range []string{"Appending node", "Duplicate node", "Length of node list = 3", "Length of edge list = 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q:\n%s", want, out)
		}
	}
}

func TestBuildSilentByDefault(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	Build(rows([2]string{"A", "B"}))

	if buf.Len() != 0 {
		t.Errorf("Build() without a logger wrote to the default logger: %q", buf.String())
	}
}

func TestAddNode(t *testing.T) {
	g := New()

	if i, added := g.AddNode("A"); i != 0 || !added {
		t.Errorf("AddNode(A) = %d, %v; want 0, true", i, added)
	}
	if i, added := g.AddNode("B"); i != 1 || !added {
		t.Errorf("AddNode(B) = %d, %v; want 1, true", i, added)
	}
	if i, added := g.AddNode("A"); i != 0 || added {
		t.Errorf("AddNode(A) again = %d, %v; want 0, false", i, added)
	}
	if i, added := g.AddNode(""); i != -1 || added {
		t.Errorf("AddNode(\"\") = %d, %v; want -1, false", i, added)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
}

func TestIndexOf(t *testing.T) {
	g := Build(rows([2]string{"Alice", "Bob"}))

	if i, err := g.IndexOf("Bob"); err != nil || i != 1 {
		t.Errorf("IndexOf(Bob) = %d, %v; want 1, nil", i, err)
	}

	_, err := g.IndexOf("Carol")
	if !apperr.Is(err, apperr.ErrCodeInvariantViolation) {
		t.Errorf("IndexOf(Carol) error = %v, want %s", err, apperr.ErrCodeInvariantViolation)
	}
	if !errors.Is(err, ErrUnknownLabel) {
		t.Errorf("IndexOf(Carol) error should wrap ErrUnknownLabel: %v", err)
	}
}

func TestValidateDanglingEdges(t *testing.T) {
	g := New()
	g.AddNode("A")
	g.AddEdge("A", "B")
	g.AddEdge("C", "A")
	g.AddEdge("D", "E")

	err := g.Validate()
	if !apperr.Is(err, apperr.ErrCodeInvariantViolation) {
		t.Fatalf("Validate() error = %v, want %s", err, apperr.ErrCodeInvariantViolation)
	}
	if !errors.Is(err, ErrUnknownLabel) {
		t.Errorf("Validate() error should wrap ErrUnknownLabel: %v", err)
	}
	if !strings.Contains(err.Error(), "4 dangling edge endpoints") {
		t.Errorf("Validate() should count every dangling endpoint: %v", err)
	}
	for _, label := range []string{`"B"`, `"C"`, `"D"`, `"E"`} {
		if !strings.Contains(err.Error(), label) {
			t.Errorf("Validate() error should mention %s: %v", label, err)
		}
	}

	if _, err := g.Resolve(); !apperr.Is(err, apperr.ErrCodeInvariantViolation) {
		t.Errorf("Resolve() error = %v, want %s", err, apperr.ErrCodeInvariantViolation)
	}
}

func TestDeclare(t *testing.T) {
	g := Build(rows([2]string{"Alice", "Bob"}, [2]string{"Bob", "Carol"}, [2]string{"Alice", "Carol"}))

	var r recorder
	if err := g.Declare(&r); err != nil {
		t.Fatalf("Declare() error: %v", err)
	}

	want := []string{
		"node 0 Alice",
		"node 1 Bob",
		"node 2 Carol",
		"edge 0 1",
		"edge 1 2",
		"edge 0 2",
	}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("Declare() calls mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclareInvalidGraph(t *testing.T) {
	g := New()
	g.AddNode("A")
	g.AddEdge("A", "B")

	var r recorder
	err := g.Declare(&r)
	if !apperr.Is(err, apperr.ErrCodeInvariantViolation) {
		t.Fatalf("Declare() error = %v, want %s", err, apperr.ErrCodeInvariantViolation)
	}
	if len(r.calls) != 0 {
		t.Errorf("Declare() should declare nothing on failure, got %v", r.calls)
	}
}
