// Package digraph builds a directed graph from source/target rows.
//
// # Overview
//
// [Build] turns rows read by [csvload] into a [Graph]: an ordered list of
// unique node labels and an ordered list of edges between them. Node indices
// are assigned in first-appearance order, scanning each row's source before
// its target and rows top to bottom:
//
//	rows:  Alice,Bob   Bob,Carol   Alice,Carol
//	nodes: 0=Alice 1=Bob 2=Carol
//	edges: 0->1 1->2 0->2
//
// Labels are trimmed of surrounding whitespace and otherwise compared
// exactly (case-sensitive). A row contributes an edge only when both labels
// are non-empty, but a non-empty label is always added as a node. Edges are
// never deduplicated: two identical rows give two edges.
//
// # Invariant
//
// Every edge endpoint must name a node. [Build] guarantees this by
// construction; [Graph.Validate] checks it explicitly and reports every
// dangling endpoint as one INVARIANT_VIOLATION error. [Graph.Declare], the
// hand-off to a renderer, validates first and declares nothing on failure.
//
// # Logging
//
// Diagnostics (each row, each dedup decision, final counts) go to the
// logger passed with [WithLogger]. Without one, output is discarded.
//
// [csvload]: github.com/matzehuels/graphcsv/pkg/csvload
package digraph
