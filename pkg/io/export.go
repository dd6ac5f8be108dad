package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/graphcsv/pkg/digraph"
)

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

type edge struct {
	From   int    `json:"from"`
	To     int    `json:"to"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// exporter collects declarations into the wire format.
type exporter struct {
	out    graph
	labels []string
}

func (e *exporter) DeclareNode(index int, label string) {
	e.out.Nodes = append(e.out.Nodes, node{Index: index, Label: label})
	e.labels = append(e.labels, label)
}

func (e *exporter) DeclareEdge(from, to int) {
	e.out.Edges = append(e.out.Edges, edge{From: from, To: to, Source: e.labels[from], Target: e.labels[to]})
}

// WriteJSON validates g and writes it to w as indented JSON.
func WriteJSON(g *digraph.Graph, w io.Writer) error {
	e := &exporter{out: graph{Nodes: []node{}, Edges: []edge{}}}
	if err := g.Declare(e); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e.out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *digraph.Graph, path string) error {
	if err := g.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
