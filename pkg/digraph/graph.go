package digraph

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"

	"github.com/matzehuels/graphcsv/pkg/csvload"
	apperr "github.com/matzehuels/graphcsv/pkg/errors"
)

// ErrUnknownLabel is wrapped by [Graph.IndexOf], [Graph.Resolve] and
// [Graph.Validate] when an edge names a label that is not a node.
var ErrUnknownLabel = errors.New("label is not a node")

// Edge is a directed connection between two node labels.
type Edge struct {
	From string
	To   string
}

// IndexedEdge is an [Edge] resolved to node indices.
type IndexedEdge struct {
	From int
	To   int
}

// Declarer receives a graph in declaration order: every node by ascending
// index, then every edge in edge order. Renderers implement it.
type Declarer interface {
	DeclareNode(index int, label string)
	DeclareEdge(from, to int)
}

// Graph is an ordered, deduplicated node list plus an ordered edge list.
//
// The zero value is not usable - use [New] or [Build].
// Graph is not safe for concurrent mutation.
type Graph struct {
	nodes []string
	index map[string]int
	edges []Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode appends label as a node unless it is empty or already present.
// It returns the label's index and whether it was added. For an empty label
// the index is -1.
func (g *Graph) AddNode(label string) (int, bool) {
	if label == "" {
		return -1, false
	}
	if i, ok := g.index[label]; ok {
		return i, false
	}
	i := len(g.nodes)
	g.nodes = append(g.nodes, label)
	g.index[label] = i
	return i, true
}

// AddEdge appends a directed edge. Endpoints are not checked here; see
// [Graph.Validate].
func (g *Graph) AddEdge(from, to string) {
	g.edges = append(g.edges, Edge{From: from, To: to})
}

// Nodes returns the node labels in index order.
// The returned slice must not be modified.
func (g *Graph) Nodes() []string { return g.nodes }

// Edges returns the edges in insertion order.
// The returned slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// IndexOf returns the zero-based index of label.
// A label that is not a node is an invariant violation, not a lookup miss.
func (g *Graph) IndexOf(label string) (int, error) {
	if i, ok := g.index[label]; ok {
		return i, nil
	}
	return -1, apperr.Wrap(apperr.ErrCodeInvariantViolation, ErrUnknownLabel, "index of %q", label)
}

// Resolve maps every edge to node indices, in edge order.
func (g *Graph) Resolve() ([]IndexedEdge, error) {
	out := make([]IndexedEdge, len(g.edges))
	for i, e := range g.edges {
		from, err := g.IndexOf(e.From)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		to, err := g.IndexOf(e.To)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		out[i] = IndexedEdge{From: from, To: to}
	}
	return out, nil
}

// Validate checks that every edge endpoint is a node. All dangling
// endpoints are reported together.
func (g *Graph) Validate() error {
	var result *multierror.Error
	for i, e := range g.edges {
		if _, ok := g.index[e.From]; !ok {
			result = multierror.Append(result, fmt.Errorf("edge %d (%q -> %q): source: %w", i, e.From, e.To, ErrUnknownLabel))
		}
		if _, ok := g.index[e.To]; !ok {
			result = multierror.Append(result, fmt.Errorf("edge %d (%q -> %q): target: %w", i, e.From, e.To, ErrUnknownLabel))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvariantViolation, err, "%d dangling edge endpoints", len(result.Errors))
	}
	return nil
}

// Declare validates g and then declares its nodes and edges to d.
// Nothing is declared when validation fails.
func (g *Graph) Declare(d Declarer) error {
	if err := g.Validate(); err != nil {
		return err
	}
	edges, err := g.Resolve()
	if err != nil {
		return err
	}
	for i, label := range g.nodes {
		d.DeclareNode(i, label)
	}
	for _, e := range edges {
		d.DeclareEdge(e.From, e.To)
	}
	return nil
}

type options struct {
	logger *log.Logger
}

// Option configures [Build].
type Option func(*options)

// WithLogger routes build diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Build constructs a graph from rows. For each row, in order: both labels
// are trimmed; an edge is added if both are non-empty; then the source and
// the target are each added as a node if non-empty and not yet present.
//
// Build has no hidden state: the same rows always give the same graph.
func Build(rows []csvload.Row, opts ...Option) *Graph {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger

	g := New()
	for i, r := range rows {
		src := strings.TrimSpace(r.Source)
		dst := strings.TrimSpace(r.Target)
		logger.Debug("Row", "n", i, "line", r.Line, "source", src, "target", dst)

		if src != "" && dst != "" {
			g.AddEdge(src, dst)
		}
		addNode(g, logger, src)
		addNode(g, logger, dst)
	}

	logger.Debugf("Length of node list = %d", g.NodeCount())
	logger.Debugf("Length of edge list = %d", g.EdgeCount())
	return g
}

func addNode(g *Graph, logger *log.Logger, label string) {
	if label == "" {
		return
	}
	if i, added := g.AddNode(label); added {
		logger.Debug("Appending node", "label", label, "index", i)
	} else {
		logger.Debug("Duplicate node", "label", label, "index", i)
	}
}
