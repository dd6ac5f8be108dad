package dot

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphcsv/pkg/digraph"
	apperr "github.com/matzehuels/graphcsv/pkg/errors"
	"github.com/matzehuels/graphcsv/pkg/render"
)

// Output formats understood by [Render].
const (
	FormatPDF = "pdf"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// pngScale is the rsvg-convert zoom factor for PNG output.
const pngScale = 2.0

// Options configures the generated DOT source.
type Options struct {
	// Comment is written as a leading // comment, one line per line of text.
	Comment string
	// RankDir is the graph's rankdir attribute (TB, LR, BT, RL). Empty omits it.
	RankDir string
	// Shape, FontName and FontSize set default node attributes. Zero values
	// are omitted.
	Shape    string
	FontName string
	FontSize float64
}

// Writer serializes node and edge declarations to DOT.
// It implements [digraph.Declarer].
type Writer struct {
	opts  Options
	nodes bytes.Buffer
	edges bytes.Buffer
}

var _ digraph.Declarer = (*Writer)(nil)

// NewWriter returns an empty Writer.
func NewWriter(opts Options) *Writer {
	return &Writer{opts: opts}
}

// DeclareNode emits node index with its exact label.
func (w *Writer) DeclareNode(index int, label string) {
	fmt.Fprintf(&w.nodes, "\t%d [label=%s];\n", index, quote(label))
}

// DeclareEdge emits a directed edge between two node indices.
func (w *Writer) DeclareEdge(from, to int) {
	fmt.Fprintf(&w.edges, "\t%d -> %d;\n", from, to)
}

// String returns the complete DOT document.
func (w *Writer) String() string {
	var buf bytes.Buffer
	if w.opts.Comment != "" {
		for _, line := range strings.Split(w.opts.Comment, "\n") {
			fmt.Fprintf(&buf, "// %s\n", line)
		}
	}
	buf.WriteString("digraph {\n")
	header := false
	if w.opts.RankDir != "" {
		fmt.Fprintf(&buf, "\trankdir=%s;\n", w.opts.RankDir)
		header = true
	}
	if attrs := w.nodeAttrs(); len(attrs) > 0 {
		fmt.Fprintf(&buf, "\tnode [%s];\n", strings.Join(attrs, ", "))
		header = true
	}
	if header && w.nodes.Len()+w.edges.Len() > 0 {
		buf.WriteString("\n")
	}
	buf.Write(w.nodes.Bytes())
	buf.Write(w.edges.Bytes())
	buf.WriteString("}\n")
	return buf.String()
}

func (w *Writer) nodeAttrs() []string {
	var attrs []string
	if w.opts.Shape != "" {
		attrs = append(attrs, "shape="+quote(w.opts.Shape))
	}
	if w.opts.FontName != "" {
		attrs = append(attrs, "fontname="+quote(w.opts.FontName))
	}
	if w.opts.FontSize > 0 {
		attrs = append(attrs, "fontsize="+strconv.FormatFloat(w.opts.FontSize, 'f', -1, 64))
	}
	return attrs
}

// quote returns s as a DOT double-quoted string. Backslashes are escaped so
// Graphviz escape sequences (\N, \G, \l) in labels are shown literally.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// ToDOT validates g and converts it to DOT source. Nodes are declared in
// index order and edges in edge order.
func ToDOT(g *digraph.Graph, opts Options) (string, error) {
	w := NewWriter(opts)
	if err := g.Declare(w); err != nil {
		return "", err
	}
	return w.String(), nil
}

// RenderSVG lays out DOT source with Graphviz and returns SVG bytes.
func RenderSVG(ctx context.Context, src string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeRender, err, "render")
	}
	return buf.Bytes(), nil
}

// Render produces src in the given format: DOT source as-is, SVG from
// Graphviz, or PDF/PNG converted from that SVG.
func Render(ctx context.Context, src, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(src), nil
	case FormatSVG:
		return RenderSVG(ctx, src)
	case FormatPDF:
		svg, err := RenderSVG(ctx, src)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	case FormatPNG:
		svg, err := RenderSVG(ctx, src)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, svg, pngScale)
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unknown format: %s", format)
	}
}
