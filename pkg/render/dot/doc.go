// Package dot renders a [digraph.Graph] as a Graphviz node-link diagram.
//
// # Overview
//
// [Writer] implements [digraph.Declarer]: it receives node and edge
// declarations in order and serializes them to Graphviz DOT. Nodes are named
// by their index and carry their label verbatim, so two labels that differ
// only in case or punctuation stay distinct nodes:
//
//	// The Round Table
//	digraph {
//		rankdir=TB;
//		node [shape="ellipse", fontname="Helvetica", fontsize=14];
//
//		0 [label="Arthur"];
//		1 [label="Lancelot"];
//		0 -> 1;
//	}
//
// # Usage
//
//	src, err := dot.ToDOT(g, dot.Options{Comment: "The Round Table"})
//	svg, err := dot.RenderSVG(ctx, src)
//	pdf, err := dot.Render(ctx, src, dot.FormatPDF)
//
// # Dependencies
//
// SVG is produced in-process with [github.com/goccy/go-graphviz]. PDF and PNG
// are converted from that SVG by [render.ToPDF] and [render.ToPNG], which
// require librsvg (rsvg-convert).
//
// [digraph.Graph]: github.com/matzehuels/graphcsv/pkg/digraph.Graph
// [digraph.Declarer]: github.com/matzehuels/graphcsv/pkg/digraph.Declarer
// [render.ToPDF]: github.com/matzehuels/graphcsv/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/graphcsv/pkg/render.ToPNG
package dot
