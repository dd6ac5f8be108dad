// Package render converts rendered diagrams between output formats.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert an SVG document to other formats
// using the external rsvg-convert tool (from librsvg). The DOT renderer in
// [dot] produces SVG in-process and delegates here for PDF and PNG:
//
//	svg, err := dot.RenderSVG(ctx, src)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// A missing rsvg-convert binary is reported as a RENDER error with
// installation instructions.
//
// [dot]: github.com/matzehuels/graphcsv/pkg/render/dot
package render
