package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/graphcsv/pkg/config"
	"github.com/matzehuels/graphcsv/pkg/csvload"
	"github.com/matzehuels/graphcsv/pkg/digraph"
	apperr "github.com/matzehuels/graphcsv/pkg/errors"
	graphio "github.com/matzehuels/graphcsv/pkg/io"
	"github.com/matzehuels/graphcsv/pkg/render/dot"
)

const formatJSON = "json"

// graphOpts holds the command-line flags of the root command.
type graphOpts struct {
	input      string          // input CSV path
	output     string          // output base path
	formats    string          // comma-separated output formats
	configPath string          // optional TOML settings file
	comment    string          // DOT comment override
	shortRows  string          // short-record policy override
	noView     bool            // never open the viewer
	changed    map[string]bool // flags set explicitly on the command line
}

// artifact is one rendered output waiting to be written.
type artifact struct {
	path string
	data []byte
}

// runGraph loads the CSV, builds and validates the graph, prints the DOT
// source, and writes one file per requested format. Nothing is written
// unless every format rendered successfully.
func (c *CLI) runGraph(ctx context.Context, opts *graphOpts) error {
	logger := loggerFromContext(ctx).With("run", uuid.NewString()[:8])
	ctx = withLogger(ctx, logger)

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	policy, err := csvload.ParsePolicy(cfg.ShortRows)
	if err != nil {
		return err
	}

	logger.Infof("Reading %s", opts.input)
	rows, err := csvload.Load(opts.input, csvload.WithLogger(logger), csvload.WithShortRows(policy))
	if err != nil {
		return err
	}

	g := digraph.Build(rows, digraph.WithLogger(logger))
	logger.Infof("Built graph: %d nodes, %d edges from %d rows", g.NodeCount(), g.EdgeCount(), len(rows))

	src, err := dot.ToDOT(g, dot.Options{
		Comment:  cfg.Comment,
		RankDir:  cfg.Graph.RankDir,
		Shape:    cfg.Node.Shape,
		FontName: cfg.Node.FontName,
		FontSize: cfg.Node.FontSize,
	})
	if err != nil {
		return err
	}
	fmt.Fprint(c.Stdout, src)

	base := basePath(opts.output, opts.input)
	prog := newProgress(logger)
	artifacts, err := renderAll(ctx, g, src, base, cfg.Formats)
	if err != nil {
		return err
	}
	if err := writeAll(artifacts); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(artifacts)))

	printSuccess(c.Stderr, "Rendered %s", filepath.Base(base))
	for _, a := range artifacts {
		printFile(c.Stderr, a.path)
	}
	printStats(c.Stderr, g.NodeCount(), g.EdgeCount())

	if cfg.View && c.IsTerminal() {
		c.view(ctx, artifacts[0].path)
	}
	return nil
}

// resolveConfig layers defaults, the optional config file, and explicit flags.
func resolveConfig(opts *graphOpts) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if opts.changed["format"] {
		cfg.Formats = parseFormats(opts.formats)
	}
	if opts.changed["comment"] {
		cfg.Comment = opts.comment
	}
	if opts.changed["short-rows"] {
		cfg.ShortRows = opts.shortRows
	}
	if opts.noView {
		cfg.View = false
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// parseFormats splits the --format flag value. Empty entries are dropped,
// so validation reports an empty list rather than an empty format name.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// basePath derives the output base path (without extension).
// An explicit output has a known format extension stripped. Otherwise the
// input file name is cut at its first period, in the input's directory.
func basePath(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if isFormat(strings.TrimPrefix(ext, ".")) {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}

	dir, name := filepath.Split(input)
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		name = fallbackBase
	}
	return filepath.Join(dir, name)
}

func isFormat(s string) bool {
	switch s {
	case dot.FormatPDF, dot.FormatSVG, dot.FormatPNG, dot.FormatDOT, formatJSON:
		return true
	}
	return false
}

// renderAll renders every format in memory, in the order requested.
func renderAll(ctx context.Context, g *digraph.Graph, src, base string, formats []string) ([]artifact, error) {
	logger := loggerFromContext(ctx)

	out := make([]artifact, 0, len(formats))
	for _, format := range formats {
		logger.Debugf("Rendering %s", format)

		var data []byte
		if format == formatJSON {
			var buf bytes.Buffer
			if err := graphio.WriteJSON(g, &buf); err != nil {
				return nil, err
			}
			data = buf.Bytes()
		} else {
			var err error
			data, err = dot.Render(ctx, src, format)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", format, err)
			}
		}

		logger.Debugf("Generated %s: %d bytes", format, len(data))
		out = append(out, artifact{path: base + "." + format, data: data})
	}
	return out, nil
}

func writeAll(artifacts []artifact) error {
	for _, a := range artifacts {
		if err := os.WriteFile(a.path, a.data, 0o644); err != nil {
			return apperr.Wrap(apperr.ErrCodeFileAccess, err, "write %s", a.path)
		}
	}
	return nil
}

// view opens path in the system viewer. A viewer failure does not fail the
// run: the file is already written.
func (c *CLI) view(ctx context.Context, path string) {
	logger := loggerFromContext(ctx)
	logger.Debugf("Opening %s", path)
	if err := c.Open(path); err != nil {
		logger.Warn("Could not open viewer", "path", path, "err", err)
	}
}
