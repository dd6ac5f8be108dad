// Package cli implements the graphcsv command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/cli/browser"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/graphcsv/pkg/buildinfo"
	apperr "github.com/matzehuels/graphcsv/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "graphcsv"

	// fallbackBase is the output base name when none can be derived from the input.
	fallbackBase = "graph"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for the command.
type CLI struct {
	Logger *log.Logger

	// Stdout receives the DOT source; Stderr receives logs and status lines.
	Stdout io.Writer
	Stderr io.Writer

	// IsTerminal reports whether Stdout is interactive. The viewer only
	// opens for interactive runs.
	IsTerminal func() bool

	// Open shows a rendered file in the system viewer.
	Open func(path string) error
}

// New creates a new CLI instance writing to the given streams.
func New(stdout, stderr io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: newLogger(stderr, level),
		Stdout: stdout,
		Stderr: stderr,
		Open:   browser.OpenFile,
	}
	c.IsTerminal = func() bool { return isTerminal(c.Stdout) }
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command.
func (c *CLI) RootCommand() *cobra.Command {
	opts := graphOpts{}

	root := &cobra.Command{
		Use:   "graphcsv -i <inputfile> [-o <outputfile>]",
		Short: "graphcsv renders a CSV edge list as a directed graph",
		Long: `graphcsv reads a CSV file of source,target pairs (the first row is a header),
deduplicates the labels into nodes, and renders the directed graph with Graphviz.
The DOT source is printed to stdout and the diagram is written to <outputfile>.<format>.`,
		Version:       buildinfo.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.Logger.Warn("Ignoring extra arguments", "args", args)
			}
			if opts.input == "" {
				return apperr.New(apperr.ErrCodeInvalidArgument, "input file name is required")
			}
			opts.changed = changedFlags(cmd.Flags())
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runGraph(ctx, &opts)
		},
	}

	root.SetOut(c.Stdout)
	root.SetErr(c.Stderr)
	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperr.Wrap(apperr.ErrCodeUsage, err, "invalid option")
	})

	flags := root.Flags()
	flags.StringVarP(&opts.input, "ifile", "i", "", "input CSV file (required)")
	flags.StringVarP(&opts.output, "ofile", "o", "", "output base name (default: input file name up to its first period)")
	flags.StringVarP(&opts.formats, "format", "f", "", "output format(s): pdf (default), svg, png, dot, json (comma-separated)")
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML settings file")
	flags.StringVar(&opts.comment, "comment", "", "comment written at the top of the DOT source")
	flags.StringVar(&opts.shortRows, "short-rows", "", "records with fewer than two columns: error (default) or skip")
	flags.BoolVar(&opts.noView, "no-view", false, "do not open the rendered diagram")

	return root
}

// Execute runs root with ctx and reports any failure on Stderr. Argument
// errors are followed by the usage text.
func (c *CLI) Execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	printError(c.Stderr, "%s", apperr.UserMessage(err))
	switch apperr.GetCode(err) {
	case apperr.ErrCodeUsage, apperr.ErrCodeInvalidArgument:
		c.Stderr.Write([]byte(root.UsageString()))
	}
	return err
}

// changedFlags records which flags were set on the command line, so they
// override configuration file values and nothing else does.
func changedFlags(fs *pflag.FlagSet) map[string]bool {
	changed := map[string]bool{}
	fs.Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	return changed
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
