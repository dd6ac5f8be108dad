package csvload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	apperr "github.com/matzehuels/graphcsv/pkg/errors"
)

// Row is one data record of the input: the first two cells of a non-blank
// CSV record, untrimmed.
type Row struct {
	Source string
	Target string
	Line   int // 1-based line the record starts on
}

// Policy decides what happens to non-blank records with fewer than two columns.
type Policy int

const (
	// RejectShortRows fails the load with a PARSE error.
	RejectShortRows Policy = iota
	// SkipShortRows drops the record and logs a warning.
	SkipShortRows
)

// ParsePolicy converts a configuration value ("error" or "skip") to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "error":
		return RejectShortRows, nil
	case "skip":
		return SkipShortRows, nil
	default:
		return RejectShortRows, apperr.New(apperr.ErrCodeInvalidArgument, "invalid short-row policy: %s (must be 'error' or 'skip')", s)
	}
}

// String returns the configuration spelling of p.
func (p Policy) String() string {
	if p == SkipShortRows {
		return "skip"
	}
	return "error"
}

type options struct {
	logger *log.Logger
	short  Policy
}

// Option configures [Load] and [Read].
type Option func(*options)

// WithLogger routes per-record diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithShortRows sets the policy for records with fewer than two columns.
func WithShortRows(p Policy) Option {
	return func(o *options) { o.short = p }
}

func newOptions(opts []Option) options {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load opens the CSV file at path and returns its data rows.
// See [Read] for the parsing rules.
func Load(path string, opts ...Option) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, apperr.Wrap(apperr.ErrCodeFileAccess, err, "open %s", path)
	}
	defer f.Close()

	rows, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Read parses CSV from r, discards the header record, and returns one [Row]
// per remaining non-blank record in input order. Read does not close r.
func Read(r io.Reader, opts ...Option) ([]Row, error) {
	o := newOptions(opts)

	cr := csv.NewReader(r)
	cr.Comma = ','
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperr.New(apperr.ErrCodeParse, "empty input: missing header record")
	}
	if err != nil {
		return nil, readError(err)
	}
	o.logger.Debug("Discarded header", "cells", header)

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(err)
		}
		line, _ := cr.FieldPos(0)

		if blank(record) {
			o.logger.Debug("Skipped blank record", "line", line)
			continue
		}
		if len(record) < 2 {
			if o.short == SkipShortRows {
				o.logger.Warn("Skipped short record", "line", line, "columns", len(record))
				continue
			}
			return nil, apperr.New(apperr.ErrCodeParse, "record on line %d has %d column, want at least 2", line, len(record))
		}

		row := Row{Source: record[0], Target: record[1], Line: line}
		o.logger.Debug("Read record", "line", line, "source", row.Source, "target", row.Target)
		rows = append(rows, row)
	}

	o.logger.Debugf("Read %d data rows", len(rows))
	return rows, nil
}

// blank reports whether every cell of record is empty.
func blank(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}

func readError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return apperr.Wrap(apperr.ErrCodeParse, pe.Err, "malformed CSV on line %d, column %d", pe.Line, pe.Column)
	}
	return apperr.Wrap(apperr.ErrCodeFileAccess, err, "read")
}
