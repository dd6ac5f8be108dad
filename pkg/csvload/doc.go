// Package csvload reads source/target pairs from a CSV file.
//
// # Format
//
// The input is comma-delimited with optional double-quote quoting. The first
// record is a header and is always discarded, whatever it contains. Every
// following record contributes its first two columns as a [Row]:
//
//	source,target
//	Arthur,Lancelot
//	"Guinevere, Queen",Arthur
//
// Records whose cells are all empty are skipped. Columns beyond the second are
// ignored.
//
// # Short Records
//
// A non-blank record with a single column cannot name an edge. By default it
// fails the load with a PARSE error that names the line; [WithShortRows] with
// [SkipShortRows] drops it with a warning instead.
//
// # Errors
//
// Errors carry codes from [github.com/matzehuels/graphcsv/pkg/errors]:
//
//   - FILE_NOT_FOUND: the path does not exist
//   - FILE_ACCESS: the file exists but cannot be opened or read
//   - PARSE: malformed quoting, missing header, or a short record
//
// Cells are returned exactly as read. Trimming belongs to the graph builder.
package csvload
