package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// printStats prints graph statistics on a single line.
func printStats(w io.Writer, nodeCount, edgeCount int) {
	fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf("%d nodes", nodeCount))+
		styleDim.Render(" · ")+
		styleDim.Render(fmt.Sprintf("%d edges", edgeCount)))
}
