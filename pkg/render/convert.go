package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	apperr "github.com/matzehuels/graphcsv/pkg/errors"
)

// rsvgConvertBin is the rasterizer executable, looked up on PATH.
var rsvgConvertBin = "rsvg-convert"

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// Available reports whether rsvg-convert can be found on PATH.
func Available() bool {
	_, err := exec.LookPath(rsvgConvertBin)
	return err == nil
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !Available() {
		return nil, apperr.New(apperr.ErrCodeRender, "%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, rsvgConvertBin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeRender, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
