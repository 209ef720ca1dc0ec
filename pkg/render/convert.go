package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	apperrors "github.com/matzehuels/outlinegraph/pkg/errors"
)

// ConverterBinary is the external tool used for SVG conversion.
const ConverterBinary = "rsvg-convert"

// ErrNoConverter is returned when [ConverterBinary] is not on PATH.
var ErrNoConverter = errors.New(ConverterBinary + " not found (install librsvg: brew install librsvg, apt install librsvg2-bin)")

// ToPDF converts an SVG document to PDF. The conversion is aborted when ctx
// is cancelled.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	bin, err := exec.LookPath(ConverterBinary)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnsupported, ErrNoConverter, "pdf export")
	}

	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-f", "pdf")
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w: %s", ConverterBinary, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
