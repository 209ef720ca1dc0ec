package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/outlinegraph/pkg/graph"
	"github.com/matzehuels/outlinegraph/pkg/graph/transform"
	ogio "github.com/matzehuels/outlinegraph/pkg/io"
	"github.com/matzehuels/outlinegraph/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, p *graph.Parsed, stats transform.Stats, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	dot := nodelink.ToDOT(p, opts.NodelinkOptions())

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(ctx, format, dot, p, stats)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, format, dot string, p *graph.Parsed, stats transform.Stats) ([]byte, error) {
	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	case FormatDOT:
		return []byte(dot), nil
	case FormatJSON:
		return encode(p, stats, ogio.FormatJSON)
	case FormatYAML:
		return encode(p, stats, ogio.FormatYAML)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func encode(p *graph.Parsed, stats transform.Stats, f ogio.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := ogio.Write(ogio.FromParsed(p, &stats), f, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
