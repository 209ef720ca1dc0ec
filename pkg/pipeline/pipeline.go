// Package pipeline provides the compile → render pipeline for outlinegraph.
//
// The CLI, the HTTP server and the TUI all go through a [Runner] so that
// caching, logging and instrumentation behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Compile: parse the document, build the graph, prune folded and hidden
//     lines, and synthesize hierarchy and flow edges
//  2. Render: generate output in the requested formats (SVG, PNG, PDF, DOT,
//     JSON, YAML); formats are rendered concurrently
//
// Both stages are cached. The compiled graph is keyed by the document
// fingerprint and compile options; each artifact by the graph key and its
// render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, _ := document.Load("plan.outline")
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	    Fold:    []string{"id_c2"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/outlinegraph/pkg/cache"
	apperrors "github.com/matzehuels/outlinegraph/pkg/errors"
	"github.com/matzehuels/outlinegraph/pkg/graph"
	"github.com/matzehuels/outlinegraph/pkg/graph/transform"
	"github.com/matzehuels/outlinegraph/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Server, and TUI
// =============================================================================

const (
	// DefaultGraphTTL is how long a compiled graph stays cached.
	DefaultGraphTTL = 7 * 24 * time.Hour

	// DefaultArtifactTTL is how long a rendered artifact stays cached.
	DefaultArtifactTTL = 24 * time.Hour

	// DefaultRankDir is the default Graphviz layout direction.
	DefaultRankDir = "TB"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
	FormatYAML: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatDOT:  "text/vnd.graphviz",
	FormatJSON: "application/json",
	FormatYAML: "application/yaml",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Compile options
	StrictIDs bool     `json:"strict_ids,omitempty"`
	NoPrune   bool     `json:"no_prune,omitempty"`
	Fold      []string `json:"fold,omitempty"`
	Hide      []string `json:"hide,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	RankDir  string   `json:"rankdir,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger      *log.Logger   `json:"-"`
	GraphTTL    time.Duration `json:"-"`
	ArtifactTTL time.Duration `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the compiled graph.
	Graph *graph.Parsed

	// GraphKey is the cache key of the compiled graph. It changes whenever
	// the document or the compile options change.
	GraphKey string

	// Stats summarizes the compilation.
	Stats transform.Stats

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Timing contains stage durations.
	Timing Timing

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Timing contains pipeline stage durations.
type Timing struct {
	CompileTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	CompileHit bool // Whether the compiled graph came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: svg, png, pdf, dot, json, yaml)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRankDir checks that a layout direction is valid.
func ValidateRankDir(dir string) error {
	if !nodelink.ValidRankDir(dir) {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"invalid rankdir: %q (must be one of: TB, LR, BT, RL)", dir)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetCompileDefaults sets default values for compilation.
func (o *Options) SetCompileDefaults() {
	if o.GraphTTL == 0 {
		o.GraphTTL = DefaultGraphTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.RankDir == "" {
		o.RankDir = DefaultRankDir
	}
	if o.ArtifactTTL == 0 {
		o.ArtifactTTL = DefaultArtifactTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateRankDir(o.RankDir)
}

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetCompileDefaults()
	if err := o.ValidateForRender(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// CompileOptions returns the options passed to [transform.Compile].
func (o *Options) CompileOptions() transform.CompileOptions {
	return transform.CompileOptions{
		StrictIDs: o.StrictIDs,
		NoPrune:   o.NoPrune,
		Fold:      o.Fold,
		Hide:      o.Hide,
	}
}

// GraphKeyOpts returns cache key options for a compiled graph.
func (o *Options) GraphKeyOpts(indentWidth int) cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		IndentWidth: indentWidth,
		StrictIDs:   o.StrictIDs,
		NoPrune:     o.NoPrune,
		Fold:        o.Fold,
		Hide:        o.Hide,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		RankDir:  o.RankDir,
		Detailed: o.Detailed,
	}
}

// NodelinkOptions returns the DOT conversion options.
func (o *Options) NodelinkOptions() nodelink.Options {
	return nodelink.Options{Detailed: o.Detailed, RankDir: o.RankDir}
}
