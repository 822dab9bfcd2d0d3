// Package pipeline runs the symisland parse → pack → render pipeline.
//
// The pipeline is shared by the CLI and the preview server so both behave
// identically:
//
//  1. Parse: read and validate a TOML design file
//  2. Pack: build the ASF-B*-tree and pack it, optionally annealing
//  3. Render: produce layout JSON, floorplan SVG, and tree DOT/PNG
//
// Packed layouts are cached by design hash and pack options, so re-rendering
// an unchanged design skips the packing stage entirely.
package pipeline

import (
	"fmt"
	"slices"
	"time"

	"github.com/matzehuels/symisland/pkg/cache"
	"github.com/matzehuels/symisland/pkg/core/anneal"
)

// Defaults shared by the CLI and the server.
const (
	// DefaultSteps is the annealing step budget.
	DefaultSteps = 2000

	// DefaultSeed keeps annealing reproducible unless overridden.
	DefaultSeed = uint64(42)

	// DefaultScale is the SVG pixels-per-unit scale.
	DefaultScale = 10

	// DefaultCacheTTL bounds how long packed layouts are reused.
	DefaultCacheTTL = 24 * time.Hour
)

// Output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
)

// treeFormats are rendered from the B*-tree topology rather than the packed
// layout, so they cannot be served from the layout cache.
var treeFormats = []string{FormatDOT, FormatPNG}

// Options configures one pipeline execution.
type Options struct {
	// DesignPath is the TOML design file to process.
	DesignPath string

	// Anneal enables simulated annealing after the initial pack.
	Anneal bool
	// Steps is the annealing step budget.
	Steps int
	// Seed drives the annealing schedule.
	Seed uint64

	// Formats selects the artifacts to render.
	Formats []string
	// Scale is the SVG pixels-per-unit factor.
	Scale int

	// NoCache bypasses the layout cache for this run.
	NoCache bool
	// CacheTTL bounds the lifetime of the cached layout.
	CacheTTL time.Duration

	// AnnealProgress, if set, receives annealing updates. It does not
	// participate in cache keys.
	AnnealProgress func(anneal.Update)
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.DesignPath == "" {
		return fmt.Errorf("design path is required")
	}
	if o.Steps <= 0 {
		o.Steps = DefaultSteps
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		switch f {
		case FormatJSON, FormatSVG, FormatDOT, FormatPNG:
		default:
			return fmt.Errorf("unknown format %q", f)
		}
	}
	return nil
}

// needsTree reports whether any requested format requires the packed tree.
func (o *Options) needsTree() bool {
	for _, f := range o.Formats {
		if slices.Contains(treeFormats, f) {
			return true
		}
	}
	return false
}

// keyOpts maps the options onto the cache key components.
func (o *Options) keyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Anneal: o.Anneal,
		Seed:   o.Seed,
		Steps:  o.Steps,
	}
}
