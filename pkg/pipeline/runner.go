package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/symisland/pkg/cache"
	"github.com/matzehuels/symisland/pkg/core/anneal"
	"github.com/matzehuels/symisland/pkg/core/placement"
	"github.com/matzehuels/symisland/pkg/design"
	"github.com/matzehuels/symisland/pkg/render/floorplan"
)

// Runner executes the pipeline with caching. It is stateless apart from the
// cache and logger, so one runner can serve many requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the default keyer, and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Stats records per-stage timings.
type Stats struct {
	ParseTime  time.Duration
	PackTime   time.Duration
	RenderTime time.Duration
}

// Result is the outcome of one pipeline execution.
type Result struct {
	Design     *design.Design
	DesignHash string
	Layout     floorplan.Layout
	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte
	// Anneal is set when annealing ran.
	Anneal *anneal.Result
	// LayoutCacheHit reports whether packing was skipped.
	LayoutCacheHit bool
	Stats          Stats
}

// Execute runs parse → pack → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: parse.
	parseStart := time.Now()
	raw, err := os.ReadFile(opts.DesignPath)
	if err != nil {
		return nil, fmt.Errorf("read design: %w", err)
	}
	d, err := design.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Design = d
	result.DesignHash = cache.Hash(raw)
	result.Stats.ParseTime = time.Since(parseStart)

	r.Logger.Info("parsed design",
		"name", d.Name,
		"modules", len(d.Modules),
		"pairs", len(d.Symmetry.Pairs),
		"selfSymmetric", len(d.Symmetry.SelfSymmetric))

	// Stage 2: pack, consulting the layout cache. Tree-derived formats need
	// the packed tree, so they force a real pack.
	packStart := time.Now()
	layoutKey := r.Keyer.LayoutKey(result.DesignHash, opts.keyOpts())
	useCache := !opts.NoCache && !opts.needsTree()

	var tree *placement.Tree
	if useCache {
		if data, ok, err := r.Cache.Get(ctx, layoutKey); err == nil && ok {
			if l, err := floorplan.UnmarshalLayout(data); err == nil {
				result.Layout = l
				result.LayoutCacheHit = true
			}
		}
	}

	if !result.LayoutCacheHit {
		tree, err = r.pack(d, opts, result)
		if err != nil {
			return nil, fmt.Errorf("pack: %w", err)
		}
		if data, err := floorplan.MarshalLayout(result.Layout); err == nil && !opts.NoCache {
			if err := r.Cache.Set(ctx, layoutKey, data, opts.CacheTTL); err != nil {
				r.Logger.Warn("layout cache write failed", "err", err)
			}
		}
	}
	result.Stats.PackTime = time.Since(packStart)

	r.Logger.Info("packed design",
		"axis", result.Layout.Axis,
		"valid", result.Layout.Valid,
		"cached", result.LayoutCacheHit,
		"duration", result.Stats.PackTime)

	// Stage 3: render.
	renderStart := time.Now()
	if err := r.render(tree, opts, result); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	return result, nil
}

// pack builds the tree, packs it, optionally anneals, and captures the
// layout.
func (r *Runner) pack(d *design.Design, opts Options, result *Result) (*placement.Tree, error) {
	registry := d.Registry()
	group := d.Group()
	tree := placement.New(registry, group, placement.WithLogger(r.Logger))

	if err := tree.BuildInitialTree(); err != nil {
		return nil, err
	}

	valid := tree.Pack()
	if opts.Anneal {
		if !valid {
			return nil, anneal.ErrInvalidStart
		}
		res, err := anneal.Run(tree, anneal.Options{
			Steps:    opts.Steps,
			Seed:     opts.Seed,
			Logger:   r.Logger,
			Progress: opts.AnnealProgress,
		})
		if err != nil {
			return nil, err
		}
		result.Anneal = res
	}

	if !tree.ValidateConnectivity() {
		r.Logger.Warn("placement is not a single island", "design", d.Name)
	}

	l, err := floorplan.FromPlacement(d.Name, registry, group, valid)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	return tree, nil
}

// render produces the requested artifacts.
func (r *Runner) render(tree *placement.Tree, opts Options, result *Result) error {
	var dot string
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := floorplan.MarshalLayout(result.Layout)
			if err != nil {
				return err
			}
			result.Artifacts[FormatJSON] = data

		case FormatSVG:
			result.Artifacts[FormatSVG] = floorplan.RenderSVG(result.Layout,
				floorplan.WithScale(opts.Scale))

		case FormatDOT, FormatPNG:
			if tree == nil {
				return fmt.Errorf("format %s requires a packed tree", format)
			}
			if dot == "" {
				dot = floorplan.ToDOT(tree.Root(), tree.Group())
			}
			if format == FormatDOT {
				result.Artifacts[FormatDOT] = []byte(dot)
			} else {
				png, err := floorplan.RenderTreePNG(dot)
				if err != nil {
					return err
				}
				result.Artifacts[FormatPNG] = png
			}
		}
	}
	return nil
}
