package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/symisland/pkg/buildinfo"
	"github.com/matzehuels/symisland/pkg/cache"
)

// cacheFlags holds the persistent cache configuration shared by all
// commands.
type cacheFlags struct {
	backend   string
	dir       string
	redisAddr string
}

// Execute runs the symisland CLI with a background context.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the symisland CLI and returns an error if any command
// fails.
func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd builds the command tree: pack, anneal, render, serve, and
// cache, with logging configured from the --verbose flag and attached to the
// command context so library code shares the sink.
func newRootCmd() *cobra.Command {
	var (
		verbose bool
		cf      cacheFlags
	)

	root := &cobra.Command{
		Use:          "symisland",
		Short:        "symisland packs analog symmetry groups into symmetry islands",
		Long:         `symisland is a placement tool for analog layout: it packs a symmetry group of rectangular modules with an ASF-B*-tree, guaranteeing a mirror-symmetric, connected placement, and renders the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&cf.backend, "cache", "file", "layout cache backend: file, redis, or none")
	root.PersistentFlags().StringVar(&cf.dir, "cache-dir", "", "layout cache directory (default ~/.cache/symisland)")
	root.PersistentFlags().StringVar(&cf.redisAddr, "redis-addr", "localhost:6379", "redis address for --cache=redis")

	root.AddCommand(newPackCmd(&cf))
	root.AddCommand(newAnnealCmd(&cf))
	root.AddCommand(newRenderCmd(&cf))
	root.AddCommand(newServeCmd(&cf))
	root.AddCommand(newCacheCmd(&cf))

	return root
}

// cacheDir resolves the configured cache directory.
func (cf *cacheFlags) cacheDir() (string, error) {
	if cf.dir != "" {
		return cf.dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(base, "symisland"), nil
}

// open creates the configured cache backend.
func (cf *cacheFlags) open(ctx context.Context) (cache.Cache, error) {
	switch cf.backend {
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		dir, err := cf.cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cf.redisAddr})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cf.backend)
	}
}
