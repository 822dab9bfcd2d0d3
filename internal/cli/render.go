package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/symisland/pkg/pipeline"
)

func newRenderCmd(cf *cacheFlags) *cobra.Command {
	var (
		formats  []string
		outDir   string
		scale    int
		doAnneal bool
		steps    int
		seed     uint64
	)

	cmd := &cobra.Command{
		Use:   "render <design.toml>",
		Short: "Render a packed design as SVG, JSON, DOT, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			c, err := cf.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			runner := pipeline.NewRunner(c, nil, logger)

			spin := newSpinnerWithContext(ctx, "rendering "+filepath.Base(args[0]))
			spin.Start()
			res, err := runner.Execute(ctx, pipeline.Options{
				DesignPath: args[0],
				Formats:    formats,
				Scale:      scale,
				Anneal:     doAnneal,
				Steps:      steps,
				Seed:       seed,
			})
			spin.Stop()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			for format, data := range res.Artifacts {
				path := filepath.Join(outDir, base+"."+format)
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				logger.Info("wrote artifact", "format", format, "path", path, "bytes", len(data))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&formats, "format", "f", []string{pipeline.FormatSVG},
		"output formats: svg, json, dot, png")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().IntVar(&scale, "scale", pipeline.DefaultScale, "SVG pixels per unit")
	cmd.Flags().BoolVar(&doAnneal, "anneal", false, "anneal before rendering")
	cmd.Flags().IntVar(&steps, "steps", pipeline.DefaultSteps, "annealing steps")
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "annealing seed")
	return cmd
}
