package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/symisland/pkg/pipeline"
)

func newPackCmd(cf *cacheFlags) *cobra.Command {
	var (
		out     string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "pack <design.toml>",
		Short: "Pack a symmetry-group design and report the placement",
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
			p := newProgress(logger)

			res, err := runner.Execute(ctx, pipeline.Options{
				DesignPath: args[0],
				Formats:    []string{pipeline.FormatJSON},
				NoCache:    noCache,
			})
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("packed %s", res.Design.Name))

			printLayoutSummary(cmd, res)

			if out != "" {
				if err := os.WriteFile(out, res.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
					return fmt.Errorf("write layout: %w", err)
				}
				logger.Info("wrote layout", "path", out)
			}
			if !res.Layout.Valid {
				return fmt.Errorf("placement failed symmetry validation")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the layout JSON to a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the layout cache")
	return cmd
}

// printLayoutSummary prints the packed layout in a compact styled block.
func printLayoutSummary(cmd *cobra.Command, res *pipeline.Result) {
	l := res.Layout
	var b strings.Builder

	b.WriteString(styleTitle.Render(res.Design.Name))
	b.WriteString("  ")
	b.WriteString(validBadge(l.Valid))
	if res.LayoutCacheHit {
		b.WriteString("  ")
		b.WriteString(styleDim.Render("(cached)"))
	}
	b.WriteString("\n")

	b.WriteString(kv("symmetry", l.Symmetry) + "\n")
	b.WriteString(kv("axis", styleNumber.Render(fmt.Sprintf("%.1f", l.Axis))) + "\n")
	b.WriteString(kv("bounding box", fmt.Sprintf("%d × %d", l.Width, l.Height)) + "\n")
	b.WriteString(kv("modules", fmt.Sprintf("%d", len(l.Blocks))) + "\n")

	for _, block := range l.Blocks {
		pos := fmt.Sprintf("(%d, %d) %d×%d", block.X, block.Y, block.Width, block.Height)
		if block.Rotated {
			pos += " rotated"
		}
		b.WriteString(fmt.Sprintf("    %s %s %s\n",
			styleValue.Render(fmt.Sprintf("%-10s", block.ID)),
			styleDim.Render(fmt.Sprintf("%-16s", string(block.Role))),
			pos))
	}

	fmt.Fprint(cmd.OutOrStdout(), b.String())
}
