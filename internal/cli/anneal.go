package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/symisland/pkg/pipeline"
)

func newAnnealCmd(cf *cacheFlags) *cobra.Command {
	var (
		steps int
		seed  uint64
		out   string
		tui   bool
	)

	cmd := &cobra.Command{
		Use:   "anneal <design.toml>",
		Short: "Optimize a design's placement with simulated annealing",
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
			opts := pipeline.Options{
				DesignPath: args[0],
				Anneal:     true,
				Steps:      steps,
				Seed:       seed,
				Formats:    []string{pipeline.FormatJSON},
				// Annealing runs are the point of this command; never skip
				// them for a cached layout.
				NoCache: true,
			}

			var res *pipeline.Result
			if tui {
				res, err = runAnnealTUI(ctx, runner, opts)
			} else {
				spin := newSpinnerWithContext(ctx, fmt.Sprintf("annealing (%d steps)", steps))
				spin.Start()
				res, err = runner.Execute(ctx, opts)
				spin.Stop()
			}
			if err != nil {
				return err
			}

			printAnnealSummary(cmd, res)

			if out != "" {
				if err := os.WriteFile(out, res.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
					return fmt.Errorf("write layout: %w", err)
				}
				logger.Info("wrote layout", "path", out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", pipeline.DefaultSteps, "annealing steps")
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "random seed")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the layout JSON to a file")
	cmd.Flags().BoolVar(&tui, "tui", false, "show interactive progress")
	return cmd
}

func printAnnealSummary(cmd *cobra.Command, res *pipeline.Result) {
	a := res.Anneal
	var b strings.Builder

	b.WriteString(styleTitle.Render(res.Design.Name))
	b.WriteString("  ")
	b.WriteString(validBadge(res.Layout.Valid))
	b.WriteString("\n")
	b.WriteString(kv("run", styleDim.Render(a.RunID)) + "\n")
	b.WriteString(kv("steps", fmt.Sprintf("%d (%d accepted, %d rejected)", a.Steps, a.Accepted, a.Rejected)) + "\n")
	b.WriteString(kv("area", fmt.Sprintf("%s → %s",
		styleNumber.Render(fmt.Sprintf("%.0f", a.InitialCost)),
		styleNumber.Render(fmt.Sprintf("%.0f", a.BestCost)))) + "\n")
	b.WriteString(kv("cost μ/σ", fmt.Sprintf("%.1f / %.1f", a.MeanCost, a.StdDev)) + "\n")
	b.WriteString(kv("axis", fmt.Sprintf("%.1f", res.Layout.Axis)) + "\n")

	improvement := 0.0
	if a.InitialCost > 0 {
		improvement = 100 * (a.InitialCost - a.BestCost) / a.InitialCost
	}
	if improvement > 0 {
		b.WriteString(kv("improved", styleSuccess.Render(fmt.Sprintf("%.1f%%", improvement))) + "\n")
	} else {
		b.WriteString(kv("improved", styleWarning.Render("no improvement")) + "\n")
	}

	fmt.Fprint(cmd.OutOrStdout(), b.String())
}
