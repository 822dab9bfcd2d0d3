package cli

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/symisland/pkg/pipeline"
)

func newServeCmd(cf *cacheFlags) *cobra.Command {
	var (
		addr  string
		scale int
	)

	cmd := &cobra.Command{
		Use:   "serve <design.toml>",
		Short: "Serve a live preview of a packed design over HTTP",
		Long: `Serve packs the design on every request (through the layout cache) and
exposes it at:

  GET /healthz        liveness probe
  GET /layout.json    packed layout
  GET /floorplan.svg  rendered floorplan
  GET /tree.dot       B*-tree topology in Graphviz DOT

Edit the design file and reload the browser to see the new placement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			c, err := cf.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			runner := pipeline.NewRunner(c, nil, logger)
			designPath := args[0]

			execute := func(formats ...string) (*pipeline.Result, error) {
				return runner.Execute(ctx, pipeline.Options{
					DesignPath: designPath,
					Formats:    formats,
					Scale:      scale,
				})
			}

			r := chi.NewRouter()
			r.Use(middleware.RequestID)
			r.Use(middleware.Recoverer)

			r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprintln(w, "ok")
			})
			r.Get("/layout.json", artifactHandler(logger, execute, pipeline.FormatJSON, "application/json"))
			r.Get("/floorplan.svg", artifactHandler(logger, execute, pipeline.FormatSVG, "image/svg+xml"))
			r.Get("/tree.dot", artifactHandler(logger, execute, pipeline.FormatDOT, "text/vnd.graphviz"))

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-ctx.Done()
				srv.Close()
			}()

			logger.Info("serving design preview", "addr", addr, "design", designPath)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8173", "listen address")
	cmd.Flags().IntVar(&scale, "scale", pipeline.DefaultScale, "SVG pixels per unit")
	return cmd
}

type executeFunc func(formats ...string) (*pipeline.Result, error)

// artifactHandler serves one rendered artifact, re-packing on every request
// so design-file edits show up on reload.
func artifactHandler(logger *log.Logger, execute executeFunc, format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		res, err := execute(format)
		if err != nil {
			logger.Error("pipeline failed", "format", format, "err", err)
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(res.Artifacts[format])
	}
}
