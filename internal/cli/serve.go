package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepgraph/pkg/api"
	"github.com/matzehuels/stepgraph/pkg/cache"
	"github.com/matzehuels/stepgraph/pkg/observability"
	"github.com/matzehuels/stepgraph/pkg/pipeline"
)

// cacheScope prefixes the server's cache keys so deployments can share Redis.
const cacheScope = "stepgraph:"

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noUploads bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Storage, cache and extraction service come from the config file. Metrics
are served in Prometheus format on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			cc, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, cacheScope), c.Logger)
			defer runner.Close()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			opts := api.Options{Runner: runner, Store: st, Logger: c.Logger}
			if !noMetrics {
				hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
				defer observability.Reset()
				opts.Metrics = promhttp.Handler()
			}
			if !noUploads {
				client, err := c.newIngestClient("")
				if err != nil {
					return err
				}
				c.checkIngest(ctx, client.Health, client.BaseURL())
				opts.Extractor = client
			}

			printSuccess("Serving on %s", addr)
			printDetail("store: %s · cache: %s", cfg.Store.Backend, cfg.Cache.Backend)
			return api.New(opts).ListenAndServe(ctx, addr, api.Timeouts{
				Read:     cfg.Server.ReadTimeout,
				Write:    cfg.Server.WriteTimeout,
				Shutdown: cfg.Server.ShutdownTimeout,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides the config)")
	cmd.Flags().BoolVar(&noUploads, "no-uploads", false, "disable PDF uploads")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable /metrics")

	return cmd
}

// checkIngest warns when the extraction service does not answer. Uploads
// stay enabled, since the service may come up later.
func (c *CLI) checkIngest(ctx context.Context, health func(context.Context) error, url string) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := health(ctx); err != nil {
		c.Logger.Warn("extraction service unreachable", "url", url, "err", err)
		return
	}
	c.Logger.Debug("extraction service ready", "url", url)
}
