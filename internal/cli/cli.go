// Package cli implements the stepgraph command-line interface.
//
// Commands build diagrams from line lists, store documents extracted from
// PDFs, export diagrams to files, browse them in the terminal and serve
// the HTTP API. Settings come from the TOML file named by --config (see
// package config), and --verbose switches logging to debug level.
//
//	stepgraph ingest report.pdf --mode flowchart
//	stepgraph render --format svg,mermaid -o out/report
//	stepgraph serve
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepgraph/pkg/buildinfo"
	"github.com/matzehuels/stepgraph/pkg/cache"
	"github.com/matzehuels/stepgraph/pkg/config"
	"github.com/matzehuels/stepgraph/pkg/pipeline"
	"github.com/matzehuels/stepgraph/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "stepgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Stepgraph turns documents into flowcharts and mind maps",
		Long:         `Stepgraph turns ordered lines of text, usually extracted from a PDF, into positioned and styled flowcharts, mind maps and trees, and exports them as JSON, DOT, SVG, PNG or Mermaid.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/stepgraph/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.ingestCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.dataCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "store", cfg.Store.Backend, "cache", cfg.Cache.Backend)
	return nil
}

// config returns the loaded settings, or the defaults when a command runs
// without the root pre-run.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner & Store Factories
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config().Cache
	if noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == config.CacheRedis {
		return cache.NewRedisCache(ctx, cfg.RedisAddr)
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, c.config().StoreConfig())
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if dir := c.config().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/stepgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// newOptions returns pipeline options carrying the configured geometry.
func (c *CLI) newOptions(mode string, refresh bool) pipeline.Options {
	g := c.config().Geometry
	return pipeline.Options{
		Mode:     mode,
		Geometry: &g,
		Refresh:  refresh,
		Logger:   c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
