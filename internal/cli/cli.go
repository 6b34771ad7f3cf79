// Package cli implements the tubemap command-line interface.
//
// # Commands
//
//   - layout: compute a layout.json from a graph input (JSON, YAML or TOML)
//   - render: compute and render SVG, PNG, PDF or JSON in one step
//   - visualize: render a previously computed layout.json
//   - tracks: list the tracks of an input, or pick a pivot interactively
//   - serve: run the HTTP API
//   - cache: manage the artifact cache
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tubemap/pkg/buildinfo"
	"github.com/matzehuels/tubemap/pkg/cache"
	"github.com/matzehuels/tubemap/pkg/config"
	"github.com/matzehuels/tubemap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tubemap"

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
	Config config.Config

	configPath string
	envFile    string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Tubemap draws sequence graphs as subway maps",
		Long: `Tubemap lays out variation graphs as tube maps: every haplotype or read is a
coloured line travelling left to right through the sequence nodes it visits.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml or .hcl)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "load environment variables from this file (default: .env)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.tracksCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the .env file, the config file and TUBEMAP_* variables.
func (c *CLI) loadConfig() error {
	var envFiles []string
	if c.envFile != "" {
		envFiles = append(envFiles, c.envFile)
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "file", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.Cache.RedisURL, appName+":")
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/tubemap/).
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

// baseOptions returns pipeline options seeded from the configuration.
// Command flags are applied on top.
func (c *CLI) baseOptions() pipeline.Options {
	cfg := c.Config
	return pipeline.Options{
		Merge:     cfg.Layout.Merge,
		WidthMode: cfg.Layout.WidthMode,
		Pivot:     cfg.Layout.Pivot,
		Formats:   cfg.Render.Formats,
		Scale:     cfg.Render.Scale,
		Labels:    cfg.Render.Labels,
		Palette:   cfg.Render.Palette,
		Logger:    c.Logger,
	}
}

// layoutFlags are the layout flags shared by several commands.
type layoutFlags struct {
	merge     bool
	widthMode string
	pivot     string
	vizType   string
	detailed  bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.merge, "merge", false, "merge chains of nodes traversed identically by all tracks")
	cmd.Flags().StringVar(&f.widthMode, "width-mode", "", "node width scaling: linear, log2 (default), log10")
	cmd.Flags().StringVar(&f.pivot, "pivot", "", "track to use as the reference (drawn first, forward)")
	cmd.Flags().StringVarP(&f.vizType, "type", "t", "", "visualization type: tubemap (default), nodelink")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show lengths and track names (nodelink)")
}

// apply copies flags the user set onto opts.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if cmd.Flags().Changed("merge") {
		opts.Merge = f.merge
	}
	if f.widthMode != "" {
		opts.WidthMode = f.widthMode
	}
	if f.pivot != "" {
		opts.Pivot = f.pivot
	}
	if f.vizType != "" {
		opts.VizType = f.vizType
	}
	opts.Detailed = f.detailed
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string keeps the configured formats.
func parseFormats(s string, fallback []string) []string {
	if s == "" {
		if len(fallback) == 0 {
			return []string{pipeline.FormatSVG}
		}
		return fallback
	}
	return pipeline.ParseFormats(s)
}
