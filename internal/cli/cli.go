// Package cli implements the plotgrid command-line interface.
//
// This package provides commands for evaluating parcels against the zoning
// regulation table, inspecting the construction grid, listing zone
// regulations, and serving the evaluation API over HTTP. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - evaluate: Run the full regulate → inset → rasterize → solar pipeline
//   - grid: Rasterize a parcel and print cell statistics
//   - zones: List or show zone regulations
//   - serve: Run the HTTP evaluation API
//   - cache: Manage the geometry result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jinwoohan/plotgrid/pkg/buildinfo"
	"github.com/jinwoohan/plotgrid/pkg/cache"
	"github.com/jinwoohan/plotgrid/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "plotgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the built-in
// configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "plotgrid",
		Short:        "Plotgrid evaluates buildable geometry under Korean zoning law",
		Long:         `Plotgrid computes what can legally be built on a parcel: setback insets, the 0.6 m construction grid, solar-access stepping, and compliance checks against the zone regulation table.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/plotgrid/config.toml)")

	// Register all subcommands
	root.AddCommand(c.evaluateCommand())
	root.AddCommand(c.gridCommand())
	root.AddCommand(c.zonesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. The cache backend comes
// from the loaded configuration unless noCache forces it off.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return c.Config.OpenCache()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/plotgrid/).
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
