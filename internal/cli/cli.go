// Package cli implements the writeme command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/writeme/pkg/cache"
	"github.com/matzehuels/writeme/pkg/integrations/github"
	"github.com/matzehuels/writeme/pkg/pipeline"
	"github.com/matzehuels/writeme/pkg/registry"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "writeme"

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

	// Out receives user-facing output. In is read by interactive prompts.
	Out io.Writer
	In  io.Reader
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		In:     os.Stdin,
	}
}

// SetLogLevel updates the logger's level. Debug level also routes
// observability events into the log.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		installDebugHooks(c.Logger)
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The returned cleanup
// closes the cache.
func (c *CLI) newRunner(ctx context.Context, cfg Config) (*pipeline.Runner, func(), error) {
	reg, err := loadRegistry(cfg.Registry)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var gh *github.Client
	if !cfg.Offline {
		store, err := c.newCache(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = store.Close() }
		opts := []github.Option{
			github.WithToken(cfg.GitHubToken),
			github.WithCache(store, cfg.CacheTTL),
		}
		if cfg.GitHubAPI != "" {
			opts = append(opts, github.WithBaseURL(cfg.GitHubAPI))
		}
		gh = github.NewClient(opts...)
	}

	runner, err := pipeline.NewRunner(reg, gh, c.Logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return runner, cleanup, nil
}

// loadRegistry returns the bundled registry, or the one in dir when set.
func loadRegistry(dir string) (*registry.Registry, error) {
	if dir == "" {
		return registry.Default()
	}
	return registry.Load(os.DirFS(dir))
}

// newCache opens the configured backend. A file cache that cannot find a
// home directory degrades to no caching.
func (c *CLI) newCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	opts := cache.Config{
		Backend: cfg.Cache,
		Redis:   cache.RedisConfig{Addr: cfg.RedisAddr},
	}
	if opts.Backend == cache.BackendFile || opts.Backend == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			opts.Backend = cache.BackendNone
		}
		opts.Dir = dir
	}
	return cache.Open(ctx, opts)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/writeme/).
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
