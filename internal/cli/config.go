package cli

import (
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/writeme/pkg/cache"
	"github.com/matzehuels/writeme/pkg/errors"
	"github.com/matzehuels/writeme/pkg/integrations"
)

// Environment variables read by loadConfig.
const (
	envGitHubToken = "WRITEME_GITHUB_TOKEN"
	envGitHubAlt   = "GITHUB_TOKEN"
	envGitHubAPI   = "WRITEME_GITHUB_API_URL"
	envCache       = "WRITEME_CACHE"
	envRedisAddr   = "WRITEME_REDIS_ADDR"
	envCacheTTL    = "WRITEME_CACHE_TTL"
	envRegistry    = "WRITEME_REGISTRY"
)

// Config is the runtime configuration shared by commands. Values come from
// the environment (optionally seeded by a .env file) and are overridden by
// flags.
type Config struct {
	GitHubToken string
	GitHubAPI   string // API root; empty means api.github.com
	Cache       cache.Backend
	RedisAddr   string
	CacheTTL    time.Duration
	Registry    string // directory holding configs.yaml and techs.yaml
	Offline     bool
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "load %s", path)
	}
	return nil
}

// loadConfig reads configuration from lookup, usually os.LookupEnv.
func loadConfig(lookup func(string) (string, bool)) (Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := Config{
		GitHubToken: get(envGitHubToken),
		GitHubAPI:   get(envGitHubAPI),
		Cache:       cache.Backend(get(envCache)),
		RedisAddr:   get(envRedisAddr),
		CacheTTL:    integrations.DefaultCacheTTL,
		Registry:    get(envRegistry),
	}
	if cfg.GitHubToken == "" {
		cfg.GitHubToken = get(envGitHubAlt)
	}
	if cfg.Cache == "" {
		cfg.Cache = cache.BackendFile
	}
	if ttl := get(envCacheTTL); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d < 0 {
			return cfg, errors.New(errors.ErrCodeInvalidInput, "%s: invalid duration %q", envCacheTTL, ttl)
		}
		cfg.CacheTTL = d
	}
	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	if !slices.Contains(cache.Backends, cfg.Cache) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, memory, redis or none)", cfg.Cache)
	}
	if cfg.Cache == cache.BackendRedis && cfg.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "redis cache needs %s", envRedisAddr)
	}
	if cfg.GitHubAPI != "" {
		if err := errors.ValidateURL(cfg.GitHubAPI); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", envGitHubAPI)
		}
	}
	return nil
}

// configFlags holds the flag values that override Config.
type configFlags struct {
	cache    string
	registry string
	offline  bool
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.cache, "cache", "", "HTTP cache backend: file, memory, redis or none (env "+envCache+")")
	cmd.Flags().StringVar(&f.registry, "registry", "", "directory with custom configs.yaml and techs.yaml (env "+envRegistry+")")
	cmd.Flags().BoolVar(&f.offline, "offline", false, "skip GitHub enrichment")
}

// resolve loads the environment configuration and applies changed flags.
func (f *configFlags) resolve(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(os.LookupEnv)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("cache") {
		cfg.Cache = cache.Backend(f.cache)
	}
	if cmd.Flags().Changed("registry") {
		cfg.Registry = f.registry
	}
	if f.offline {
		cfg.Offline = true
	}
	return cfg, cfg.validate()
}
