package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/internal/server"
	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// redisKeyPrefix namespaces every key a server writes to a shared Redis.
const redisKeyPrefix = appName + ":v1:"

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		redisURL     string
		maxBodyBytes int64
		cacheEntries int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cloud pipeline over HTTP",
		Long: `Serve the cloud pipeline over HTTP.

  POST /v1/clouds                    JSON body with "text" and render options
  GET  /v1/artifacts/{id}.{format}   rendered image or layout
  GET  /healthz                      liveness probe

Request fields left empty take their values from the config file. Layouts and
artifacts are cached in memory, or in Redis with --redis so several instances
can share them.`,
		Example: `  tagcloud serve --addr :8080
  tagcloud serve --redis redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("addr") || cfg.Server.Addr == "" {
				cfg.Server.Addr = addr
			}
			if fs.Changed("redis") {
				cfg.Server.Redis = redisURL
			}
			if fs.Changed("max-body") || cfg.Server.MaxBodyBytes <= 0 {
				cfg.Server.MaxBodyBytes = maxBodyBytes
			}
			return c.runServe(cmd.Context(), cfg, cacheEntries)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for a shared cache (default: in-memory)")
	cmd.Flags().Int64Var(&maxBodyBytes, "max-body", server.DefaultMaxBodyBytes, "request body limit in bytes")
	cmd.Flags().IntVar(&cacheEntries, "cache-entries", cache.DefaultMemoryEntries, "in-memory cache size when Redis is not used")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config, cacheEntries int) error {
	store, keyer, backend, err := c.newServerCache(ctx, cfg.Server.Redis, cacheEntries)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	defaults := pipeline.FromConfig(cfg)
	if _, err := defaults.FontMeasurer(); err != nil {
		return err
	}

	prefix := ""
	if cfg.Server.Redis != "" {
		prefix = redisKeyPrefix
	}
	srv := server.New(server.Config{
		Runner:       runner,
		Defaults:     defaults,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		KeyPrefix:    prefix,
		Logger:       c.Logger,
	})

	printSuccess("Serving tag clouds")
	printKeyValue("Address", StyleLink.Render(displayURL(cfg.Server.Addr)))
	printKeyValue("Cache", backend)
	printNewline()

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

// newServerCache connects to Redis when a URL is given and otherwise uses a
// process-local cache.
func (c *CLI) newServerCache(ctx context.Context, redisURL string, entries int) (cache.Cache, cache.Keyer, string, error) {
	if redisURL == "" {
		return cache.NewMemoryCache(entries), cache.NewDefaultKeyer(), fmt.Sprintf("memory (%d entries)", entries), nil
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: redisURL})
	if err != nil {
		return nil, nil, "", fmt.Errorf("connect to redis: %w", err)
	}
	c.Logger.Debug("connected to redis")
	return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix), "redis", nil
}

// displayURL turns a listen address into a clickable URL.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
