package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rhlunch/rhlunch/pkg/api"
	"github.com/rhlunch/rhlunch/pkg/classify"
	"github.com/rhlunch/rhlunch/pkg/menu"
	"github.com/rhlunch/rhlunch/pkg/parse"
	"github.com/rhlunch/rhlunch/pkg/scrape"
	"gopkg.in/yaml.v3"
)

const version = "1.0.0"

type config struct {
	Addr        string            `yaml:"addr"`
	Keywords    string            `yaml:"keywords"`
	CacheDir    string            `yaml:"cache_dir"`
	CacheTTL    string            `yaml:"cache_ttl"` // e.g. "2h", "45m"
	Restaurants []menu.Restaurant `yaml:"restaurants"`

	cacheTTL time.Duration
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "version":
		fmt.Println("rhlunch-server v" + version)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: rhlunch-server <command>\n\nCommands:\n  serve   Start the HTTP API server\n  mcp     Serve MCP tools over stdio\n  version Print version\n")
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := loadConfig(*cfgPath, logger)

	agg, cls, cleanup := buildEngine(cfg, logger)
	defer cleanup()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(agg, cls, logger),
	}

	// SIGHUP: hot reload the keyword table.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			if cfg.Keywords == "" {
				logger.Info("SIGHUP received, but no keyword file configured")
				continue
			}
			logger.Info("SIGHUP received, reloading keyword table", "path", cfg.Keywords)
			if err := cls.Reload(cfg.Keywords); err != nil {
				logger.Error("reload failed, keeping previous table", "error", err)
			} else {
				logger.Info("keyword table reloaded")
			}
		}
	}()

	go func() {
		logger.Info("rhlunch listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	// Tool output goes to stdout; keep logs strictly on stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg := loadConfig(*cfgPath, logger)

	agg, cls, cleanup := buildEngine(cfg, logger)
	defer cleanup()

	srv := server.NewMCPServer("RHLunch", version)
	api.RegisterMCPTools(srv, agg, cls, logger)

	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

// buildEngine wires classifier, fetch layer, and aggregator from config.
func buildEngine(cfg config, logger *slog.Logger) (*menu.Aggregator, *classify.Classifier, func()) {
	var table *classify.Table
	if cfg.Keywords != "" {
		t, err := classify.LoadTable(cfg.Keywords)
		if err != nil {
			logger.Error("failed to load keyword table", "path", cfg.Keywords, "error", err)
			os.Exit(1)
		}
		table = t
	}
	cls := classify.New(table)

	client := scrape.NewClient(scrape.ClientConfig{})

	var cache scrape.Cache
	cleanup := func() {}
	memory := scrape.NewMemoryCache(cfg.cacheTTL, 10*time.Minute)
	if cfg.CacheDir != "" {
		if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
			logger.Error("failed to create cache dir", "dir", cfg.CacheDir, "error", err)
			os.Exit(1)
		}
		store, err := scrape.OpenStore(filepath.Join(cfg.CacheDir, "menus.db"), cfg.cacheTTL)
		if err != nil {
			logger.Error("failed to open cache store", "error", err)
			os.Exit(1)
		}
		cache = scrape.NewLayeredCache(memory, store)
		cleanup = func() { store.Close() }
	} else {
		cache = memory
	}

	agg := menu.NewAggregator(logger)
	for _, r := range cfg.Restaurants {
		src, err := scrape.NewSource(client, cache, cfg.cacheTTL, r)
		if err != nil {
			logger.Error("invalid restaurant config", "restaurant", r.ID, "error", err)
			os.Exit(1)
		}
		agg.Register(r, src, parse.ForKind(r.Kind, cls))
	}
	logger.Info("sources registered", "count", len(cfg.Restaurants))

	return agg, cls, cleanup
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:     ":8420",
		CacheDir: "cache",
		cacheTTL: 2 * time.Hour,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			cfg.Restaurants = menu.DefaultRestaurants()
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	if cfg.CacheTTL != "" {
		ttl, err := time.ParseDuration(cfg.CacheTTL)
		if err != nil {
			logger.Error("parse cache_ttl", "value", cfg.CacheTTL, "error", err)
			os.Exit(1)
		}
		cfg.cacheTTL = ttl
	}
	if len(cfg.Restaurants) == 0 {
		cfg.Restaurants = menu.DefaultRestaurants()
	}
	return cfg
}
