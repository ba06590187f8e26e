package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rhlunch/rhlunch/pkg/classify"
	"github.com/rhlunch/rhlunch/pkg/menu"
	"github.com/rhlunch/rhlunch/pkg/parse"
	"github.com/rhlunch/rhlunch/pkg/scrape"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile        string
	restaurantFlag string
	vegetarianOnly bool
	fishOnly       bool
	meatOnly       bool
	wholeWeek      bool
	dateFlag       string
	noCache        bool
	debug          bool
)

var rootCmd = &cobra.Command{
	Use:   "lunch",
	Short: "Today's lunch menus from the nearby restaurants",
	Long: `lunch fetches the daily or weekly lunch menus from the configured
restaurants (the ISS Gourmedia feed and kvartersmenyn.se pages), tags every
dish as vegetarian, fish, or meat, and prints the result.

Examples:
  lunch                  today's menu from all restaurants
  lunch -r gourmedia     only Gourmedia
  lunch -v               only vegetarian dishes
  lunch -w               the whole week
  lunch --date 2025-11-04`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runMenu,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("lunch v1.0.0")
	},
}

var restaurantsCmd = &cobra.Command{
	Use:   "restaurants",
	Short: "List the known restaurants",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, r := range configuredRestaurants() {
			fmt.Printf("  %-12s %s (%s)\n", r.ID, r.Name, r.Kind)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.rhlunch/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "debug logging")

	rootCmd.Flags().StringVarP(&restaurantFlag, "restaurant", "r", "", "restaurant id to show (default: all)")
	rootCmd.Flags().BoolVarP(&vegetarianOnly, "vegetarian-only", "v", false, "show only vegetarian dishes")
	rootCmd.Flags().BoolVarP(&fishOnly, "fish-only", "f", false, "show only fish dishes")
	rootCmd.Flags().BoolVarP(&meatOnly, "meat-only", "m", false, "show only meat dishes")
	rootCmd.Flags().BoolVarP(&wholeWeek, "week", "w", false, "show the whole week")
	rootCmd.Flags().StringVar(&dateFlag, "date", "", "date to show, YYYY-MM-DD (default: today)")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the fetch cache")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(restaurantsCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".rhlunch"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("RHLUNCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && debug {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func runMenu(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	date := time.Now()
	if dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", dateFlag)
		}
		date = parsed
	}

	filter, err := buildFilter()
	if err != nil {
		return err
	}

	agg := buildAggregator(logger)
	if err := filter.Validate(agg); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	view := agg.BuildWeek(ctx, date)
	if wholeWeek {
		renderWeek(os.Stdout, agg, filter.ApplyWeek(view))
	} else {
		renderDay(os.Stdout, agg, filter.ApplyDay(menu.SelectDay(view, date)))
	}
	return nil
}

func buildFilter() (menu.Filter, error) {
	var f menu.Filter
	if restaurantFlag != "" {
		f.Restaurants = []menu.ID{menu.ID(restaurantFlag)}
	}
	switch {
	case vegetarianOnly && (fishOnly || meatOnly), fishOnly && meatOnly:
		return f, fmt.Errorf("choose at most one of --vegetarian-only, --fish-only, --meat-only")
	case vegetarianOnly:
		f.Category = menu.CategoryVegetarian
	case fishOnly:
		f.Category = menu.CategoryFish
	case meatOnly:
		f.Category = menu.CategoryMeat
	}
	return f, nil
}

func configuredRestaurants() []menu.Restaurant {
	var restaurants []menu.Restaurant
	if err := viper.UnmarshalKey("restaurants", &restaurants); err != nil || len(restaurants) == 0 {
		return menu.DefaultRestaurants()
	}
	return restaurants
}

func buildAggregator(logger *slog.Logger) *menu.Aggregator {
	cls := classify.New(loadTable(logger))
	client := scrape.NewClient(scrape.ClientConfig{
		Timeout: viper.GetDuration("http.timeout"),
	})

	var cache scrape.Cache
	if !noCache {
		cache = openCache(logger)
	}

	agg := menu.NewAggregator(logger)
	for _, r := range configuredRestaurants() {
		src, err := scrape.NewSource(client, cache, 2*time.Hour, r)
		if err != nil {
			logger.Warn("skipping restaurant", "restaurant", r.ID, "error", err)
			continue
		}
		agg.Register(r, src, parse.ForKind(r.Kind, cls))
	}
	return agg
}

func loadTable(logger *slog.Logger) *classify.Table {
	path := viper.GetString("keywords")
	if path == "" {
		return nil // embedded default
	}
	table, err := classify.LoadTable(path)
	if err != nil {
		logger.Warn("failed to load keyword table, using built-in", "path", path, "error", err)
		return nil
	}
	return table
}

func openCache(logger *slog.Logger) scrape.Cache {
	memory := scrape.NewMemoryCache(2*time.Hour, 10*time.Minute)

	dir := viper.GetString("cache_dir")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return memory
		}
		dir = filepath.Join(home, ".rhlunch")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Debug("cache dir unavailable, memory cache only", "dir", dir, "error", err)
		return memory
	}
	store, err := scrape.OpenStore(filepath.Join(dir, "menus.db"), 2*time.Hour)
	if err != nil {
		logger.Debug("cache store unavailable, memory cache only", "error", err)
		return memory
	}
	return scrape.NewLayeredCache(memory, store)
}
