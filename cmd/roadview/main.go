// Command roadview renders, queries and inspects road graphs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/roadview/pkg/config"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/viewer"
)

var version = "0.3.0"

var (
	configPath string
	logLevel   string
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "roadview",
	Short: "roadview - road network viewer",
	Long: Brand.Sprint("roadview") + " - render and query road graphs\n" +
		Subtle.Sprint("Graphs are JSON files; several files are merged into one composite graph"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("bad --log-level %q", logLevel)
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("roadview {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		renderCmd(),
		queryCmd(),
		infoCmd(),
		configCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		Bad.Fprintf(os.Stderr, "roadview: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func loadGraph(ctx context.Context, paths []string) (roadgraph.Graph, error) {
	g, err := roadgraph.Load(ctx, paths...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", strings.Join(paths, ", "), err)
	}
	logger.Info("graph loaded", "name", g.Name(), "edges", g.EdgeCount(), "composite", g.IsComposite())
	return g, nil
}

// openLayer loads the config and graphs and builds a layer over them.
func openLayer(ctx context.Context, paths []string) (*viewer.Layer, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	g, err := loadGraph(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	l, err := viewer.Open(g, cfg, viewer.SystemBrowser{}, nil, version, logger)
	if err != nil {
		return nil, nil, err
	}
	return l, cfg, nil
}
