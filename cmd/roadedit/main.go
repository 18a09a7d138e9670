// Command roadedit is a terminal viewer for road graphs.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ha1tch/roadview/pkg/config"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/viewer"
)

var version = "0.3.0"

func main() {
	var (
		configPath string
		logFile    string
	)
	root := &cobra.Command{
		Use:           "roadedit <graph.json>...",
		Short:         "Browse road graphs in the terminal",
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := openLog(logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			if configPath == "" {
				configPath = config.DefaultPath()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			g, err := roadgraph.Load(cmd.Context(), args...)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing screen: %w", err)
			}
			defer screen.Fini()
			screen.EnableMouse()
			screen.Clear()

			ed, err := NewEditor(cmd.Context(), screen, g, cfg, viewer.SystemBrowser{}, logger)
			if err != nil {
				return err
			}
			ed.run()
			return nil
		},
	}
	root.SetVersionTemplate("roadedit {{ .Version }}\n")
	root.Flags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.Flags().StringVar(&logFile, "log-file", "", "write debug logs to this file")

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "roadedit: %v\n", err)
		os.Exit(1)
	}
}

// openLog returns a logger writing to path, or discarding when path is empty.
// Logs never go to stderr while the screen is up.
func openLog(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}
