package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/memo"
	"github.com/aretw0/memo/internal/platform"
	"github.com/aretw0/memo/internal/tui"
	"github.com/aretw0/memo/pkg/core"
)

var (
	verbose    bool
	dataDir    string
	adapter    string
	configPath string
	ephemeral  bool

	cfg       platform.Config
	logCloser io.Closer
)

// rootCmd runs the interactive widget when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "memo",
	Short: "A small note-taking widget for the terminal",
	Long: `Memo keeps short title/content notes in a local data directory.
Run it without arguments for the interactive widget, or use the
subcommands to script it.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		wd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		located, defaultData, err := platform.Locate(wd)
		if err != nil {
			fatal("Failed to locate configuration", err)
		}
		if configPath == "" {
			configPath = located
		}

		cfg, err = platform.LoadConfig(configPath)
		if err != nil {
			fatal("Failed to load configuration", err)
		}

		if dataDir == "" {
			dataDir = cfg.DataDir
		}
		if dataDir == "" {
			dataDir = defaultData
		}
		if adapter == "" {
			adapter = cfg.Adapter
		}
		if ephemeral {
			adapter = platform.AdapterMemory
		}

		level := platform.ParseLevel(cfg.Log.Level)
		if verbose {
			level = slog.LevelDebug
		}

		// The widget owns the screen; it only logs to file.
		var console io.Writer = os.Stderr
		logFile := cfg.Log.File
		if cmd == rootCmd {
			console = nil
			if logFile == "" {
				logFile = filepath.Join(dataDir, "memo.log")
			}
		}

		logger, closer, err := platform.NewLogger(level, console, logFile)
		if err != nil {
			fatal("Failed to set up logging", err)
		}
		logCloser = closer
		slog.SetDefault(logger)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		ctrl := open()
		defer memo.Close(ctrl)

		opts := []tui.Option{tui.WithLogger(slog.Default())}
		if w, ok := ctrl.Repository().Store().KV().(core.Watchable); ok {
			events, err := w.Watch(ctx)
			if err != nil {
				slog.Warn("change watching disabled", "error", err)
			} else {
				opts = append(opts, tui.WithEvents(events))
			}
		}

		if err := tui.Run(ctx, ctrl, opts...); err != nil {
			fatal("Widget failed", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Directory holding the notes (default: .memo of the project or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep notes in memory only")
}

// open loads the notes with the resolved configuration.
func open() *memo.Controller {
	ctrl, err := memo.New(dataDir,
		memo.WithAdapter(adapter),
		memo.WithDevSafety(cfg.DevSafety),
		memo.WithLogger(slog.Default()),
		memo.WithWatcherErrorHandler(func(err error) {
			slog.Error("watcher failed", "error", err)
		}),
	)
	if err != nil {
		fatal("Failed to open notes", err)
	}
	return ctrl
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fatal("Invalid note id", err)
	}
	return id
}
