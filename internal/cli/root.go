// Package cli wires the kilikali command line: flags, configuration and
// logging set-up, and the terminal program itself.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kilikali/kilikali/internal/app"
	"github.com/kilikali/kilikali/internal/browser"
	"github.com/kilikali/kilikali/internal/command"
	"github.com/kilikali/kilikali/internal/config"
	"github.com/kilikali/kilikali/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"

// Options holds the global flags
type Options struct {
	ConfigPath string
	LogFile    string
	Debug      bool
}

// NewRootCommand builds the kilikali command tree
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:   "kilikali [path...]",
		Short: "Terminal playlist editor with a vim-like command line",
		Long: `kilikali manages a playlist from the terminal.

Paths given on the command line are added to the playlist at start-up,
exactly as if they were passed to :add.

Examples:
  kilikali                      # Open the saved playlist
  kilikali ~/Music/album        # Add a directory recursively
  kilikali 'songs/*.flac'       # Add files matching a glob`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", config.DefaultPath(), "configuration file")
	flags.StringVar(&opts.LogFile, "log-file", "", "log file (overrides the configuration)")
	flags.BoolVar(&opts.Debug, "debug", false, "log at debug level")

	root.AddCommand(newKeysCommand(opts))
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and opens the log file
func setup(opts *Options) (*config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, nil, err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}
	path := cfg.Log.File
	if opts.LogFile != "" {
		path = opts.LogFile
	}

	logger, closer, err := logging.Open(path, level)
	if err != nil {
		return nil, nil, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, closer, nil
}

func run(ctx context.Context, opts *Options, args []string) error {
	cfg, logger, closer, err := setup(opts)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	modelOpts := []app.Option{app.WithLogger(logger)}
	watcher, err := browser.NewWatcher(ctx, logger)
	if err != nil {
		logger.Warn("directory watching disabled", "error", err)
	} else {
		defer watcher.Close()
		modelOpts = append(modelOpts, app.WithWatcher(watcher))
	}

	m, err := app.New(cfg, modelOpts...)
	if err != nil {
		return err
	}
	if err := m.LoadPlaylist(); err != nil {
		logger.Warn("failed to load playlist", "error", err)
	}
	if len(args) > 0 {
		quoted := make([]string, len(args))
		for i, a := range args {
			quoted[i] = command.Quote(a)
		}
		if err := m.Exec("add " + strings.Join(quoted, " ")); err != nil {
			logger.Warn("failed to add arguments", "error", err)
		}
	}

	logger.Info("starting", "version", Version, "config", opts.ConfigPath)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
