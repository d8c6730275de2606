package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/zoobzio/capitan"

	"github.com/nicky-ayoub/splitview/internal/config"
	"github.com/nicky-ayoub/splitview/internal/service"
	"github.com/nicky-ayoub/splitview/internal/signals"
)

// options holds the command line flags.
type options struct {
	configPath  string
	before      string
	after       string
	dir         string
	debug       bool
	noWatch     bool
	touchParity bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "splitview [before after]",
		Short: "Compare two images with a draggable divider",
		Long: `splitview shows a before image over an after image and lets you drag a
divider across them with the mouse or a finger.

Pairs come from the command line, from a directory of *-before/*-after files
(--dir) or from the pairs list of the config file. Use Left/Right to switch
pairs, R to reload, T to toggle the pair strip, F11 for fullscreen and Q or
Esc to quit.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected a before and an after image, got %d argument(s)", len(args))
			}
			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				opts.before, opts.after = args[0], args[1]
			}
			cfg, err := opts.resolveConfig()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, newLogger(cmd.ErrOrStderr(), opts.debug))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/splitview/config.yaml)")
	flags.StringVar(&opts.before, "before", "", "before image")
	flags.StringVar(&opts.after, "after", "", "after image")
	flags.StringVar(&opts.dir, "dir", "", "directory to scan for *-before/*-after image pairs")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.noWatch, "no-watch", false, "do not reload pairs when their files change")
	flags.BoolVar(&opts.touchParity, "touch-parity", false, "let touch moves drag the divider without a touch start")

	return cmd
}

// resolveConfig loads the config file and applies the command line on top.
// Pairs named on the command line come first, then scanned pairs, then the
// configured ones.
func (o *options) resolveConfig() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if o.dir != "" {
		scanned, err := service.NewScannerService().ScanPairs(o.dir)
		if err != nil {
			return config.Config{}, fmt.Errorf("scan %s: %w", o.dir, err)
		}
		for i := len(scanned) - 1; i >= 0; i-- {
			p := scanned[i]
			cfg = cfg.WithPair(config.PairConfig{Title: p.Title, Before: p.Before, After: p.After})
		}
	}

	switch {
	case o.before != "" && o.after != "":
		cfg = cfg.WithPair(config.PairConfig{
			Title:  pairTitle(o.before, o.after),
			Before: o.before,
			After:  o.after,
		})
	case o.before != "" || o.after != "":
		return config.Config{}, errors.New("--before and --after must be given together")
	}

	if o.noWatch {
		cfg.Watch = false
	}
	if o.touchParity {
		cfg.View.TouchMoveRequiresDrag = false
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// pairTitle names a pair given on the command line after its before file,
// or after both files when that is ambiguous.
func pairTitle(before, after string) string {
	b := strings.TrimSuffix(filepath.Base(before), filepath.Ext(before))
	a := strings.TrimSuffix(filepath.Base(after), filepath.Ext(after))
	if b == a {
		return b
	}
	return b + " / " + a
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Viewer lifecycle signals end up in the log. Shutdown runs last so the
	// signals emitted while closing the game are delivered.
	signals.LogTo(log)
	defer capitan.Shutdown()

	game := NewGame(ctx, cfg, log)
	defer game.Close()

	// Start the background worker for loading pairs.
	go game.loader.Run(ctx)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Debug("starting viewer", "pairs", len(cfg.Pairs), "watch", cfg.Watch)
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
