package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/benoitkugler/svgmount/config"
	"github.com/benoitkugler/svgmount/pagewatch"
	"github.com/benoitkugler/svgmount/sample"
	"github.com/benoitkugler/svgmount/svghost"
	"github.com/benoitkugler/svgmount/svgpdf"
	"github.com/benoitkugler/svgmount/svgraster"
	"github.com/benoitkugler/svgmount/svgshape"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func runMount(cmd *cobra.Command, args []string) error {
	cfg := settings
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}
	stdout := cmd.OutOrStdout()
	if watch {
		if err := checkWatchable(cfg); err != nil {
			return err
		}
	}

	if err := mountOnce(cfg, stdout, logger); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	w := pagewatch.Watcher{Path: cfg.Page, Logger: logger}
	return w.Run(ctx, func() error { return mountOnce(cfg, stdout, logger) })
}

// checkWatchable rejects settings where mounting would itself
// trigger the page watcher.
func checkWatchable(cfg *config.Config) error {
	if cfg.Page == "" {
		return errors.New("--watch requires a page file")
	}
	if cfg.Output.HTML == "" {
		return nil
	}
	page, err := filepath.Abs(cfg.Page)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(cfg.Output.HTML)
	if err != nil {
		return err
	}
	if page == out {
		return fmt.Errorf("--watch can't write the page to the watched file %s", cfg.Page)
	}
	return nil
}

// loadHost parses the configured page, or returns the built-in one.
func loadHost(cfg *config.Config, logger *zap.Logger) (*svghost.Host, error) {
	if cfg.Page == "" {
		return svghost.Default(svghost.WithLogger(logger)), nil
	}
	f, err := os.Open(cfg.Page)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer f.Close()
	return svghost.Parse(f, "text/html", svghost.WithLogger(logger))
}

// mountOnce mounts the sample tree and writes the configured outputs.
// The page goes to `stdout` when no HTML output file is set.
func mountOnce(cfg *config.Config, stdout io.Writer, logger *zap.Logger) error {
	host, err := loadHost(cfg, logger)
	if err != nil {
		return err
	}
	if err := sample.MountAt(host, cfg.Mount); err != nil {
		return err
	}
	mounted, err := host.Mounted(cfg.Mount)
	if err != nil {
		return err
	}
	if len(mounted) != 1 {
		return fmt.Errorf("expected one mounted tree, got %d", len(mounted))
	}
	root := mounted[0]
	mode, _ := cfg.Mode() // validated
	opts := svgshape.Options{Mode: mode, Logger: logger}

	var g errgroup.Group
	g.Go(func() error {
		if cfg.Output.HTML == "" {
			_, err := host.WriteTo(stdout)
			return err
		}
		return writeFile(cfg.Output.HTML, func(w io.Writer) error {
			_, err := host.WriteTo(w)
			return err
		})
	})
	if cfg.Output.PNG != "" {
		g.Go(func() error {
			return writeFile(cfg.Output.PNG, func(w io.Writer) error {
				return svgraster.WritePNG(w, root, cfg.Scale, opts)
			})
		})
	}
	if cfg.Output.PDF != "" {
		g.Go(func() error {
			return writeFile(cfg.Output.PDF, func(w io.Writer) error {
				return svgpdf.WritePDF(w, root, cfg.Scale, opts)
			})
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("sample mounted",
		zap.String("mount", cfg.Mount),
		zap.String("html", cfg.Output.HTML),
		zap.String("png", cfg.Output.PNG),
		zap.String("pdf", cfg.Output.PDF))
	return nil
}

// writeFile creates `path` and fills it with `write`.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
