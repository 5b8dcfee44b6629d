// Command svgmount mounts the sample svg container into an HTML page,
// and optionally paints it as PNG and PDF.
package main

import (
	"fmt"
	"os"

	"github.com/benoitkugler/svgmount/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Settings, resolved before each command runs
	settings *config.Config

	// Logger
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "svgmount",
	Short: "Mount a 100x100 svg container into an HTML page",
	Long: `svgmount builds a svg container holding one stroked square and
mounts it at the "container" element of an HTML page, which is then written
to stdout (or --out). The mounted tree may also be painted as PNG and PDF.

Example:
  svgmount --page index.html --out build/index.html --png build/sample.png`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		settings = cfg
		level, _ := cfg.Level() // validated
		if verbose {
			level = zapcore.DebugLevel
		}
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runMount,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&configPath, "config", "", "YAML configuration file")
	pf.Float64("scale", 1, "Scale factor of the PNG and PDF outputs")
	pf.String("error-mode", "warn", "Handling of elements which can't be painted: ignore, warn or strict")

	f := rootCmd.Flags()
	f.String("page", "", "Host HTML page (default: built-in page)")
	f.String("mount", "container", "Id of the element receiving the tree")
	f.StringP("out", "o", "", "Write the page to this file instead of stdout")
	f.String("png", "", "Also paint the mounted tree to this PNG file")
	f.String("pdf", "", "Also paint the mounted tree to this PDF file")
	f.Bool("watch", false, "Mount again each time the page file is saved")

	rootCmd.AddCommand(rasterizeCmd)
}

// loadConfig reads the configuration file, if any, then applies
// the flags explicitly set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	overrides := []struct {
		name string
		dst  *string
	}{
		{"page", &cfg.Page},
		{"mount", &cfg.Mount},
		{"out", &cfg.Output.HTML},
		{"png", &cfg.Output.PNG},
		{"pdf", &cfg.Output.PDF},
		{"error-mode", &cfg.ErrorMode},
	}
	for _, o := range overrides {
		if flags.Lookup(o.name) == nil || !flags.Changed(o.name) {
			continue
		}
		v, err := flags.GetString(o.name)
		if err != nil {
			return nil, err
		}
		*o.dst = v
	}
	if flags.Changed("scale") {
		v, err := flags.GetFloat64("scale")
		if err != nil {
			return nil, err
		}
		cfg.Scale = v
	}
	return cfg, cfg.Validate()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
