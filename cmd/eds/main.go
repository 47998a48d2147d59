// Command eds decorates server-rendered HTML fragments: it rearranges
// authored block grids into styled component markup, resolves media
// references and trims card summaries to their character budget.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/salamswapnil/eds-ued/internal/blocks"
	"github.com/salamswapnil/eds-ued/internal/config"
	"github.com/salamswapnil/eds-ued/internal/pipeline"
)

var (
	// Global flags
	verbose    bool
	configPath string
	outPath    string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "eds",
	Short: "eds - block decoration toolchain",
	Long: `eds decorates content-managed HTML fragments.

Authored pages arrive as plain row/cell grids. eds rewrites registered
blocks (hero, cards, columns, quote) into their component markup, resolves
media references against the configured asset base, and enforces text
budgets such as the card summary limit.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// decorateCmd decorates a file, a directory, or stdin
var decorateCmd = &cobra.Command{
	Use:   "decorate [path]",
	Short: "Decorate a fragment file, a directory of fragments, or stdin",
	Long: `Decorates HTML fragments in place or into --out.

Without a path, reads a fragment from stdin and writes the decorated
fragment to stdout. With a directory, every .html file underneath is
decorated in parallel into the --out directory (required).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecorate,
}

// watchCmd re-decorates fragments as they change
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and re-decorate fragments on change",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

// blocksCmd lists registered block decorators
var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List registered block decorators",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range blocks.DefaultRegistry().Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

// initCmd writes a default config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists", configPath)
		}
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
		return nil
	},
}

func loadPipeline() (*pipeline.Pipeline, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return pipeline.New(cfg, logger), nil
}

func runDecorate(cmd *cobra.Command, args []string) error {
	p, err := loadPipeline()
	if err != nil {
		return err
	}

	// stdin -> stdout
	if len(args) == 0 {
		return p.DecorateFragment(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	in := args[0]
	info, err := os.Stat(in)
	if err != nil {
		return err
	}

	if info.IsDir() {
		if outPath == "" {
			return fmt.Errorf("--out is required when decorating a directory")
		}
		return p.DecorateDir(cmd.Context(), in, outPath)
	}

	out := outPath
	if out == "" {
		out = in // decorate in place
	}
	return p.DecorateFile(cmd.Context(), in, out)
}

func runWatch(cmd *cobra.Command, args []string) error {
	p, err := loadPipeline()
	if err != nil {
		return err
	}

	out := outPath
	if out == "" {
		out = args[0] // re-decorate in place
	}

	w, err := pipeline.NewWatcher(p, args[0], out)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	logger.Info("watching for changes, Ctrl-C to stop", zap.String("dir", args[0]))
	<-ctx.Done()
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "eds.yaml", "path to config file")

	decorateCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file or directory")
	watchCmd.Flags().StringVarP(&outPath, "out", "o", "", "output directory")

	rootCmd.AddCommand(decorateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
