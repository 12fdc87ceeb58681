// Package main provides the CLI entry point for slidecat.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/slidecat-go/internal/config"
	"github.com/ukaji3/slidecat-go/pkg/slidecat"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "0.1.0"

// app holds the state shared by all commands of one invocation.
type app struct {
	// Global flags
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "slidecat",
		Short:   "Split and merge PowerPoint files",
		Long:    `slidecat splits, merges, extracts and verifies PowerPoint (.pptx) presentations.`,
		Version: version,

		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "Configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: warn)")

	rootCmd.AddCommand(
		newSplitCmd(a),
		newMergeCmd(a),
		newExtractCmd(a),
		newVerifyCmd(a),
	)
	return rootCmd
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	a.logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// options returns operation options for cfg.
func (a *app) options(cfg *config.Config) slidecat.Options {
	opts := slidecat.DefaultOptions()
	opts.Logger = a.logger
	opts.BlankLayout = cfg.Merge.BlankLayout
	return opts
}
