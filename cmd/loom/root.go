package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"canvas-hq/loom/pkg/cdl"
	"canvas-hq/loom/pkg/cli"
	"canvas-hq/loom/pkg/config"
	"canvas-hq/loom/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "Loom - CDL context document toolkit",
	Long: `Loom parses, validates, and assembles CDL context documents (.cdx).

A context document combines XML metadata and sections, variable
interpolation, and an embedded flowchart whose nodes link back to
sections. Loom provides:
  - Linting with precise locations and fix suggestions
  - Fast section-only and flow-only loading paths
  - Document scaffolding
  - A workspace watcher with a persistent assembly cache`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig resolves the effective configuration: defaults, then the config
// file if one was given, then environment overrides.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		cfg := config.DefaultConfig()
		return cfg, nil
	}
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg, nil
}

// newLogger builds the command logger from config, with --verbose forcing
// debug level.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:     level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	})
}

// newLoader builds a document loader from config.
func newLoader(cfg *config.Config) *cdl.Loader {
	opts := []cdl.Option{
		cdl.WithStrict(cfg.Loader.Strict),
	}
	if cfg.Loader.MaxFileSize > 0 {
		opts = append(opts, cdl.WithMaxFileSize(cfg.Loader.MaxFileSize))
	}
	return cdl.NewLoader(opts...)
}
