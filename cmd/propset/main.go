// Package main provides the propset binary entry point.
// propset resolves, checks and distributes the metadata field configuration
// of a repository installation.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/propset/config"
	"github.com/c360studio/propset/resolver"

	// Register field predicates via init()
	_ "github.com/c360studio/propset/vocabulary/repository"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "propset"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the global flags and what they resolve to.
type app struct {
	configPath string
	logLevel   string
	logger     *slog.Logger
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Metadata field configuration for repository work types",
		Long: `propset resolves which metadata fields each repository work type
uses, which are required, faceted, indexed, restricted or rendered with a
date picker, from built-in defaults and an installation file.

Configuration is read from ~/.config/propset/config.yaml and propset.yaml in
the current or a parent directory, or from the file given with --config.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(cmd.ErrOrStderr(), a.logLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		modelsCmd(a),
		fieldsCmd(a),
		requiredCmd(a),
		setsCmd(a),
		allCmd(a),
		formCmd(a),
		solrCmd(a),
		checkCmd(a),
		exportCmd(a),
		publishCmd(a),
		snapshotsCmd(a),
		initCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)
	return cmd
}

func newLogger(w io.Writer, logLevel string) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig reads the layered configuration.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader(a.logger).Load(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolve builds the finalized resolver of the installation.
func (a *app) resolve(metrics *resolver.Metrics) (*config.Config, *resolver.Resolver, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	r, err := cfg.Build(a.logger, metrics)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, r, nil
}
