package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Zachacious/go-rpcdoc/internal/analyzer"
	"github.com/Zachacious/go-rpcdoc/internal/assembler"
	"github.com/Zachacious/go-rpcdoc/internal/config"
	"github.com/Zachacious/go-rpcdoc/internal/logger"
	"github.com/spf13/cobra"
)

// These variables are set at build time by the Makefile's ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type flags struct {
	format         string
	depth          int
	accessorPrefix string
	methodNames    string
	resolvers      []string
	manifests      []string
	packages       []string
	logLevel       string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "rpcdoc [path]",
		Short: "rpcdoc extracts a JSON-RPC documentation schema from resolver types.",
		Long: `rpcdoc loads the Go packages of a project, picks the resolver types
matching the configured patterns and describes every public method as a
JSON-RPC operation: its ordered parameters, their types, whether they are
required or nullable, and its result. Object types are expanded into their
properties up to a configurable depth. Settings come from .rpcdoc.yaml or
.rpcdoc.toml in the project directory and may be overridden by flags.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args[0], &f)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			return err
		},
	}

	rootCmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: "+strings.Join(assembler.Formats, ", "))
	rootCmd.Flags().IntVar(&f.depth, "depth", analyzer.DefaultMaxDepth, "Nested object expansion depth")
	rootCmd.Flags().StringVar(&f.accessorPrefix, "accessor-prefix", analyzer.DefaultAccessorPrefix, "Accessor prefix for unexported fields")
	rootCmd.Flags().StringVar(&f.methodNames, "method-names", config.MethodNamesGo, "Operation key style: go or lowerFirst")
	rootCmd.Flags().StringSliceVar(&f.resolvers, "resolver", nil, "Resolver type pattern (repeatable)")
	rootCmd.Flags().StringSliceVar(&f.manifests, "manifest", nil, "YAML class manifest (repeatable)")
	rootCmd.Flags().StringSliceVar(&f.packages, "packages", nil, "Package patterns to load")
	rootCmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error, none")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of rpcdoc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rpcdoc version %s\n", version)
			fmt.Printf("commit: %s\n", commit)
			fmt.Printf("built at: %s\n", date)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "config-schema",
		Short: "Print the JSON Schema of the .rpcdoc.yaml file",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(config.JSONSchema())
		},
	})

	return rootCmd
}

func run(cmd *cobra.Command, projectPath string, f *flags) error {
	cfg, err := config.Load(projectPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	applyFlags(cmd, cfg, f)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetupLogger(level)
	log := logger.NewDefaultLogger()
	log.Info("starting analysis", "path", projectPath)

	a, err := analyzer.New(projectPath, cfg, log)
	if err != nil {
		return fmt.Errorf("initializing analyzer: %w", err)
	}
	schema, err := a.Analyze()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	log.Info("analysis complete", "namespaces", len(schema), "format", cfg.Format)
	return assembler.Render(cmd.OutOrStdout(), schema, cfg.Format, cfg)
}

// applyFlags overrides the configuration with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f *flags) {
	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("depth") {
		cfg.MaxDepth = f.depth
	}
	if changed("accessor-prefix") {
		cfg.AccessorPrefix = f.accessorPrefix
	}
	if changed("method-names") {
		cfg.MethodNames = f.methodNames
	}
	if changed("resolver") {
		cfg.Resolvers = f.resolvers
	}
	if changed("manifest") {
		cfg.Manifests = append(cfg.Manifests, f.manifests...)
	}
	if changed("packages") {
		cfg.Packages = f.packages
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
}
