package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vito/nabla/pkg/nabla"
)

// Config holds the application configuration
type Config struct {
	Debug   bool
	Verbose bool
	Project string
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "nabla",
		Short: "Type checker for mathematical notation",
		Long: `Nabla infers and checks the types of mathematical expressions:
scalars, dimensioned vectors and matrices, and operations dispatched
through user-defined algebraic structures.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Dump inferred types in full detail")
	rootCmd.PersistentFlags().StringVar(&cfg.Project, "project", "", "Path to nabla.toml (found by walking up from the cwd if unset)")

	rootCmd.AddCommand(checkCmd(&cfg))
	rootCmd.AddCommand(structuresCmd(&cfg))
	rootCmd.AddCommand(opsCmd(&cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cfg *Config) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func newChecker(cfg *Config) (*nabla.Checker, *nabla.ProjectConfig, string, error) {
	var (
		config    *nabla.ProjectConfig
		configDir string
		err       error
	)
	if cfg.Project != "" {
		config, err = nabla.LoadProjectConfig(cfg.Project)
		configDir = filepath.Dir(cfg.Project)
	} else {
		var path string
		path, config, err = nabla.FindProjectConfig(".")
		configDir = filepath.Dir(path)
	}
	if err != nil {
		return nil, nil, "", err
	}

	var checker *nabla.Checker
	if config.UseStdlib() {
		checker, err = nabla.WithStandardLibrary()
		if err != nil {
			return nil, nil, "", err
		}
	} else {
		checker = nabla.New()
	}
	config.ApplyBindings(checker)
	return checker, config, configDir, nil
}

func checkCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Type-check expression files",
		Long: `Check reads JSON expression trees and reports each one's type,
a failure with a suggestion, or the set of types that would satisfy a
still-polymorphic expression. With no arguments, the files listed in
nabla.toml are checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg)

			checker, config, configDir, err := newChecker(cfg)
			if err != nil {
				return err
			}

			files := args
			if len(files) == 0 && config != nil {
				for _, f := range config.Files {
					files = append(files, filepath.Join(configDir, f))
				}
			}
			if len(files) == 0 {
				return fmt.Errorf("no expression files given and none listed in nabla.toml")
			}

			// Sessions are independent, so files check concurrently.
			var (
				mu      sync.Mutex
				results = make(map[string]nabla.CheckResult, len(files))
			)
			eg := new(errgroup.Group)
			for _, file := range files {
				file := file
				eg.Go(func() error {
					data, err := os.ReadFile(file)
					if err != nil {
						return err
					}
					expr, err := nabla.DecodeExpression(data)
					if err != nil {
						return fmt.Errorf("%s: %w", file, err)
					}
					result := checker.Check(expr)
					mu.Lock()
					results[file] = result
					mu.Unlock()
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			failed := false
			for _, file := range files {
				result := results[file]
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", file, result)
				if cfg.Verbose {
					pretty.Fprintf(cmd.OutOrStdout(), "# %# v\n", result)
				}
				if _, isFailure := result.(nabla.Failure); isFailure {
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("type errors found")
			}
			return nil
		},
	}
}

func structuresCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "structures [type]",
		Short: "List structures, or the structures a type implements",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg)

			checker, _, _, err := newChecker(cfg)
			if err != nil {
				return err
			}
			reg := checker.Registry()

			if len(args) == 1 {
				for _, name := range reg.StructuresForType(args[0]) {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			var names []string
			for _, name := range reg.StructureNames() {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func opsCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "ops <operation>",
		Short: "Show the registered signatures of an operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg)

			checker, _, _, err := newChecker(cfg)
			if err != nil {
				return err
			}
			sigs := checker.Registry().OperationSignatures(args[0])
			if len(sigs) == 0 {
				return fmt.Errorf("unknown operation: %s", args[0])
			}
			for _, sig := range sigs {
				fmt.Fprintln(cmd.OutOrStdout(), sig)
			}
			return nil
		},
	}
}
