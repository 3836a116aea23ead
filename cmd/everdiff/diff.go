package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/felipesere/everdiff/internal/applog"
	"github.com/felipesere/everdiff/internal/config"
	"github.com/felipesere/everdiff/internal/filter"
	"github.com/felipesere/everdiff/internal/identity"
	"github.com/felipesere/everdiff/internal/prepatch"
	"github.com/felipesere/everdiff/internal/render"
	"github.com/felipesere/everdiff/internal/watch"
	"github.com/felipesere/everdiff/profile"
)

func runDiff(cmd *cobra.Command, args []string, opts *diffOptions, logCfg *applog.Config, profCfg *profile.Config) error {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	profiler := profCfg.NewProfiler()
	if err := profiler.Start(); err != nil {
		return err
	}

	defer func() {
		if err := profiler.Stop(); err != nil {
			slog.Error("stopping profiler", "error", err)
		}
	}()

	pipeline, err := buildPipeline(args[0], args[1], opts)
	if err != nil {
		return err
	}

	width := render.Width(int(os.Stdout.Fd()))

	result := pipeline.Run(width)
	if result.Err != nil {
		return result.Err
	}

	fmt.Fprint(cmd.OutOrStdout(), result.Rendered)

	if result.HasChanges {
		rootExitCode = 1
	}

	return nil
}

func buildPipeline(leftPath, rightPath string, opts *diffOptions) (watch.Pipeline, error) {
	rules, err := loadRules(opts.ConfigPath)
	if err != nil {
		return watch.Pipeline{}, err
	}

	patterns, err := parsePatterns(opts.Ignore)
	if err != nil {
		return watch.Pipeline{}, err
	}

	mode := identity.Positional
	if opts.Kubernetes {
		mode = identity.Kubernetes
	}

	return watch.Pipeline{
		LeftPath:    leftPath,
		RightPath:   rightPath,
		Mode:        mode,
		Rules:       rules,
		Patterns:    patterns,
		IgnoreMoved: opts.IgnoreMoved,
		MaxDepth:    opts.MaxDepth,
	}, nil
}

func loadRules(path string) ([]prepatch.Rule, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	return config.Load(data, path)
}

func parsePatterns(raw []string) ([]filter.Pattern, error) {
	patterns := make([]filter.Pattern, 0, len(raw))

	for _, r := range raw {
		p, err := filter.ParsePattern(r)
		if err != nil {
			return nil, err
		}

		patterns = append(patterns, p)
	}

	return patterns, nil
}
