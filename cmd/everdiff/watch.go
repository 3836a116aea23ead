package main

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/felipesere/everdiff/internal/applog"
	"github.com/felipesere/everdiff/internal/watch"
)

func newWatchCmd(opts *diffOptions, logCfg *applog.Config) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:           "watch <left.yaml> <right.yaml>",
		Short:         "Re-run the diff whenever either file changes, rendering in a terminal UI",
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args, opts, logCfg)
		},
	}

	return watchCmd
}

func runWatch(args []string, opts *diffOptions, logCfg *applog.Config) error {
	publisher := applog.NewPublisher()
	defer publisher.Close()

	handler, err := logCfg.NewHandler(publisher)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	pipeline, err := buildPipeline(args[0], args[1], opts)
	if err != nil {
		return err
	}

	model, err := watch.NewModel(pipeline, publisher.Subscribe())
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(model).Run()

	return err
}
