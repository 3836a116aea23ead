package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felipesere/everdiff/internal/applog"
	"github.com/felipesere/everdiff/profile"
)

// rootExitCode carries the "changes present" (1) vs "no changes" (0) result
// of the last diff run. Fatal errors bypass this entirely: run() in main.go
// returns 2 directly when Execute returns an error.
var rootExitCode int

// diffOptions holds the flags shared by the root diff command and the watch
// subcommand.
type diffOptions struct {
	Kubernetes  bool
	Ignore      []string
	IgnoreMoved bool
	ConfigPath  string
	MaxDepth    int
}

func registerDiffFlags(cmd *cobra.Command, opts *diffOptions) {
	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.Kubernetes, "kubernetes", false,
		"pair documents by (apiVersion, kind, metadata.name) instead of position")
	flags.StringArrayVar(&opts.Ignore, "ignore", nil,
		"ignore changes at this path (repeatable); e.g. .metadata.annotations")
	flags.BoolVar(&opts.IgnoreMoved, "ignore-moved", false,
		"drop Moved changes from the output")
	flags.StringVar(&opts.ConfigPath, "config", "",
		"path to a pre-patch configuration file")
	flags.IntVar(&opts.MaxDepth, "max-depth", 0,
		"maximum recursion depth before failing (0 = default)")
}

func newRootCmd() *cobra.Command {
	logCfg := applog.NewConfig()
	profCfg := profile.NewConfig()
	opts := &diffOptions{}

	rootCmd := &cobra.Command{
		Use:           "everdiff <left.yaml> <right.yaml>",
		Short:         "Compute and render the semantic diff between two YAML document streams",
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args, opts, logCfg, profCfg)
		},
	}

	registerDiffFlags(rootCmd, opts)
	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register log completions: %v\n", err)
	}

	if err := profCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register profile completions: %v\n", err)
	}

	rootCmd.AddCommand(newWatchCmd(opts, logCfg))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
