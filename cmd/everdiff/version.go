package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felipesere/everdiff/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print version information",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := version.Version
			if v == "" {
				v = "dev"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "everdiff %s (%s, %s/%s, %s)\n",
				v, version.Revision, version.GoOS, version.GoArch, version.GoVersion)

			return nil
		},
	}
}
