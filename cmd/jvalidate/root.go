package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

const version = "dev"

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var debug, showVersion bool

	root := &cobra.Command{
		Use:           "jvalidate",
		Short:         "Validate JSON instances against a JSON Schema Draft-07 document",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				level.Set(slog.LevelDebug)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "jvalidate %s\n", version)
				return nil
			}
			return cmd.Help()
		},
	}

	root.Flags().BoolVarP(&showVersion, "version", "v", false, "print version and exit")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	root.PersistentFlags().StringP("locale", "l", "", "preferred locale for rendered problem messages (e.g. ja)")
	root.PersistentFlags().BoolP("strict-format", "r", false, "reject unknown format names as a builder error")
	root.PersistentFlags().StringP("format", "f", "text", "output format: text or json")

	root.AddCommand(newValidateCmd(logger))
	root.AddCommand(newBatchCmd(logger))

	return root
}
