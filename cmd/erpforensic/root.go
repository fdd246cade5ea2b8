package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "erpforensic",
		Short:         "Forensic reconstruction of ERP systems from read-only tabular extraction",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug-level logging")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newExtractorsCmd())
	cmd.AddCommand(newModelsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
