package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/erpforensic/reconstructor/internal/extraction"
	"github.com/erpforensic/reconstructor/internal/extraction/extractors"
)

func newExtractorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extractors",
		Short: "List every registered extractor and the tables it declares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := extraction.NewRegistry()
			if err := extractors.Register(registry); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODULE\tCATEGORY\tTABLES")

			print := func(id string) {
				ext, err := registry.New(id)
				if err != nil {
					return
				}
				identity := ext.Identity()
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", identity.ExtractorID, identity.Module, identity.Category, len(ext.Tables()))
			}

			if id, _, ok := registry.SystemInfo(); ok {
				print(id)
			}
			if id, _, ok := registry.DataDictionaryExtractor(); ok {
				print(id)
			}
			for _, id := range registry.ModuleIDs() {
				print(id)
			}

			return w.Flush()
		},
	}
}
