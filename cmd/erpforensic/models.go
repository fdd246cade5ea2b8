package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/erpforensic/reconstructor/internal/mining/referencemodel"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the built-in reference process models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models := referencemodel.Builtins()
			ids := make([]string, 0, len(models))
			for id := range models {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tACTIVITIES\tEDGES")
			for _, id := range ids {
				m := models[id]
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", m.ID, m.Name, len(m.Activities), len(m.Edges))
			}
			return w.Flush()
		},
	}
}
