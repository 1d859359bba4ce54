package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/efritioff/gtav-timer/internal/catalog"

	"github.com/spf13/cobra"
)

func newCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the business table",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBLIP\tFULL CYCLE")
			for _, b := range catalog.Default().List() {
				cycle := "-"
				if b.ProductionSeconds > 0 {
					cycle = (time.Duration(b.ProductionSeconds) * time.Second).String()
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", b.ID, b.Name, b.BlipID, cycle)
			}
			return w.Flush()
		},
	}
}
