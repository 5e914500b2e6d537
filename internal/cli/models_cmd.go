package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newModelsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List selectable models and whether their vendor is configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tVENDOR\tCONFIGURED\tDEFAULT")
			def := app.Models.DefaultModel()
			for _, m := range app.Models.Catalog() {
				marker := ""
				if m.ID == def {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", m.ID, m.Family, m.Available, marker)
			}
			return w.Flush()
		},
	}
}
