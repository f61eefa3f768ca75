package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/contre95/soulkeep/src/features/records"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every import record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			host, err := a.openHost()
			if err != nil {
				return err
			}

			service := records.NewService(store, host, a.getNotifier())
			all, err := service.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "IDENTIFIER\tORIGIN")
			for _, r := range all {
				fmt.Fprintf(w, "%s\t%s\n", r.Identifier, r.OriginPath)
			}
			return w.Flush()
		},
	}
}
