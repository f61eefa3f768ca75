package cli

import (
	"fmt"

	"github.com/contre95/soulkeep/src/features/records"
	"github.com/spf13/cobra"
)

func newPruneCmd(a *app) *cobra.Command {
	var pretend bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Evict records whose origin no longer exists on disk",
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
			stale, err := service.Prune(cmd.Context(), pretend)
			if err != nil {
				return err
			}

			verb := "evicted"
			if pretend {
				verb = "would evict"
			}
			for _, r := range stale {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", verb, r.Identifier, r.OriginPath)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d stale record(s)\n", len(stale))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretend, "pretend", "p", false, "show actions but do nothing")
	return cmd
}
