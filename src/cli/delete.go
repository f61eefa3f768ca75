package cli

import (
	"fmt"

	"github.com/contre95/soulkeep/src/features/records"
	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <identifier>",
		Short: "Evict the import record for an identifier",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return exitErr(ExitMissingArgs, fmt.Errorf("expected exactly one identifier"))
			}
			return nil
		},
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
			if err := service.Delete(cmd.Context(), args[0]); err != nil {
				return exitErr(recordsExitCode(err), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "evicted %s\n", args[0])
			return nil
		},
	}
}
