package cli

import (
	"errors"
	"fmt"

	"github.com/contre95/soulkeep/src/features/records"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var detect bool

	cmd := &cobra.Command{
		Use:   "add <identifier> <path>",
		Short: "Record import history for an album the library no longer holds",
		Long: `Record that the album identified by <identifier> was imported from the
directory <path>. The identifier must not match an album currently in the
host library.

With --detect the identifier argument is omitted and read from the
MusicBrainz release id in the directory's audio file tags:

  soulkeep add --detect /music/incoming/AlbumFoo`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 2 {
				return exitErr(ExitMissingArgs, fmt.Errorf("too many arguments"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var identifier, path string
			switch {
			case detect && len(args) == 1:
				path = args[0]
				id, err := records.DetectAlbumID(path)
				if err != nil {
					return exitErr(ExitUsage, err)
				}
				identifier = id
			case !detect && len(args) == 2:
				identifier, path = args[0], args[1]
			default:
				return exitErr(ExitMissingArgs, fmt.Errorf("expected <identifier> <path>, or <path> with --detect"))
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			host, err := a.openHost()
			if err != nil {
				return err
			}

			service := records.NewService(store, host, a.getNotifier())
			if err := service.Add(cmd.Context(), identifier, path); err != nil {
				return exitErr(recordsExitCode(err), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recorded %s -> %s\n", identifier, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&detect, "detect", false, "read the identifier from the directory's audio file tags")
	return cmd
}

// recordsExitCode maps record service errors onto documented exit codes.
func recordsExitCode(err error) int {
	if errors.Is(err, records.ErrLibraryInconsistent) {
		return ExitInternal
	}
	return ExitUsage
}
