package cli

import (
	"fmt"
	"log/slog"

	"github.com/contre95/soulkeep/src/features/config"
	"github.com/contre95/soulkeep/src/features/logging"
	"github.com/contre95/soulkeep/src/features/notify"
	"github.com/contre95/soulkeep/src/history"
	"github.com/contre95/soulkeep/src/infra/database"
	"github.com/spf13/cobra"
)

// app holds the lazily-opened collaborators every command shares.
type app struct {
	configPath string
	cfg        *config.Manager
	store      *database.SqliteStore
	host       *database.HostLibrary
	notifier   history.Notifier
}

// Execute runs the soulkeep CLI.
func Execute() error {
	a := &app{}
	return newRootCmd(a).Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "soulkeep",
		Short: "Import provenance bookkeeping for your music library",
		Long: `soulkeep remembers where every album in your library was imported from,
and offers to clean up the original source once the album leaves the
library again.

The host library manager drives the hook commands at its extension
points; list, add, delete and prune talk to the record store directly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return exitErr(ExitInit, fmt.Errorf("failed to load config: %w", err))
			}
			a.cfg = cfg
			slog.SetDefault(logging.SetupLogger(cfg))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "soulkeep.yaml", "path to the configuration file")

	root.AddCommand(newListCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newPruneCmd(a))
	root.AddCommand(newHookCmd(a))
	root.AddCommand(newServeCmd(a))

	return root
}

// openStore opens the import record database. Failure here disables
// everything; there is no degraded mode.
func (a *app) openStore() (*database.SqliteStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := database.NewSqliteStore(a.cfg.Get().Database.Path)
	if err != nil {
		return nil, exitErr(ExitInit, fmt.Errorf("could not open/create database file: %w", err))
	}
	a.store = store
	return store, nil
}

// openHost opens the host manager's library database read-only.
func (a *app) openHost() (*database.HostLibrary, error) {
	if a.host != nil {
		return a.host, nil
	}
	host, err := database.NewHostLibrary(a.cfg.Get().HostLibrary.Path)
	if err != nil {
		return nil, exitErr(ExitInit, fmt.Errorf("could not open host library database: %w", err))
	}
	a.host = host
	return host, nil
}

func (a *app) getNotifier() history.Notifier {
	if a.notifier != nil {
		return a.notifier
	}
	notifier, err := notify.NewTelegram(a.cfg)
	if err != nil {
		slog.Warn("telegram notifier unavailable", "error", err)
		notifier = history.NopNotifier{}
	}
	a.notifier = notifier
	return notifier
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
	if a.host != nil {
		a.host.Close()
		a.host = nil
	}
}
