package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/contre95/soulkeep/src/features/cleanup"
	"github.com/contre95/soulkeep/src/features/tracking"
	"github.com/contre95/soulkeep/src/history"
	"github.com/spf13/cobra"
)

// hookDispatcher is the CLI-side registration against the extension-point
// surface: the host's event scripts invoke these commands, which fan out
// to the tracking service and the removal advisor.
type hookDispatcher struct {
	tracking *tracking.Service
	advisor  *cleanup.Advisor
}

var _ history.Hooks = (*hookDispatcher)(nil)

func (d *hookDispatcher) OnImportCompleted(ctx context.Context, items []history.ImportedItem) {
	d.tracking.OnImportCompleted(ctx, items)
}

func (d *hookDispatcher) OnItemRemoved(ctx context.Context, session *history.Session, item history.RemovedItem) {
	if d.advisor == nil {
		// Assembled without a prompter; removal suggestions need one.
		return
	}
	d.advisor.OnItemRemoved(ctx, session, item)
}

func (d *hookDispatcher) OnItemMoved(ctx context.Context, item history.MovedItem) {
	d.tracking.OnItemMoved(ctx, item)
}

func newHookCmd(a *app) *cobra.Command {
	hook := &cobra.Command{
		Use:   "hook",
		Short: "Host extension points (invoked by the library manager)",
		Long: `The hook commands are wired into the host library manager's event
scripts. Each reads a JSON event payload from stdin. Failures inside a
hook never surface to the host: the import or removal that triggered the
event has already happened.`,
	}

	hook.AddCommand(newHookImportCmd(a))
	hook.AddCommand(newHookRemovedCmd(a))
	hook.AddCommand(newHookMovedCmd(a))
	return hook
}

func newHookImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Record origins for a finished import (reads JSON from stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, ok, err := a.hooks(nil)
			if err != nil || !ok {
				return err
			}

			var payload struct {
				Items []history.ImportedItem `json:"items"`
			}
			if err := decodeStdin(cmd.InOrStdin(), &payload); err != nil {
				return exitErr(ExitUsage, err)
			}
			dispatcher.OnImportCompleted(cmd.Context(), payload.Items)
			return nil
		},
	}
}

func newHookRemovedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "removed",
		Short: "Offer source cleanup for removed items (reads JSON from stdin)",
		Long: `Runs the removal advisor for every removed item in the payload. This is
an attended, interactive flow: prompts block on the operator's terminal,
and a "stop suggesting" answer silences the rest of the run for that
album.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The payload arrives on stdin, so prompts read from the
			// controlling terminal. Without one this run is unattended and
			// there is nobody to ask; records stay for a later prune.
			tty, err := os.Open("/dev/tty")
			if err != nil {
				slog.Info("no controlling terminal, skipping removal suggestions")
				return nil
			}
			defer tty.Close()
			prompter := cleanup.NewTerminalPrompter(tty, cmd.OutOrStdout())
			dispatcher, ok, err := a.hooks(prompter)
			if err != nil || !ok {
				return err
			}

			var payload struct {
				Items []history.RemovedItem `json:"items"`
			}
			if err := decodeStdin(cmd.InOrStdin(), &payload); err != nil {
				return exitErr(ExitUsage, err)
			}

			session := history.NewSession()
			for _, item := range payload.Items {
				dispatcher.OnItemRemoved(cmd.Context(), session, item)
			}
			return nil
		},
	}
}

func newHookMovedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "moved",
		Short: "Reconcile records for moved files (reads JSON from stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, ok, err := a.hooks(nil)
			if err != nil || !ok {
				return err
			}

			var payload struct {
				Items []history.MovedItem `json:"items"`
			}
			if err := decodeStdin(cmd.InOrStdin(), &payload); err != nil {
				return exitErr(ExitUsage, err)
			}
			for _, item := range payload.Items {
				dispatcher.OnItemMoved(cmd.Context(), item)
			}
			return nil
		},
	}
}

// hooks assembles the hook dispatcher. The middle return value is false
// when automatic hooks are disabled by config; the hook then does nothing,
// successfully, so the host pipeline is never disturbed.
func (a *app) hooks(prompter cleanup.Prompter) (history.Hooks, bool, error) {
	if !a.cfg.Get().Auto {
		slog.Info("automatic hooks disabled by config, ignoring event")
		return nil, false, nil
	}

	store, err := a.openStore()
	if err != nil {
		return nil, false, err
	}

	// The host library is optional for hooks: without it the advisor just
	// skips the collateral track listing.
	host, err := a.openHost()
	if err != nil {
		slog.Warn("host library unavailable for hook", "error", err)
		host = nil
	}

	notifier := a.getNotifier()
	dispatcher := &hookDispatcher{
		tracking: tracking.NewService(store, notifier),
	}
	if prompter != nil {
		var lib history.HostLibrary
		if host != nil {
			lib = host
		}
		dispatcher.advisor = cleanup.NewAdvisor(store, lib, prompter, notifier)
	}
	return dispatcher, true, nil
}

func decodeStdin(in io.Reader, v any) error {
	if err := json.NewDecoder(in).Decode(v); err != nil {
		return fmt.Errorf("invalid event payload: %w", err)
	}
	return nil
}
