package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/contre95/soulkeep/src/features/hosting"
	"github.com/contre95/soulkeep/src/features/metrics"
	"github.com/contre95/soulkeep/src/features/records"
	"github.com/contre95/soulkeep/src/features/tracking"
	"github.com/contre95/soulkeep/src/history"
	"github.com/contre95/soulkeep/src/infra/watcher"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the download path watcher",
		Long: `Runs soulkeep as a long-lived service: webhooks for the host's import
and move events, the record API, Prometheus metrics, and (when enabled)
a file system watcher that evicts records as their origins disappear
from the download path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			host, err := a.openHost()
			if err != nil {
				return err
			}
			notifier := a.getNotifier()

			recordsService := records.NewService(store, host, notifier)
			trackingService := tracking.NewService(store, notifier)
			metrics.RegisterRecordCount(store)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if a.cfg.Get().Watcher.Enabled {
				if err := startWatcher(ctx, a, recordsService); err != nil {
					slog.Error("Could not start download path watcher", "error", err)
				}
			}

			server := hosting.NewServer(a.cfg, a.configPath, recordsService, trackingService)
			errChan := make(chan error, 1)
			go func() {
				slog.Info("Starting HTTP server", "port", a.cfg.Get().Server.Port)
				errChan <- server.Start()
			}()

			select {
			case err := <-errChan:
				return exitErr(ExitInit, err)
			case <-ctx.Done():
				slog.Info("Shutting down")
				return server.Shutdown()
			}
		},
	}
}

// startWatcher wires removal events from the download path into record
// eviction: when an origin (or its parent directory) disappears, the
// record is dropped without waiting for a prune run.
func startWatcher(ctx context.Context, a *app, svc *records.Service) error {
	events := make(chan watcher.RemovalEvent, 16)
	w, err := watcher.NewWatcher(events)
	if err != nil {
		return err
	}
	if err := w.Start(ctx, a.cfg.Get().DownloadPath); err != nil {
		return err
	}

	go func() {
		defer w.Stop()
		for {
			select {
			case event := <-events:
				evictUnderPath(ctx, a.store, svc, event.Path)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func evictUnderPath(ctx context.Context, store history.Store, svc *records.Service, path string) {
	all, err := store.ListAll(ctx)
	if err != nil {
		slog.Error("Could not list records after removal event", "error", err)
		return
	}
	for _, record := range all {
		if record.OriginPath != path && !history.UnderDir(record.OriginPath, path) {
			continue
		}
		if err := svc.Evict(ctx, record.Identifier, record.OriginPath); err != nil {
			slog.Error("Could not evict record for removed origin", "identifier", record.Identifier, "error", err)
			continue
		}
		slog.Info("Evicted record for removed origin", "identifier", record.Identifier, "origin", record.OriginPath)
	}
}
