package tracking

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/contre95/soulkeep/src/features/metrics"
	"github.com/contre95/soulkeep/src/history"
)

// Service populates the import record store from host events. Everything
// here is best-effort bookkeeping: a store failure is logged and swallowed,
// never surfaced to the host's import pipeline.
type Service struct {
	store    history.Store
	notifier history.Notifier
}

// NewService creates a new tracking service.
func NewService(store history.Store, notifier history.Notifier) *Service {
	if notifier == nil {
		notifier = history.NopNotifier{}
	}
	return &Service{store: store, notifier: notifier}
}

// OnImportCompleted records, for every album touched by a finished import,
// the path the album came from. Items sharing an album that all live under
// one directory get that directory as the origin, so a later removal can
// offer directory-level deletion; otherwise each item's own path is
// recorded and the last one wins.
func (s *Service) OnImportCompleted(ctx context.Context, items []history.ImportedItem) {
	metrics.HookEvents.WithLabelValues("import").Inc()

	for albumID, paths := range history.GroupByAlbum(items) {
		if origin, ok := history.CommonDir(paths); ok {
			s.upsert(ctx, albumID, origin)
			continue
		}
		for _, p := range paths {
			s.upsert(ctx, albumID, p)
		}
	}
}

// OnItemMoved re-points a record when the host relocates files the record's
// origin was tracking. Only the unambiguous cases are handled: the origin
// matching the old path exactly, or matching its parent directory while the
// move changed parents. Anything else is left alone and logged.
func (s *Service) OnItemMoved(ctx context.Context, item history.MovedItem) {
	metrics.HookEvents.WithLabelValues("moved").Inc()

	if item.AlbumID == "" || item.From == "" || item.To == "" {
		slog.Debug("moved hook missing fields, nothing to reconcile", "albumID", item.AlbumID)
		return
	}

	origin, ok, err := s.store.Lookup(ctx, item.AlbumID)
	if err != nil {
		slog.Warn("moved hook lookup failed", "albumID", item.AlbumID, "error", err)
		return
	}
	if !ok {
		return
	}

	oldDir, newDir := filepath.Dir(item.From), filepath.Dir(item.To)
	switch {
	case origin == item.From:
		s.upsert(ctx, item.AlbumID, item.To)
		slog.Info("reconciled moved file", "albumID", item.AlbumID, "from", item.From, "to", item.To)
	case origin == oldDir && oldDir != newDir:
		s.upsert(ctx, item.AlbumID, newDir)
		slog.Info("reconciled moved directory", "albumID", item.AlbumID, "from", oldDir, "to", newDir)
	default:
		slog.Debug("move does not affect recorded origin", "albumID", item.AlbumID, "origin", origin, "from", item.From)
	}
}

func (s *Service) upsert(ctx context.Context, albumID, origin string) {
	if err := s.store.Upsert(ctx, albumID, origin); err != nil {
		slog.Warn("failed to record import origin", "albumID", albumID, "origin", origin, "error", err)
		return
	}
	metrics.RecordUpserts.Inc()
	s.notifier.RecordStored(albumID, origin)
	slog.Debug("recorded import origin", "albumID", albumID, "origin", origin)
}
