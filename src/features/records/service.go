package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/contre95/soulkeep/src/features/metrics"
	"github.com/contre95/soulkeep/src/history"
)

var (
	// ErrNotDirectory means the given origin path does not exist or is not
	// a directory.
	ErrNotDirectory = errors.New("path is not an existing directory")
	// ErrIdentifierInLibrary means the identifier still resolves to an
	// album in the host library; history is only recorded for identifiers
	// the library no longer (or not yet) knows.
	ErrIdentifierInLibrary = errors.New("identifier matches an album in the host library")
	// ErrLibraryInconsistent means the host library returned more than one
	// album for a primary-key identifier. That can't happen on a healthy
	// database, so it is surfaced loudly instead of being ignored.
	ErrLibraryInconsistent = errors.New("host library is inconsistent: identifier is not unique")
	// ErrRecordNotFound means no import record exists for the identifier.
	ErrRecordNotFound = errors.New("no import record for identifier")
)

// Service manipulates the import record store directly, independent of the
// host-triggered hooks.
type Service struct {
	store    history.Store
	host     history.HostLibrary
	notifier history.Notifier
}

// NewService creates a new records service.
func NewService(store history.Store, host history.HostLibrary, notifier history.Notifier) *Service {
	if notifier == nil {
		notifier = history.NopNotifier{}
	}
	return &Service{store: store, host: host, notifier: notifier}
}

// List returns every import record.
func (s *Service) List(ctx context.Context) ([]history.Record, error) {
	return s.store.ListAll(ctx)
}

// Add validates and upserts a record for an identifier the host library
// does not currently hold.
func (s *Service) Add(ctx context.Context, identifier, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	if err := s.validateAbsent(ctx, identifier); err != nil {
		return err
	}

	if err := s.store.Upsert(ctx, identifier, path); err != nil {
		return err
	}
	metrics.RecordUpserts.Inc()
	s.notifier.RecordStored(identifier, path)
	slog.Info("recorded import history", "identifier", identifier, "origin", path)
	return nil
}

// Delete evicts the record for an identifier after the same host-library
// validation as Add.
func (s *Service) Delete(ctx context.Context, identifier string) error {
	if err := s.validateAbsent(ctx, identifier); err != nil {
		return err
	}

	origin, ok, err := s.store.Lookup(ctx, identifier)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, identifier)
	}
	if err := s.store.Remove(ctx, identifier); err != nil {
		return err
	}
	metrics.RecordEvictions.Inc()
	s.notifier.RecordEvicted(identifier, origin)
	slog.Info("evicted import record", "identifier", identifier)
	return nil
}

// Evict removes a record without host-library validation. Used by the
// watcher when a recorded origin disappears from disk.
func (s *Service) Evict(ctx context.Context, identifier, origin string) error {
	if err := s.store.Remove(ctx, identifier); err != nil {
		return err
	}
	metrics.RecordEvictions.Inc()
	s.notifier.RecordEvicted(identifier, origin)
	return nil
}

// Prune evicts every record whose origin no longer exists on disk and
// returns the evicted records. With pretend set, it only reports them.
func (s *Service) Prune(ctx context.Context, pretend bool) ([]history.Record, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stale := []history.Record{}
	for _, r := range records {
		if _, err := os.Stat(r.OriginPath); err == nil {
			continue
		}
		stale = append(stale, r)
		if pretend {
			continue
		}
		if err := s.Evict(ctx, r.Identifier, r.OriginPath); err != nil {
			slog.Warn("failed to evict stale record", "identifier", r.Identifier, "error", err)
		}
	}
	return stale, nil
}

func (s *Service) validateAbsent(ctx context.Context, identifier string) error {
	count, err := s.host.CountAlbums(ctx, identifier)
	if err != nil {
		return err
	}
	switch {
	case count == 0:
		return nil
	case count == 1:
		return fmt.Errorf("%w: %s", ErrIdentifierInLibrary, identifier)
	default:
		return fmt.Errorf("%w: %s has %d matches", ErrLibraryInconsistent, identifier, count)
	}
}
