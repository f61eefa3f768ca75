package history

import (
	"context"
)

// Record maps an album identifier to the filesystem path it was imported from.
type Record struct {
	Identifier string `json:"identifier"`
	OriginPath string `json:"origin_path"`
}

// Store is the repository interface for import records.
// A record with an empty origin path is equivalent to no record.
type Store interface {
	// Upsert inserts a record or replaces the existing one for the identifier.
	Upsert(ctx context.Context, identifier, originPath string) error
	// Lookup returns the recorded origin path. The second return value is
	// false when no record exists; absence is not an error.
	Lookup(ctx context.Context, identifier string) (string, bool, error)
	// Remove deletes the record for the identifier. Removing an absent
	// identifier is a no-op.
	Remove(ctx context.Context, identifier string) error
	// ListAll returns every record ordered by identifier.
	ListAll(ctx context.Context) ([]Record, error)
	// FindByPathPrefix returns every record whose origin path lies under the
	// given directory.
	FindByPathPrefix(ctx context.Context, prefix string) ([]Record, error)
	// Count returns the number of records.
	Count(ctx context.Context) (int, error)
}

// HostLibrary is the read-only query surface of the host music library
// manager. Only exact identifier match and path-prefix match are needed;
// the host owns everything else about its data model.
type HostLibrary interface {
	// CountAlbums returns how many albums in the host library carry the
	// given identifier. With a unique primary key this is 0 or 1; anything
	// larger means the host database is inconsistent.
	CountAlbums(ctx context.Context, identifier string) (int, error)
	// TracksUnderPath returns the library paths of every track below the
	// given directory.
	TracksUnderPath(ctx context.Context, prefix string) ([]string, error)
}

// Notifier receives record lifecycle events for out-of-band surfaces
// (telegram, metrics dashboards). Implementations must never fail the
// calling flow.
type Notifier interface {
	RecordStored(identifier, originPath string)
	RecordEvicted(identifier, originPath string)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) RecordStored(string, string)  {}
func (NopNotifier) RecordEvicted(string, string) {}
