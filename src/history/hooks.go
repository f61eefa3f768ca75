package history

import (
	"context"
)

// ImportedItem is one item of a finished host import.
type ImportedItem struct {
	AlbumID string `json:"album_id"`
	Path    string `json:"path"`
}

// RemovedItem is an item the host just removed from its library.
// SourcePath carries the legacy in-item attribute some hosts stash the
// origin in; the store record wins when both exist.
type RemovedItem struct {
	AlbumID    string `json:"album_id"`
	Path       string `json:"path"`
	SourcePath string `json:"source_path,omitempty"`
}

// MovedItem describes a file the host relocated inside its library.
type MovedItem struct {
	AlbumID string `json:"album_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// Hooks is the extension-point surface the host drives. How the host
// reaches these slots (event scripts invoking the CLI, HTTP webhooks, a
// direct call) is the caller's business; implementations must never let an
// internal failure propagate back into the host's pipeline.
type Hooks interface {
	OnImportCompleted(ctx context.Context, items []ImportedItem)
	OnItemRemoved(ctx context.Context, session *Session, item RemovedItem)
	OnItemMoved(ctx context.Context, item MovedItem)
}
