package cli

import (
	"context"
	"testing"

	"github.com/contre95/soulkeep/src/features/records"
	"github.com/contre95/soulkeep/src/history"
)

// memStore is an in-memory implementation of history.Store.
type memStore struct {
	records map[string]string
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]string)}
}

func (m *memStore) Upsert(ctx context.Context, identifier, originPath string) error {
	m.records[identifier] = originPath
	return nil
}

func (m *memStore) Lookup(ctx context.Context, identifier string) (string, bool, error) {
	origin, ok := m.records[identifier]
	return origin, ok, nil
}

func (m *memStore) Remove(ctx context.Context, identifier string) error {
	delete(m.records, identifier)
	return nil
}

func (m *memStore) ListAll(ctx context.Context) ([]history.Record, error) {
	all := []history.Record{}
	for id, origin := range m.records {
		all = append(all, history.Record{Identifier: id, OriginPath: origin})
	}
	return all, nil
}

func (m *memStore) FindByPathPrefix(ctx context.Context, prefix string) ([]history.Record, error) {
	return nil, nil
}

func (m *memStore) Count(ctx context.Context) (int, error) {
	return len(m.records), nil
}

func TestEvictUnderPath(t *testing.T) {
	store := newMemStore()
	store.records["exact"] = "/downloads/music/AlbumFoo"
	store.records["nested"] = "/downloads/music/AlbumFoo/cd1"
	store.records["sibling"] = "/downloads/music/AlbumFoobar"
	store.records["outside"] = "/downloads/video/Show"
	service := records.NewService(store, nil, nil)

	evictUnderPath(context.Background(), store, service, "/downloads/music/AlbumFoo")

	if _, ok := store.records["exact"]; ok {
		t.Error("record matching the removed path exactly must be evicted")
	}
	if _, ok := store.records["nested"]; ok {
		t.Error("record under the removed path must be evicted")
	}
	if _, ok := store.records["sibling"]; !ok {
		t.Error("sibling with a shared name prefix must survive")
	}
	if _, ok := store.records["outside"]; !ok {
		t.Error("record outside the removed path must survive")
	}
}

func TestEvictUnderPathRemovedFile(t *testing.T) {
	store := newMemStore()
	store.records["file"] = "/downloads/music/single.mp3"
	store.records["dir"] = "/downloads/music"
	service := records.NewService(store, nil, nil)

	evictUnderPath(context.Background(), store, service, "/downloads/music/single.mp3")

	if _, ok := store.records["file"]; ok {
		t.Error("record for the removed file must be evicted")
	}
	if _, ok := store.records["dir"]; !ok {
		t.Error("record for the parent directory must survive a file removal")
	}
}
