package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/contre95/soulkeep/src/features/tracking"
	"github.com/contre95/soulkeep/src/history"
)

func TestDispatcherWithoutAdvisorIgnoresRemovals(t *testing.T) {
	store := newMemStore()
	store.records["rel-1"] = "/downloads/music/AlbumFoo"
	dispatcher := &hookDispatcher{tracking: tracking.NewService(store, nil)}

	// No prompter was wired, so there is no advisor; the removal event
	// must be a no-op instead of a crash.
	dispatcher.OnItemRemoved(context.Background(), history.NewSession(), history.RemovedItem{
		AlbumID: "rel-1", Path: "/library/a.mp3",
	})

	if _, ok := store.records["rel-1"]; !ok {
		t.Error("record must survive an unattended removal event")
	}
}

func TestDecodeStdin(t *testing.T) {
	var payload struct {
		Items []history.ImportedItem `json:"items"`
	}
	in := strings.NewReader(`{"items":[{"album_id":"X","path":"/m/X/a.mp3"}]}`)
	if err := decodeStdin(in, &payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(payload.Items) != 1 || payload.Items[0].AlbumID != "X" {
		t.Errorf("unexpected payload %+v", payload)
	}

	if err := decodeStdin(strings.NewReader("not json"), &payload); err == nil {
		t.Error("expected an error for a malformed payload")
	}
}
