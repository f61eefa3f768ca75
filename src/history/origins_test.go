package history

import (
	"testing"
)

func TestGroupByAlbum(t *testing.T) {
	items := []ImportedItem{
		{AlbumID: "X", Path: "/m/X/a.mp3"},
		{AlbumID: "X", Path: "/m/X/b.mp3"},
		{AlbumID: "Y", Path: "/m/Y/c.mp3"},
		{AlbumID: "", Path: "/m/orphan.mp3"},
	}

	groups := GroupByAlbum(items)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups["X"]) != 2 {
		t.Errorf("expected 2 paths for X, got %v", groups["X"])
	}
	if len(groups["Y"]) != 1 {
		t.Errorf("expected 1 path for Y, got %v", groups["Y"])
	}
}

func TestCommonDir(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
		ok    bool
	}{
		{
			name:  "same directory",
			paths: []string{"/m/X/a.mp3", "/m/X/b.mp3"},
			want:  "/m/X",
			ok:    true,
		},
		{
			name:  "single item uses its directory",
			paths: []string{"/m/Y/c.mp3"},
			want:  "/m/Y",
			ok:    true,
		},
		{
			name:  "nested directories share parent",
			paths: []string{"/m/X/cd1/a.mp3", "/m/X/cd2/b.mp3"},
			want:  "/m/X",
			ok:    true,
		},
		{
			name:  "only root in common",
			paths: []string{"/music/a.mp3", "/video/b.mp3"},
			ok:    false,
		},
		{
			name:  "empty input",
			paths: nil,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CommonDir(tt.paths)
			if ok != tt.ok {
				t.Fatalf("CommonDir(%v) ok = %v, want %v", tt.paths, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("CommonDir(%v) = %q, want %q", tt.paths, got, tt.want)
			}
		})
	}
}

func TestUnderDir(t *testing.T) {
	if !UnderDir("/music/A/1.mp3", "/music/A") {
		t.Error("expected /music/A/1.mp3 under /music/A")
	}
	if !UnderDir("/music/A", "/music/A") {
		t.Error("expected a directory to be under itself")
	}
	if UnderDir("/music/AB/1.mp3", "/music/A") {
		t.Error("sibling with shared name prefix must not match")
	}
}

func TestSessionSuppression(t *testing.T) {
	s := NewSession()
	if s.Suppressed("rel-1") {
		t.Fatal("fresh session must not suppress anything")
	}
	s.Suppress("rel-1")
	if !s.Suppressed("rel-1") {
		t.Fatal("expected rel-1 suppressed")
	}
	if s.Suppressed("rel-2") {
		t.Fatal("rel-2 was never suppressed")
	}
}
