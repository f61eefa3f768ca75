package records

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

var supportedExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
}

// ErrNoReleaseID means no audio file in the directory carries a
// MusicBrainz release identifier.
var ErrNoReleaseID = errors.New("no musicbrainz release id found in directory")

// DetectAlbumID walks a source directory and returns the MusicBrainz
// release id carried by the first tagged audio file it finds. Different
// containers spell the field differently, so raw tag keys are matched
// loosely.
func DetectAlbumID(dir string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || found != "" {
			return nil
		}
		if !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		id, err := releaseIDFromFile(path)
		if err != nil {
			return nil // unreadable or untagged file, keep looking
		}
		if id != "" {
			found = id
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w: %s", ErrNoReleaseID, dir)
	}
	return found, nil
}

func releaseIDFromFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return "", err
	}

	for key, value := range m.Raw() {
		if !isReleaseIDKey(key) {
			continue
		}
		switch v := value.(type) {
		case string:
			return v, nil
		case *tag.Comm:
			return v.Text, nil
		}
	}
	return "", nil
}

// isReleaseIDKey matches the field across containers: vorbis comments use
// MUSICBRAINZ_ALBUMID, ID3v2 a TXXX frame described "MusicBrainz Album Id".
func isReleaseIDKey(key string) bool {
	normalized := strings.ToLower(key)
	for _, c := range []string{" ", "_", ":", "txxx"} {
		normalized = strings.ReplaceAll(normalized, c, "")
	}
	return normalized == "musicbrainzalbumid"
}
