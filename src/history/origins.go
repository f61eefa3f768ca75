package history

import (
	"path/filepath"
	"strings"
)

// GroupByAlbum buckets imported item paths by album identifier. Items
// without an identifier are dropped; there is nothing to key a record on.
func GroupByAlbum(items []ImportedItem) map[string][]string {
	groups := make(map[string][]string)
	for _, item := range items {
		if item.AlbumID == "" || item.Path == "" {
			continue
		}
		groups[item.AlbumID] = append(groups[item.AlbumID], item.Path)
	}
	return groups
}

// CommonDir returns the deepest directory containing every given file path.
// The second return value is false when the only shared ancestor is the
// filesystem root, which is too coarse to be a useful origin.
func CommonDir(paths []string) (string, bool) {
	if len(paths) == 0 {
		return "", false
	}
	common := filepath.Dir(filepath.Clean(paths[0]))
	for _, p := range paths[1:] {
		common = commonAncestor(common, filepath.Dir(filepath.Clean(p)))
		if common == "" {
			return "", false
		}
	}
	if common == "/" || common == "." || common == string(filepath.Separator) {
		return "", false
	}
	return common, true
}

func commonAncestor(a, b string) string {
	if a == b {
		return a
	}
	sep := string(filepath.Separator)
	as := strings.Split(a, sep)
	bs := strings.Split(b, sep)
	n := 0
	for n < len(as) && n < len(bs) && as[n] == bs[n] {
		n++
	}
	if n == 0 {
		return ""
	}
	ancestor := strings.Join(as[:n], sep)
	if ancestor == "" {
		return sep
	}
	return ancestor
}

// UnderDir reports whether path lies below dir (or equals it).
func UnderDir(path, dir string) bool {
	path = filepath.Clean(path)
	dir = filepath.Clean(dir)
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
