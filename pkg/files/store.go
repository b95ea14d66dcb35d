package files

import (
	"context"
	"net/url"
	"os"
)

// Store reads immediate children of directories from a file system,
// local or remote.
type Store interface {
	RootTitle() string
	RootURL() url.URL
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)
}

// IsLocal reports whether the store reads the local file system.
func IsLocal(s Store) bool {
	if s == nil {
		return false
	}
	root := s.RootURL()
	return root.Scheme == "file"
}
