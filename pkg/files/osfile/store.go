// Package osfile implements files.Store over the local file system.
package osfile

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/datatug/millertug/pkg/files"
)

var osReadDir = os.ReadDir
var osHostname = os.Hostname

var _ files.Store = (*Store)(nil)

type Store struct {
	root     string
	hostname string
}

// NewStore roots the store at root, the file system root when empty.
func NewStore(root string) *Store {
	if root == "" {
		root = string(os.PathSeparator)
	}
	hostname, err := osHostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}
	return &Store{
		root:     filepath.Clean(root),
		hostname: hostname,
	}
}

func (s *Store) RootURL() url.URL {
	return url.URL{Scheme: "file", Path: filepath.ToSlash(s.root)}
}

// RootTitle is the host name without an mDNS ".local" suffix.
func (s *Store) RootTitle() string {
	return strings.TrimSuffix(s.hostname, ".local")
}

// ReadDir returns whatever entries were read along with any error.
func (s *Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := osReadDir(name)
	if err != nil {
		return entries, fmt.Errorf("failed to read directory %s: %w", name, err)
	}
	return entries, nil
}
