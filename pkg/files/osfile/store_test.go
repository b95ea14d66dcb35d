package osfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/datatug/millertug/pkg/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	origHostname := osHostname
	defer func() { osHostname = origHostname }()

	tests := []struct {
		name         string
		root         string
		hostname     string
		hostnameErr  error
		wantRoot     string
		wantTitle    string
		wantRootPath string
	}{
		{"plain", "/tmp/", "test-host", nil, "/tmp", "test-host", "/tmp"},
		{"mdns_suffix", "/tmp", "my-mac.local", nil, "/tmp", "my-mac", "/tmp"},
		{"hostname_error", "/tmp", "", errors.New("hostname error"), "/tmp", "localhost", "/tmp"},
		{"empty_root", "", "h", nil, string(os.PathSeparator), "h", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osHostname = func() (string, error) {
				return tt.hostname, tt.hostnameErr
			}
			s := NewStore(tt.root)
			assert.Equal(t, tt.wantRoot, s.root)
			assert.Equal(t, tt.wantTitle, s.RootTitle())
			u := s.RootURL()
			assert.Equal(t, "file", u.Scheme)
			assert.Equal(t, tt.wantRootPath, u.Path)
			assert.True(t, files.IsLocal(s))
		})
	}
}

func TestStore_ReadDir(t *testing.T) {
	origReadDir := osReadDir
	defer func() { osReadDir = origReadDir }()

	s := NewStore("/")

	t.Run("context_cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		osReadDir = func(name string) ([]os.DirEntry, error) {
			t.Fatal("must not read a directory after cancellation")
			return nil, nil
		}
		entries, err := s.ReadDir(ctx, "/tmp")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, entries)
	})

	t.Run("partial_read", func(t *testing.T) {
		partial := []os.DirEntry{files.NewDirEntry("a", false)}
		osReadDir = func(name string) ([]os.DirEntry, error) {
			return partial, errors.New("permission denied")
		}
		entries, err := s.ReadDir(context.Background(), "/locked")
		assert.ErrorContains(t, err, "failed to read directory /locked")
		assert.ErrorContains(t, err, "permission denied")
		assert.Equal(t, partial, entries)
	})

	t.Run("real_dir", func(t *testing.T) {
		osReadDir = origReadDir
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))

		lister := files.NewStoreLister(NewStore(dir))
		entries := lister.ListChildren(context.Background(), dir)
		require.Len(t, entries, 2)
		assert.Equal(t, "sub", entries[0].Name())
		assert.True(t, entries[0].IsDir())
		assert.Equal(t, filepath.Join(dir, "a.txt"), entries[1].Path())
	})
}
