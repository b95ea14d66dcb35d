package fsutils

import (
	"os"
	"path/filepath"
	"strings"
)

var osStat = os.Stat

// DirExists reports whether path names a directory.
// A missing path is not an error.
func DirExists(path string) (bool, error) {
	info, err := osStat(path)
	switch {
	case err == nil:
		return info.IsDir(), nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(p string) string {
	return ExpandHomeFunc(p, os.UserHomeDir)
}

// ExpandHomeFunc is ExpandHome with the home directory supplied by homeDir.
// "~user" forms and paths without a leading "~" are returned unchanged,
// as is p when homeDir fails.
func ExpandHomeFunc(p string, homeDir func() (string, error)) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := homeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
}
