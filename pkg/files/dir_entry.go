package files

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

var _ os.DirEntry = DirEntry{}

// DirEntry is an os.DirEntry for stores that do not read the local disk.
// Info is nil unless size or modification time were supplied.
type DirEntry struct {
	name    string
	isDir   bool
	size    int64
	modTime time.Time
	hasInfo bool
}

type DirEntryOption func(*DirEntry)

func Size(v int64) DirEntryOption {
	return func(d *DirEntry) {
		d.size = v
		d.hasInfo = true
	}
}

func ModTime(v time.Time) DirEntryOption {
	return func(d *DirEntry) {
		d.modTime = v
		d.hasInfo = true
	}
}

// NewDirEntry panics when name contains a path separator.
func NewDirEntry(name string, isDir bool, o ...DirEntryOption) DirEntry {
	if parent, _ := filepath.Split(name); parent != "" {
		panic("dir entry name can not have path: " + name)
	}
	d := DirEntry{name: name, isDir: isDir}
	for _, opt := range o {
		opt(&d)
	}
	return d
}

func (d DirEntry) Name() string { return d.name }
func (d DirEntry) IsDir() bool  { return d.isDir }

func (d DirEntry) Type() fs.FileMode {
	if d.isDir {
		return fs.ModeDir
	}
	return 0
}

func (d DirEntry) Info() (fs.FileInfo, error) {
	if !d.hasInfo {
		return nil, nil
	}
	return fileInfo{d}, nil
}

type fileInfo struct {
	DirEntry
}

func (f fileInfo) Size() int64        { return f.size }
func (f fileInfo) Mode() fs.FileMode  { return f.Type() }
func (f fileInfo) ModTime() time.Time { return f.modTime }
func (f fileInfo) Sys() any           { return nil }
