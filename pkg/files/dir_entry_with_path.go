package files

import (
	"os"
	"path"
	"path/filepath"
)

// EntryWithDirPath binds a raw directory entry to the directory it was read from.
type EntryWithDirPath struct {
	os.DirEntry
	dir string
}

func NewEntryWithDirPath(entry os.DirEntry, dir string) EntryWithDirPath {
	name := entry.Name()
	if parent, _ := filepath.Split(name); parent != "" {
		panic("entry name can not have path: " + name)
	}
	return EntryWithDirPath{
		DirEntry: entry,
		dir:      dir,
	}
}

func (c EntryWithDirPath) DirPath() string {
	return c.dir
}

// FullName joins the directory and the name using OS path rules.
func (c EntryWithDirPath) FullName() string {
	return filepath.Join(c.dir, c.Name())
}

// String joins the directory and the name with forward slashes,
// as remote stores expect.
func (c EntryWithDirPath) String() string {
	return path.Join(c.dir, c.Name())
}

// Entry converts to the navigation value type.
// Local stores get OS path rules, remote ones forward slashes.
func (c EntryWithDirPath) Entry(local bool) Entry {
	var p string
	if local {
		p = c.FullName()
	} else {
		p = c.String()
	}
	return NewEntry(p, c.Name(), c.IsDir())
}
