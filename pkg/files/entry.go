package files

// Entry is one child of an enumerated directory.
// It is an immutable value and is safe to compare with ==.
type Entry struct {
	path  string
	name  string
	isDir bool
}

func NewEntry(path, name string, isDir bool) Entry {
	return Entry{path: path, name: name, isDir: isDir}
}

// Path is the full path of the entry within its store.
func (e Entry) Path() string { return e.path }

// Name is the display label.
func (e Entry) Name() string { return e.name }

func (e Entry) IsDir() bool { return e.isDir }

func (e Entry) String() string {
	if e.isDir {
		return e.path + "/"
	}
	return e.path
}
