package miller

import "github.com/datatug/millertug/pkg/files"

// State is the navigation state: three panes bound to fixed roles
// and the path whose children fill the Current pane.
type State struct {
	// Ancestor lists the parent of CursorPath with CursorPath selected.
	// It is empty at the file system root.
	Ancestor Pane
	// Current lists CursorPath.
	Current Pane
	// Descendant lists the directory selected in Current, cursor at 0.
	// It is empty when the selection is a file or Current is empty.
	Descendant Pane

	CursorPath string
}

// Selection returns the entry selected in the Current pane, if any.
func (s *State) Selection() (entry files.Entry, ok bool) {
	if s.Current.IsEmpty() {
		return entry, false
	}
	return s.Current.CurrentEntry(), true
}
