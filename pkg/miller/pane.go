package miller

import (
	"github.com/datatug/millertug/pkg/files"
)

// Pane is a directory listing with a selection cursor.
// When entries is non-empty, 0 <= selected < len(entries).
// Pane is a value: copies share the entries slice, which is never modified in place.
type Pane struct {
	entries  []files.Entry
	selected int
}

func NewPane(entries []files.Entry) Pane {
	if len(entries) == 0 {
		return Pane{}
	}
	return Pane{entries: entries}
}

func (p *Pane) Entries() []files.Entry {
	return p.entries
}

func (p *Pane) Selected() int {
	return p.selected
}

func (p *Pane) Len() int {
	return len(p.entries)
}

func (p *Pane) IsEmpty() bool {
	return len(p.entries) == 0
}

func (p *Pane) SelectNext() {
	if p.selected+1 < len(p.entries) {
		p.selected++
	}
}

func (p *Pane) SelectPrevious() {
	if p.selected > 0 {
		p.selected--
	}
}

// CurrentEntry returns the selected entry.
// The pane must not be empty; check IsEmpty first.
func (p *Pane) CurrentEntry() files.Entry {
	if len(p.entries) == 0 {
		panic("miller: CurrentEntry called on an empty pane")
	}
	return p.entries[p.selected]
}

// Locate moves the cursor to the entry with the given path.
// It reports false and leaves the cursor alone when there is no such entry.
func (p *Pane) Locate(path string) bool {
	for i, entry := range p.entries {
		if entry.Path() == path {
			p.selected = i
			return true
		}
	}
	return false
}

// selectIndex clamps i into the valid range.
func (p *Pane) selectIndex(i int) {
	switch {
	case len(p.entries) == 0 || i < 0:
		p.selected = 0
	case i >= len(p.entries):
		p.selected = len(p.entries) - 1
	default:
		p.selected = i
	}
}
