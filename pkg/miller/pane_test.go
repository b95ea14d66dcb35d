package miller

import (
	"testing"

	"github.com/datatug/millertug/pkg/files"
	"github.com/stretchr/testify/assert"
)

func testEntries(names ...string) []files.Entry {
	entries := make([]files.Entry, len(names))
	for i, name := range names {
		entries[i] = files.NewEntry("/d/"+name, name, false)
	}
	return entries
}

func TestNewPane(t *testing.T) {
	p := NewPane(testEntries("a", "b"))
	assert.Equal(t, 0, p.Selected())
	assert.Equal(t, 2, p.Len())
	assert.False(t, p.IsEmpty())

	assert.Equal(t, Pane{}, NewPane([]files.Entry{}))
	assert.Equal(t, Pane{}, NewPane(nil))
}

func TestPane_SelectNext(t *testing.T) {
	p := NewPane(testEntries("a", "b", "c"))
	p.SelectNext()
	assert.Equal(t, 1, p.Selected())
	p.SelectNext()
	p.SelectNext()
	assert.Equal(t, 2, p.Selected(), "must stop at the last entry")

	var empty Pane
	empty.SelectNext()
	assert.Equal(t, 0, empty.Selected())
}

func TestPane_SelectPrevious(t *testing.T) {
	p := NewPane(testEntries("a", "b"))
	p.SelectPrevious()
	assert.Equal(t, 0, p.Selected())
	p.SelectNext()
	p.SelectPrevious()
	assert.Equal(t, 0, p.Selected())
}

func TestPane_CurrentEntry(t *testing.T) {
	p := NewPane(testEntries("a", "b"))
	p.SelectNext()
	assert.Equal(t, "b", p.CurrentEntry().Name())

	var empty Pane
	assert.PanicsWithValue(t, "miller: CurrentEntry called on an empty pane", func() {
		_ = empty.CurrentEntry()
	})
}

func TestPane_Locate(t *testing.T) {
	p := NewPane(testEntries("a", "b", "c"))
	assert.True(t, p.Locate("/d/c"))
	assert.Equal(t, 2, p.Selected())

	assert.False(t, p.Locate("/d/missing"))
	assert.Equal(t, 2, p.Selected(), "a miss leaves the cursor alone")

	var empty Pane
	assert.False(t, empty.Locate("/d/a"))
}

func TestPane_selectIndex(t *testing.T) {
	tests := []struct {
		name string
		len  int
		in   int
		want int
	}{
		{"in_range", 3, 1, 1},
		{"negative", 3, -1, 0},
		{"past_end", 3, 7, 2},
		{"empty", 0, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := []string{"a", "b", "c"}[:tt.len]
			p := NewPane(testEntries(names...))
			p.selectIndex(tt.in)
			assert.Equal(t, tt.want, p.Selected())
		})
	}
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "MoveUp", MoveUp.String())
	assert.Equal(t, "MoveDown", MoveDown.String())
	assert.Equal(t, "Ascend", Ascend.String())
	assert.Equal(t, "Descend", Descend.String())
	assert.Equal(t, "Refresh", Refresh.String())
	assert.Equal(t, "Event(42)", Event(42).String())
}
