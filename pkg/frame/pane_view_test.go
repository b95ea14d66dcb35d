package frame

import (
	"testing"

	"github.com/datatug/millertug/pkg/miller"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
)

func TestPaneView_setPane(t *testing.T) {
	pane := miller.NewPane(entries("/d", "a", "b/", "c"))
	v := newPaneView(selectionMarked)
	v.setPane(pane)
	cells := make([]*tview.TableCell, pane.Len())
	for row := range cells {
		cells[row] = v.GetCell(row, 0)
	}
	assert.Equal(t, "> a", cells[0].Text)

	t.Run("unchanged", func(t *testing.T) {
		v.setPane(pane)
		for row, cell := range cells {
			assert.Same(t, cell, v.GetCell(row, 0))
		}
	})

	t.Run("selection_moved", func(t *testing.T) {
		pane.SelectNext()
		v.setPane(pane)
		assert.Equal(t, "  a", v.GetCell(0, 0).Text)
		assert.Equal(t, "> b/", v.GetCell(1, 0).Text)
		assert.Same(t, cells[2], v.GetCell(2, 0), "rows away from the selection are kept")
		assert.Equal(t, 1, v.selected)
	})

	t.Run("new_listing", func(t *testing.T) {
		v.setPane(miller.NewPane(entries("/d", "a", "b/", "c")))
		assert.NotSame(t, cells[2], v.GetCell(2, 0))
		assert.Equal(t, "> a", v.GetCell(0, 0).Text)
		assert.Equal(t, 3, v.GetRowCount())
	})

	t.Run("emptied", func(t *testing.T) {
		v.setPane(miller.Pane{})
		assert.Equal(t, 0, v.GetRowCount())
		assert.Equal(t, -1, v.selected)
		v.setPane(miller.Pane{})
		assert.Equal(t, 0, v.GetRowCount())
	})

	t.Run("no_selection_style", func(t *testing.T) {
		plain := newPaneView(selectionNone)
		p := miller.NewPane(entries("/d", "a", "b"))
		plain.setPane(p)
		first := plain.GetCell(0, 0)
		p.SelectNext()
		plain.setPane(p)
		assert.Same(t, first, plain.GetCell(0, 0))
		assert.Equal(t, "b", plain.GetCell(1, 0).Text)
	})
}
