package frame

import (
	"github.com/datatug/millertug/pkg/files"
	"github.com/datatug/millertug/pkg/miller"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const selectionMarker = "> "

type selectionStyle int

const (
	selectionNone selectionStyle = iota
	// selectionMarked prefixes the selected row with the marker on a blue background.
	selectionMarked
	// selectionHighlighted only tints the selected row.
	selectionHighlighted
)

// paneView lists one pane and keeps its selected row scrolled into view.
// Cells are rebuilt only when the pane gets another entries slice.
type paneView struct {
	*tview.Table
	style    selectionStyle
	selected int
	entries  []files.Entry
}

func newPaneView(style selectionStyle) *paneView {
	table := tview.NewTable()
	table.SetSelectable(false, false)
	return &paneView{Table: table, style: style, selected: -1}
}

func (v *paneView) setPane(p miller.Pane) {
	entries := p.Entries()
	selected := -1
	if v.style != selectionNone && len(entries) > 0 {
		selected = p.Selected()
	}
	if sameEntries(entries, v.entries) {
		if selected != v.selected {
			v.restyle(v.selected, false)
			v.restyle(selected, true)
			v.selected = selected
		}
		return
	}
	if len(entries) == 0 || len(v.entries) == 0 || entries[0] != v.entries[0] {
		// another directory, start from the top
		v.SetOffset(0, 0)
	}
	v.Clear()
	v.entries = entries
	v.selected = selected
	for row, e := range entries {
		v.SetCell(row, 0, v.newCell(e, row == selected))
	}
}

// sameEntries reports whether a and b are the same listing.
// Pane entries are never modified in place, so sharing a backing array is enough.
func sameEntries(a, b []files.Entry) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

func (v *paneView) restyle(row int, selected bool) {
	if row < 0 || row >= len(v.entries) {
		return
	}
	v.SetCell(row, 0, v.newCell(v.entries[row], selected))
}

func (v *paneView) newCell(e files.Entry, selected bool) *tview.TableCell {
	text := tview.Escape(entryLabel(e))
	if v.style == selectionMarked {
		if selected {
			text = selectionMarker + text
		} else {
			text = "  " + text
		}
	}
	cell := tview.NewTableCell(text).
		SetExpansion(1).
		SetTextColor(entryColor(e))
	if selected {
		switch v.style {
		case selectionMarked:
			cell.SetTextColor(tcell.ColorWhite).SetBackgroundColor(tcell.ColorBlue)
		case selectionHighlighted:
			cell.SetBackgroundColor(tcell.ColorDarkSlateGray)
		}
	}
	return cell
}

func (v *paneView) Draw(screen tcell.Screen) {
	_, _, _, height := v.GetInnerRect()
	if height > 0 && v.selected >= 0 {
		rowOffset, _ := v.GetOffset()
		if v.selected < rowOffset {
			rowOffset = v.selected
		} else if v.selected >= rowOffset+height {
			rowOffset = v.selected - height + 1
		}
		v.SetOffset(rowOffset, 0)
	}
	v.Table.Draw(screen)
}
