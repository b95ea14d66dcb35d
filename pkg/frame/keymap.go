package frame

import (
	"github.com/datatug/millertug/pkg/miller"
	"github.com/gdamore/tcell/v2"
)

// Command is what a key asks the loop to do.
type Command int

const (
	CommandNone Command = iota
	CommandNavigate
	CommandQuit
)

// MapKey translates a key press.
// The returned event is meaningful only with CommandNavigate.
func MapKey(ev *tcell.EventKey) (Command, miller.Event) {
	switch ev.Key() {
	case tcell.KeyUp:
		return CommandNavigate, miller.MoveUp
	case tcell.KeyDown:
		return CommandNavigate, miller.MoveDown
	case tcell.KeyLeft:
		return CommandNavigate, miller.Ascend
	case tcell.KeyRight, tcell.KeyEnter:
		return CommandNavigate, miller.Descend
	case tcell.KeyF5, tcell.KeyCtrlR:
		return CommandNavigate, miller.Refresh
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CommandQuit, 0
	case tcell.KeyRune:
		return mapRune(ev.Rune(), ev.Modifiers())
	}
	return CommandNone, 0
}

func mapRune(r rune, mod tcell.ModMask) (Command, miller.Event) {
	if mod&tcell.ModCtrl != 0 {
		switch r {
		case 'c', 'C':
			return CommandQuit, 0
		case 'r', 'R':
			return CommandNavigate, miller.Refresh
		}
		return CommandNone, 0
	}
	switch r {
	case 'k':
		return CommandNavigate, miller.MoveUp
	case 'j':
		return CommandNavigate, miller.MoveDown
	case 'h':
		return CommandNavigate, miller.Ascend
	case 'l':
		return CommandNavigate, miller.Descend
	case 'q':
		return CommandQuit, 0
	}
	return CommandNone, 0
}
