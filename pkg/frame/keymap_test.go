package frame

import (
	"testing"

	"github.com/datatug/millertug/pkg/miller"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		name      string
		key       tcell.Key
		r         rune
		mod       tcell.ModMask
		wantCmd   Command
		wantEvent miller.Event
	}{
		{"up", tcell.KeyUp, 0, tcell.ModNone, CommandNavigate, miller.MoveUp},
		{"k", tcell.KeyRune, 'k', tcell.ModNone, CommandNavigate, miller.MoveUp},
		{"down", tcell.KeyDown, 0, tcell.ModNone, CommandNavigate, miller.MoveDown},
		{"j", tcell.KeyRune, 'j', tcell.ModNone, CommandNavigate, miller.MoveDown},
		{"left", tcell.KeyLeft, 0, tcell.ModNone, CommandNavigate, miller.Ascend},
		{"h", tcell.KeyRune, 'h', tcell.ModNone, CommandNavigate, miller.Ascend},
		{"right", tcell.KeyRight, 0, tcell.ModNone, CommandNavigate, miller.Descend},
		{"l", tcell.KeyRune, 'l', tcell.ModNone, CommandNavigate, miller.Descend},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, CommandNavigate, miller.Descend},
		{"f5", tcell.KeyF5, 0, tcell.ModNone, CommandNavigate, miller.Refresh},
		{"ctrl_r", tcell.KeyCtrlR, 0, tcell.ModCtrl, CommandNavigate, miller.Refresh},
		{"ctrl_r_rune", tcell.KeyRune, 'r', tcell.ModCtrl, CommandNavigate, miller.Refresh},
		{"esc", tcell.KeyEscape, 0, tcell.ModNone, CommandQuit, 0},
		{"ctrl_c", tcell.KeyCtrlC, 0, tcell.ModCtrl, CommandQuit, 0},
		{"ctrl_c_rune", tcell.KeyRune, 'c', tcell.ModCtrl, CommandQuit, 0},
		{"q", tcell.KeyRune, 'q', tcell.ModNone, CommandQuit, 0},
		{"x", tcell.KeyRune, 'x', tcell.ModNone, CommandNone, 0},
		{"ctrl_x", tcell.KeyRune, 'x', tcell.ModCtrl, CommandNone, 0},
		{"tab", tcell.KeyTab, 0, tcell.ModNone, CommandNone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, e := MapKey(tcell.NewEventKey(tt.key, tt.r, tt.mod))
			assert.Equal(t, tt.wantCmd, cmd)
			if tt.wantCmd == CommandNavigate {
				assert.Equal(t, tt.wantEvent, e)
			}
		})
	}
}
