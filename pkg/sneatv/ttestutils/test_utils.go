package ttestutils

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// T is the part of testing.TB used by NewSimScreen.
type T interface {
	Helper()
	Fatalf(format string, args ...any)
}

var NewSimulationScreen = tcell.NewSimulationScreen

// ReadLine reads row y of the screen. Empty cells read as spaces.
func ReadLine(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		mainc, combc, _, _ := screen.GetContent(x, y)
		str := string(append([]rune{mainc}, combc...))
		if str == "" || str == "\x00" {
			b.WriteRune(' ')
			continue
		}
		b.WriteString(str)
	}
	return b.String()
}

// ReadLines reads the first height lines of the screen.
func ReadLines(screen tcell.Screen, width, height int) []string {
	lines := make([]string, height)
	for y := range lines {
		lines[y] = ReadLine(screen, y, width)
	}
	return lines
}

// NewSimScreen returns an initialized simulation screen of the given size.
func NewSimScreen(t T, charset string, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := NewSimulationScreen(charset)
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	s.SetSize(width, height)
	return s
}

// Text is the whole screen, one line per row.
func Text(screen tcell.Screen) string {
	width, height := screen.Size()
	return strings.Join(ReadLines(screen, width, height), "\n")
}

// Find returns the cell where text first appears, scanning rows top to bottom.
func Find(screen tcell.Screen, text string) (x, y int, ok bool) {
	width, height := screen.Size()
	for y, line := range ReadLines(screen, width, height) {
		if i := strings.Index(line, text); i >= 0 {
			return utf8.RuneCountInString(line[:i]), y, true
		}
	}
	return 0, 0, false
}
