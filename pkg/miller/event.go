package miller

import "fmt"

// Event is a navigation request handled by Rotator.Apply.
type Event int

const (
	// MoveUp selects the previous sibling.
	MoveUp Event = iota + 1
	// MoveDown selects the next sibling.
	MoveDown
	// Ascend goes to the parent directory.
	Ascend
	// Descend enters the selected directory.
	Descend
	// Refresh re-reads the listings of all three panes.
	Refresh
)

func (e Event) String() string {
	switch e {
	case MoveUp:
		return "MoveUp"
	case MoveDown:
		return "MoveDown"
	case Ascend:
		return "Ascend"
	case Descend:
		return "Descend"
	case Refresh:
		return "Refresh"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}
