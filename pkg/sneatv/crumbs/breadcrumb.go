package crumbs

import "github.com/gdamore/tcell/v2"

// Breadcrumb is one item of a trail. A zero Color takes the trail's colors.
type Breadcrumb struct {
	Title string
	Color tcell.Color
}

func NewBreadcrumb(title string) Breadcrumb {
	return Breadcrumb{Title: title}
}

// WithColor returns a copy of b drawn in color regardless of its position.
func (b Breadcrumb) WithColor(color tcell.Color) Breadcrumb {
	b.Color = color
	return b
}

func (b Breadcrumb) color(isLast bool, defaultColor, lastItemColor tcell.Color) tcell.Color {
	switch {
	case b.Color != tcell.ColorDefault:
		return b.Color
	case isLast:
		return lastItemColor
	default:
		return defaultColor
	}
}
