package crumbs

import "github.com/gdamore/tcell/v2"

func WithSeparator(separator string) func(bc *Breadcrumbs) {
	return func(bc *Breadcrumbs) {
		bc.separator = separator
	}
}

// WithSeparatorStartIndex makes items up to index i joined by a plain space.
func WithSeparatorStartIndex(i int) func(bc *Breadcrumbs) {
	return func(bc *Breadcrumbs) {
		bc.separatorStartIdx = i
	}
}

func WithColors(defaultColor, lastItemColor tcell.Color) func(bc *Breadcrumbs) {
	return func(bc *Breadcrumbs) {
		bc.defaultColor = defaultColor
		bc.lastItemColor = lastItemColor
	}
}
