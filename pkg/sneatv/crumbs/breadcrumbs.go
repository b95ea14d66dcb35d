package crumbs

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const ellipsis = "…"

// Breadcrumbs is a one-line trail of items that starts with a fixed home item.
// When the trail does not fit, items after home are elided from the left
// so the deepest item stays visible.
type Breadcrumbs struct {
	*tview.Box
	items             []Breadcrumb
	separator         string
	separatorStartIdx int
	defaultColor      tcell.Color
	lastItemColor     tcell.Color
}

func NewBreadcrumbs(home Breadcrumb, options ...func(bc *Breadcrumbs)) *Breadcrumbs {
	bc := &Breadcrumbs{
		Box:           tview.NewBox(),
		items:         []Breadcrumb{home},
		separator:     " > ",
		defaultColor:  tcell.ColorGray,
		lastItemColor: tcell.ColorWhiteSmoke,
	}
	for _, o := range options {
		o(bc)
	}
	return bc
}

func (b *Breadcrumbs) Push(item Breadcrumb) {
	b.items = append(b.items, item)
}

// Clear removes everything but the home item.
func (b *Breadcrumbs) Clear() {
	b.items = b.items[:1]
}

func (b *Breadcrumbs) Items() []Breadcrumb {
	return b.items
}

// String is the plain text of the full trail.
func (b *Breadcrumbs) String() string {
	var sb strings.Builder
	for i, item := range b.items {
		sb.WriteString(b.separatorBefore(i))
		sb.WriteString(item.Title)
	}
	return sb.String()
}

func (b *Breadcrumbs) separatorBefore(i int) string {
	switch {
	case i == 0:
		return ""
	case i > b.separatorStartIdx:
		return b.separator
	default:
		return " "
	}
}

type segment struct {
	text  string
	color tcell.Color
}

func (b *Breadcrumbs) segments() []segment {
	segments := make([]segment, 0, len(b.items)*2)
	last := len(b.items) - 1
	for i, item := range b.items {
		if sep := b.separatorBefore(i); sep != "" {
			segments = append(segments, segment{text: sep, color: b.defaultColor})
		}
		segments = append(segments, segment{
			text:  item.Title,
			color: item.color(i == last, b.defaultColor, b.lastItemColor),
		})
	}
	return segments
}

func segmentsWidth(segments []segment) (width int) {
	for _, s := range segments {
		width += tview.TaggedStringWidth(tview.Escape(s.text))
	}
	return width
}

func (b *Breadcrumbs) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
	x, y, width, height := b.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	segments := b.segments()
	if segmentsWidth(segments) > width && len(segments) > 1 {
		home := segments[0]
		rest := segments[1:]
		// rest alternates separator, item
		for len(rest) > 2 && segmentsWidth([]segment{home})+1+segmentsWidth(rest) > width {
			rest = rest[2:]
		}
		segments = append([]segment{home, {text: ellipsis, color: b.defaultColor}}, rest...)
	}

	for _, s := range segments {
		if width <= 0 {
			break
		}
		_, printed := tview.Print(screen, tview.Escape(s.text), x, y, width, tview.AlignLeft, s.color)
		x += printed
		width -= printed
	}
}
