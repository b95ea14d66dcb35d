package sneatv

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	focusedStyle = tcell.StyleDefault.Foreground(tcell.ColorCornflowerBlue).Background(tcell.ColorBlack)
	blurredStyle = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
)

// BoxedContent is a primitive whose box can be framed by Boxed.
type BoxedContent interface {
	tview.Primitive
	GetTitle() string
	SetTitle(title string) *tview.Box
	SetBorderPadding(top, bottom, left, right int) *tview.Box
}

// Boxed draws its content and then a frame around it.
// The frame is double-lined while the content has focus.
type Boxed struct {
	BoxedContent
	options boxOptions
}

type boxOptions struct {
	leftBorder   bool
	leftPadding  int
	rightBorder  bool
	rightPadding int

	footer tview.Primitive
}

type BoxOption func(*boxOptions)

func WithLeftBorder(padding int) BoxOption {
	return func(opts *boxOptions) {
		opts.leftBorder = true
		opts.leftPadding = padding
	}
}

func WithRightBorder(padding int) BoxOption {
	return func(opts *boxOptions) {
		opts.rightBorder = true
		opts.rightPadding = padding
	}
}

// WithFooter centers footer on the bottom line.
func WithFooter(footer tview.Primitive) BoxOption {
	return func(opts *boxOptions) {
		opts.footer = footer
	}
}

func NewBoxed(inner BoxedContent, o ...BoxOption) *Boxed {
	b := Boxed{
		BoxedContent: inner,
	}
	for _, option := range o {
		option(&b.options)
	}
	left, right := b.options.leftPadding, b.options.rightPadding
	if b.options.leftBorder {
		left++
	}
	if b.options.rightBorder {
		right++
	}
	inner.SetBorderPadding(1, 1, left, right)
	return &b
}

func (b *Boxed) Draw(screen tcell.Screen) {
	b.BoxedContent.Draw(screen)
	b.drawBorders(screen)
}

type frameChars struct {
	horizontal, vertical    rune
	topLeft, topRight       rune
	bottomLeft, bottomRight rune
	titleLeft, titleRight   rune
}

var (
	focusedChars = frameChars{'═', '│', '╒', '╕', '╘', '╛', '╡', '╞'}
	blurredChars = frameChars{'─', '│', '┌', '┐', '└', '┘', '┤', '├'}
)

func (b *Boxed) drawBorders(screen tcell.Screen) {
	x, y, width, height := b.GetRect()
	if width <= 0 || height <= 0 {
		return
	}
	lineStyle, chars := blurredStyle, blurredChars
	if b.HasFocus() {
		lineStyle, chars = focusedStyle, focusedChars
	}

	horizontalStart, horizontalLen := x, width
	if b.options.leftBorder {
		horizontalStart++
		horizontalLen--
	}
	if b.options.rightBorder {
		horizontalLen--
	}
	if horizontalLen < 0 {
		horizontalLen = 0
	}

	horizontalBorder := func(y int, contentWidth int, drawContent func(x, y, width int)) {
		if contentWidth > horizontalLen-2 {
			contentWidth = horizontalLen - 2
		}
		if contentWidth <= 0 || drawContent == nil {
			for i := 0; i < horizontalLen; i++ {
				screen.SetContent(horizontalStart+i, y, chars.horizontal, nil, lineStyle)
			}
			return
		}
		leftLen := (horizontalLen - contentWidth) / 2
		for i := 0; i < leftLen-1; i++ {
			screen.SetContent(horizontalStart+i, y, chars.horizontal, nil, lineStyle)
		}
		screen.SetContent(horizontalStart+leftLen-1, y, chars.titleLeft, nil, lineStyle)

		contentStart := horizontalStart + leftLen
		drawContent(contentStart, y, contentWidth)

		rightStart := contentStart + contentWidth
		screen.SetContent(rightStart, y, chars.titleRight, nil, lineStyle)
		for i := rightStart + 1; i < horizontalStart+horizontalLen; i++ {
			screen.SetContent(i, y, chars.horizontal, nil, lineStyle)
		}
	}

	title := b.GetTitle()
	horizontalBorder(y, tview.TaggedStringWidth(title), func(x, y, width int) {
		tview.Print(screen, title, x, y, width, tview.AlignLeft, tcell.ColorGhostWhite)
	})

	if footer := b.options.footer; footer != nil {
		horizontalBorder(y+height-1, borderPrimitiveWidth(footer), func(x, y, width int) {
			footer.SetRect(x, y, width, 1)
			footer.Draw(screen)
		})
	} else {
		horizontalBorder(y+height-1, 0, nil)
	}

	verticalBorder := func(x int, top, bottom rune) {
		screen.SetContent(x, y, top, nil, lineStyle)
		for i := 1; i < height-1; i++ {
			screen.SetContent(x, y+i, chars.vertical, nil, lineStyle)
		}
		screen.SetContent(x, y+height-1, bottom, nil, lineStyle)
	}
	if b.options.leftBorder {
		verticalBorder(x, chars.topLeft, chars.bottomLeft)
	}
	if b.options.rightBorder {
		verticalBorder(x+width-1, chars.topRight, chars.bottomRight)
	}
}

func borderPrimitiveWidth(footer tview.Primitive) int {
	if footer == nil {
		return 0
	}
	switch footerTyped := footer.(type) {
	case *tview.TextView:
		text := footerTyped.GetText(false)
		if newline := strings.IndexByte(text, '\n'); newline >= 0 {
			text = text[:newline]
		}
		return tview.TaggedStringWidth(text)
	default:
		_, _, width, _ := footer.GetRect()
		if width > 0 {
			return width
		}
		return 0
	}
}
