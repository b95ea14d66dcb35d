// Package chroma2tcell turns chroma token streams into tview color markup.
package chroma2tcell

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rivo/tview"
)

// DefaultStyle is the chroma style used for file previews.
const DefaultStyle = "dracula"

var getStyle = styles.Get

var getFallbackStyle = func() *chroma.Style {
	return styles.Fallback
}

var matchLexer = lexers.Match

// Colorizer renders source text in the colors of one chroma style.
type Colorizer struct {
	style *chroma.Style
}

// New resolves styleName, falling back to chroma's default style when unknown.
func New(styleName string) *Colorizer {
	style := getStyle(styleName)
	if style == nil {
		style = getFallbackStyle()
	}
	return &Colorizer{style: style}
}

// Markup tokenises text with lexer and returns it as tview markup.
// Token text is escaped so brackets in the source survive tview's tag parser.
// Runs of tokens sharing a style are wrapped in a single tag.
func (c *Colorizer) Markup(text string, lexer chroma.Lexer) (string, error) {
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var run strings.Builder
	runTag := ""
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runTag == "" {
			sb.WriteString(run.String())
		} else {
			sb.WriteString(runTag)
			sb.WriteString(run.String())
			sb.WriteString(resetTag(runTag))
		}
		run.Reset()
	}
	for _, token := range iterator.Tokens() {
		if token.Value == "" {
			continue
		}
		if t := styleTag(c.style.Get(token.Type)); t != runTag {
			flush()
			runTag = t
		}
		run.WriteString(tview.Escape(token.Value))
	}
	flush()
	return sb.String(), nil
}

// File picks a lexer by file name.
// ok is false when no lexer matches; text is then returned escaped but uncolored.
func (c *Colorizer) File(name, text string) (result string, ok bool, err error) {
	lexer := matchLexer(name)
	if lexer == nil {
		return tview.Escape(text), false, nil
	}
	result, err = c.Markup(text, chroma.Coalesce(lexer))
	return result, err == nil, err
}

// Colorize renders text with lexer in the styleName style.
func Colorize(text, styleName string, lexer chroma.Lexer) (string, error) {
	return New(styleName).Markup(text, lexer)
}

// ColorizeFile renders text in DefaultStyle with a lexer matched by file name.
func ColorizeFile(name, text string) (string, bool, error) {
	return New(DefaultStyle).File(name, text)
}

// styleTag is the tview tag for entry's foreground and text attributes,
// or "" when it sets neither.
func styleTag(entry chroma.StyleEntry) string {
	var attrs []byte
	if entry.Bold == chroma.Yes {
		attrs = append(attrs, 'b')
	}
	if entry.Italic == chroma.Yes {
		attrs = append(attrs, 'i')
	}
	if entry.Underline == chroma.Yes {
		attrs = append(attrs, 'u')
	}
	fg := "-"
	if entry.Colour.IsSet() {
		fg = entry.Colour.String()
	}
	switch {
	case len(attrs) > 0:
		return "[" + fg + "::" + string(attrs) + "]"
	case fg != "-":
		return "[" + fg + "]"
	default:
		return ""
	}
}

func resetTag(tag string) string {
	if strings.Contains(tag, "::") {
		return "[-::-]"
	}
	return "[-]"
}
