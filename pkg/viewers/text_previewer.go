package viewers

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/datatug/millertug/pkg/chroma2tcell"
	"github.com/datatug/millertug/pkg/fsutils"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MaxPreviewSize is how much of a file is read for a preview.
const MaxPreviewSize = 10 * 1024

var readFileData = fsutils.ReadFileData
var osStat = os.Stat

// TextPreviewer shows the head of a local file, highlighted when chroma
// knows the file type.
type TextPreviewer struct {
	*tview.TextView
	path    string
	size    int64
	modTime time.Time
}

func NewTextPreviewer() *TextPreviewer {
	return &TextPreviewer{
		size: -1,
		TextView: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(false).
			SetScrollable(false),
	}
}

// Path of the file currently shown, empty when cleared.
func (p *TextPreviewer) Path() string {
	return p.path
}

// Preview loads fullName unless it is already shown and unchanged on disk.
func (p *TextPreviewer) Preview(fullName string) {
	size, modTime := int64(-1), time.Time{}
	if fi, err := osStat(fullName); err == nil {
		size, modTime = fi.Size(), fi.ModTime()
	}
	if fullName == p.path && size == p.size && modTime.Equal(p.modTime) {
		return
	}
	p.path = fullName
	p.size = size
	p.modTime = modTime
	p.SetTextColor(tview.Styles.PrimaryTextColor)

	data, err := p.readFile(fullName, MaxPreviewSize)
	if err != nil {
		return
	}
	colorized, _, err := chroma2tcell.ColorizeFile(fullName, string(data))
	if err != nil {
		p.showError("Failed to format file: " + err.Error())
		return
	}
	p.SetText(colorized)
	p.ScrollToBeginning()
}

// Info describes how much of the file is shown: its size, or
// "10K of 2.1M" when only the head fits. Empty when the size is unknown.
func (p *TextPreviewer) Info() string {
	switch {
	case p.path == "" || p.size < 0:
		return ""
	case p.size > MaxPreviewSize:
		return fsutils.ShortSize(MaxPreviewSize) + " of " + fsutils.ShortSize(p.size)
	default:
		return fsutils.ShortSize(p.size)
	}
}

// Reset forgets the shown file.
func (p *TextPreviewer) Reset() {
	p.path = ""
	p.size = -1
	p.modTime = time.Time{}
	p.Clear()
}

func (p *TextPreviewer) readFile(fullName string, max int) (data []byte, err error) {
	data, err = readFileData(fullName, max)
	if err != nil && !errors.Is(err, io.EOF) {
		errText := fmt.Sprintf("Failed to read file %s: %s", fullName, err.Error())
		p.showError(errText)
		return
	}
	return data, nil
}

func (p *TextPreviewer) showError(text string) {
	p.SetText(tview.Escape(text))
	p.SetTextColor(tcell.ColorRed)
}
