package frame

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/datatug/millertug/pkg/logging"
	"github.com/datatug/millertug/pkg/miller"
	"github.com/datatug/millertug/pkg/sneatv"
	"github.com/datatug/millertug/pkg/sneatv/crumbs"
	"github.com/datatug/millertug/pkg/viewers"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
)

var newScreen = tcell.NewScreen

// ErrClosed is returned by Poll once the screen stopped delivering events.
var ErrClosed = errors.New("terminal closed")

const headerHeight = 3

const (
	pageList    = "list"
	pagePreview = "preview"
)

const (
	ancestorColumn = iota
	currentColumn
	descendantColumn
)

// Terminal owns the tcell screen. It renders State and delivers input events.
type Terminal struct {
	mu       sync.Mutex
	screen   tcell.Screen
	events   chan tcell.Event
	quit     chan struct{}
	released bool

	rootTitle   string
	preview     bool
	proportions []int
	parentDir   func(path string) (string, bool)
	log         logrus.FieldLogger

	root       *tview.Flex
	crumbs     *crumbs.Breadcrumbs
	panes      [3]*paneView
	boxes      [3]*sneatv.Boxed
	right      *tview.Pages
	previewer  *viewers.TextPreviewer
	previewBox *sneatv.Boxed
	// previewInfo is the preview box footer showing the file size.
	previewInfo *tview.TextView
}

type TerminalOption func(t *Terminal)

// WithRootTitle sets the first breadcrumb, typically the host or store name.
func WithRootTitle(title string) TerminalOption {
	return func(t *Terminal) {
		t.rootTitle = title
	}
}

// WithPreview enables previews of highlighted files. Only local files can be previewed.
func WithPreview(enabled bool) TerminalOption {
	return func(t *Terminal) {
		t.preview = enabled
	}
}

// WithColumnProportions sets relative widths of the three columns.
func WithColumnProportions(proportions []int) TerminalOption {
	return func(t *Terminal) {
		if len(proportions) == 3 {
			t.proportions = proportions
		}
	}
}

// WithParentFunc sets the parent rule used for the ancestor column title.
// It should match the rotator's.
func WithParentFunc(f func(path string) (string, bool)) TerminalOption {
	return func(t *Terminal) {
		if f != nil {
			t.parentDir = f
		}
	}
}

func WithTerminalLogger(log logrus.FieldLogger) TerminalOption {
	return func(t *Terminal) {
		t.log = log
	}
}

func NewTerminal(options ...TerminalOption) *Terminal {
	t := &Terminal{
		proportions: []int{15, 45, 30},
		parentDir:   miller.ParentDir,
		log:         logging.Discard(),
	}
	for _, o := range options {
		o(t)
	}
	t.layout()
	return t
}

func (t *Terminal) layout() {
	t.crumbs = crumbs.NewBreadcrumbs(
		crumbs.NewBreadcrumb(t.rootTitle),
		crumbs.WithSeparator(""),
		crumbs.WithSeparatorStartIndex(1),
		crumbs.WithColors(tcell.ColorGray, dirColor),
	)
	header := sneatv.NewBoxed(t.crumbs, sneatv.WithLeftBorder(0), sneatv.WithRightBorder(0))

	t.panes = [3]*paneView{
		newPaneView(selectionHighlighted),
		newPaneView(selectionMarked),
		newPaneView(selectionNone),
	}
	for i, pane := range t.panes {
		t.boxes[i] = sneatv.NewBoxed(pane, sneatv.WithLeftBorder(0), sneatv.WithRightBorder(0))
	}
	t.boxes[currentColumn].Focus(func(tview.Primitive) {})

	t.previewer = viewers.NewTextPreviewer()
	t.previewInfo = tview.NewTextView().SetTextColor(tcell.ColorGray)
	t.previewBox = sneatv.NewBoxed(t.previewer,
		sneatv.WithLeftBorder(0),
		sneatv.WithRightBorder(0),
		sneatv.WithFooter(t.previewInfo),
	)
	t.right = tview.NewPages().
		AddPage(pageList, t.boxes[descendantColumn], true, true).
		AddPage(pagePreview, t.previewBox, true, false)

	columns := tview.NewFlex().
		AddItem(t.boxes[ancestorColumn], 0, t.proportions[0], false).
		AddItem(t.boxes[currentColumn], 0, t.proportions[1], true).
		AddItem(t.right, 0, t.proportions[2], false)

	t.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, headerHeight, 0, false).
		AddItem(columns, 0, 1, true)
}

// Initialize enters the alternate screen and starts reading input.
// Calling it again after success is a no-op.
func (t *Terminal) Initialize() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.screen != nil {
		return nil
	}
	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err = screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()
	t.screen = screen
	t.events = make(chan tcell.Event, 16)
	t.quit = make(chan struct{})
	go pollEvents(screen, t.events, t.quit)
	return nil
}

func pollEvents(screen tcell.Screen, events chan<- tcell.Event, quit <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

// Teardown restores the terminal. It is safe to call more than once.
func (t *Terminal) Teardown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.screen == nil || t.released {
		return
	}
	t.released = true
	close(t.quit)
	t.screen.Fini()
}

// Poll waits up to timeout for the next event.
// A nil event with a nil error means the timeout elapsed.
func (t *Terminal) Poll(timeout time.Duration) (tcell.Event, error) {
	if t.events == nil {
		return nil, ErrClosed
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev, ok := <-t.events:
		if !ok {
			return nil, ErrClosed
		}
		return ev, nil
	case <-timer.C:
		return nil, nil
	}
}

// Resize forces a full repaint on the next Show.
func (t *Terminal) Resize() {
	if t.screen != nil {
		t.screen.Sync()
	}
}

// Draw renders s. It does nothing before Initialize.
func (t *Terminal) Draw(s miller.State) {
	t.update(s)
	if t.screen == nil {
		return
	}
	width, height := t.screen.Size()
	t.root.SetRect(0, 0, width, height)
	t.root.Draw(t.screen)
	t.screen.Show()
}

func (t *Terminal) update(s miller.State) {
	t.setPath(s.CursorPath)

	t.panes[ancestorColumn].setPane(s.Ancestor)
	t.panes[currentColumn].setPane(s.Current)
	t.panes[descendantColumn].setPane(s.Descendant)

	t.boxes[ancestorColumn].SetTitle(tview.Escape(t.parentTitle(s.CursorPath)))
	t.boxes[currentColumn].SetTitle(tview.Escape(dirTitle(s.CursorPath)))

	selection, ok := s.Selection()
	if !ok {
		t.boxes[descendantColumn].SetTitle("")
		t.showList()
		return
	}
	t.boxes[descendantColumn].SetTitle(tview.Escape(selection.Name()))
	if t.preview && !selection.IsDir() && s.Descendant.IsEmpty() {
		if t.previewer.Path() != selection.Path() {
			t.log.Debugf("preview %s", selection.Path())
		}
		t.previewer.Preview(selection.Path())
		t.previewBox.SetTitle(tview.Escape(selection.Name()))
		t.previewInfo.SetText(t.previewer.Info())
		t.right.SwitchToPage(pagePreview)
		return
	}
	t.showList()
}

func (t *Terminal) showList() {
	t.right.SwitchToPage(pageList)
	if t.previewer.Path() != "" {
		t.previewer.Reset()
	}
}

func (t *Terminal) setPath(p string) {
	t.crumbs.Clear()
	segments := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
	if len(segments) == 0 {
		t.crumbs.Push(crumbs.NewBreadcrumb("/"))
		return
	}
	for _, segment := range segments {
		t.crumbs.Push(crumbs.NewBreadcrumb("/" + segment))
	}
}

func dirTitle(p string) string {
	if p == "" {
		return ""
	}
	return filepath.Base(p)
}

func (t *Terminal) parentTitle(p string) string {
	parent, ok := t.parentDir(p)
	if !ok {
		return ""
	}
	return dirTitle(parent)
}
