package frame

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/datatug/millertug/pkg/miller"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedScreen replays events; a nil event stands for a poll timeout.
type scriptedScreen struct {
	events   []tcell.Event
	draws    []miller.State
	resizes  int
	timeouts []time.Duration
}

func (s *scriptedScreen) Draw(state miller.State) {
	s.draws = append(s.draws, state)
}

func (s *scriptedScreen) Poll(timeout time.Duration) (tcell.Event, error) {
	s.timeouts = append(s.timeouts, timeout)
	if len(s.events) == 0 {
		return nil, ErrClosed
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func (s *scriptedScreen) Resize() {
	s.resizes++
}

// recordingNavigator appends "/x" to the cursor path on Descend.
type recordingNavigator struct {
	events []miller.Event
}

func (n *recordingNavigator) Apply(_ context.Context, s miller.State, e miller.Event) miller.State {
	n.events = append(n.events, e)
	if e == miller.Descend {
		s.CursorPath += "/x"
	}
	return s
}

type fakeWatcher struct {
	dirs    []string
	changes chan struct{}
	err     error
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{changes: make(chan struct{}, 1)}
}

func (w *fakeWatcher) Watch(dir string) error {
	w.dirs = append(w.dirs, dir)
	return w.err
}

func (w *fakeWatcher) Changes() <-chan struct{} {
	return w.changes
}

func key(k tcell.Key) tcell.Event {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestLoop_Run(t *testing.T) {
	ctx := context.Background()
	start := miller.State{CursorPath: "/a"}

	t.Run("navigate_then_quit", func(t *testing.T) {
		screen := &scriptedScreen{events: []tcell.Event{
			key(tcell.KeyDown),
			runeKey('j'),
			tcell.NewEventResize(100, 40),
			nil,
			runeKey('x'),
			key(tcell.KeyUp),
			runeKey('q'),
			key(tcell.KeyDown),
		}}
		nav := &recordingNavigator{}
		final, err := NewLoop(screen, nav).Run(ctx, start)
		require.NoError(t, err)
		assert.Equal(t, start, final)
		assert.Equal(t, []miller.Event{miller.MoveDown, miller.MoveDown, miller.MoveUp}, nav.events)
		assert.Equal(t, 1, screen.resizes)
		assert.Len(t, screen.draws, 7)
		assert.Len(t, screen.events, 1, "events after quit must not be consumed")
		assert.Equal(t, DefaultPollInterval, screen.timeouts[0])
	})

	t.Run("escape_quits", func(t *testing.T) {
		screen := &scriptedScreen{events: []tcell.Event{key(tcell.KeyEscape)}}
		_, err := NewLoop(screen, &recordingNavigator{}).Run(ctx, start)
		assert.NoError(t, err)
	})

	t.Run("input_closed", func(t *testing.T) {
		screen := &scriptedScreen{events: []tcell.Event{key(tcell.KeyRight)}}
		final, err := NewLoop(screen, &recordingNavigator{}).Run(ctx, start)
		assert.ErrorIs(t, err, ErrClosed)
		assert.Equal(t, "/a/x", final.CursorPath)
	})

	t.Run("context_cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		screen := &scriptedScreen{events: []tcell.Event{key(tcell.KeyDown)}}
		nav := &recordingNavigator{}
		final, err := NewLoop(screen, nav).Run(cancelled, start)
		assert.NoError(t, err)
		assert.Equal(t, start, final)
		assert.Empty(t, screen.draws)
		assert.Empty(t, nav.events)
	})

	t.Run("poll_interval", func(t *testing.T) {
		screen := &scriptedScreen{events: []tcell.Event{runeKey('q')}}
		_, _ = NewLoop(screen, &recordingNavigator{}, WithPollInterval(5*time.Millisecond), WithPollInterval(0)).Run(ctx, start)
		assert.Equal(t, []time.Duration{5 * time.Millisecond}, screen.timeouts)
	})
}

func TestLoop_Run_watcher(t *testing.T) {
	ctx := context.Background()

	t.Run("retargets_on_cursor_change", func(t *testing.T) {
		watcher := newFakeWatcher()
		screen := &scriptedScreen{events: []tcell.Event{
			nil,
			key(tcell.KeyRight),
			nil,
			runeKey('q'),
		}}
		_, err := NewLoop(screen, &recordingNavigator{}, WithWatcher(watcher)).Run(ctx, miller.State{CursorPath: "/a"})
		require.NoError(t, err)
		assert.Equal(t, []string{"/a", "/a/x"}, watcher.dirs)
	})

	t.Run("pending_change_refreshes_once", func(t *testing.T) {
		watcher := newFakeWatcher()
		watcher.changes <- struct{}{}
		nav := &recordingNavigator{}
		screen := &scriptedScreen{events: []tcell.Event{nil, nil, runeKey('q')}}
		_, err := NewLoop(screen, nav, WithWatcher(watcher)).Run(ctx, miller.State{CursorPath: "/a"})
		require.NoError(t, err)
		assert.Equal(t, []miller.Event{miller.Refresh}, nav.events)
	})

	t.Run("watch_error_is_not_fatal", func(t *testing.T) {
		watcher := newFakeWatcher()
		watcher.err = errors.New("not a local directory")
		screen := &scriptedScreen{events: []tcell.Event{nil, runeKey('q')}}
		_, err := NewLoop(screen, &recordingNavigator{}, WithWatcher(watcher)).Run(ctx, miller.State{CursorPath: "/a"})
		assert.NoError(t, err)
		assert.Equal(t, []string{"/a"}, watcher.dirs)
	})
}
