package frame

import (
	"context"
	"time"

	"github.com/datatug/millertug/pkg/logging"
	"github.com/datatug/millertug/pkg/miller"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// Screen renders state and yields input. *Terminal implements it.
type Screen interface {
	Draw(s miller.State)
	Poll(timeout time.Duration) (tcell.Event, error)
	Resize()
}

// Navigator applies navigation events. *miller.Rotator implements it.
type Navigator interface {
	Apply(ctx context.Context, s miller.State, e miller.Event) miller.State
}

// Watcher reports changes in the directory under the cursor.
type Watcher interface {
	Watch(dir string) error
	Changes() <-chan struct{}
}

const DefaultPollInterval = 16 * time.Millisecond

// Loop draws, reads one input event and applies it, until quit.
type Loop struct {
	screen       Screen
	nav          Navigator
	watcher      Watcher
	pollInterval time.Duration
	log          logrus.FieldLogger
}

type LoopOption func(l *Loop)

func WithWatcher(w Watcher) LoopOption {
	return func(l *Loop) {
		l.watcher = w
	}
}

func WithPollInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.pollInterval = d
		}
	}
}

func WithLoopLogger(log logrus.FieldLogger) LoopOption {
	return func(l *Loop) {
		l.log = log
	}
}

func NewLoop(screen Screen, nav Navigator, options ...LoopOption) *Loop {
	l := &Loop{
		screen:       screen,
		nav:          nav,
		pollInterval: DefaultPollInterval,
		log:          logging.Discard(),
	}
	for _, o := range options {
		o(l)
	}
	return l
}

// Run returns the final state when the user quits or ctx is done.
// An error means input can no longer be read.
func (l *Loop) Run(ctx context.Context, s miller.State) (miller.State, error) {
	var watched string
	for {
		if ctx.Err() != nil {
			return s, nil
		}
		if l.watcher != nil && s.CursorPath != watched {
			watched = s.CursorPath
			if err := l.watcher.Watch(watched); err != nil {
				l.log.WithError(err).Debug("not watching current directory")
			}
		}

		l.screen.Draw(s)

		ev, err := l.screen.Poll(l.pollInterval)
		if err != nil {
			return s, err
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			l.screen.Resize()
		case *tcell.EventKey:
			switch cmd, e := MapKey(ev); cmd {
			case CommandQuit:
				return s, nil
			case CommandNavigate:
				l.log.Debugf("%v at %s", e, s.CursorPath)
				s = l.nav.Apply(ctx, s, e)
			}
		}

		if l.changed() {
			s = l.nav.Apply(ctx, s, miller.Refresh)
		}
	}
}

func (l *Loop) changed() bool {
	if l.watcher == nil {
		return false
	}
	select {
	case <-l.watcher.Changes():
		return true
	default:
		return false
	}
}
