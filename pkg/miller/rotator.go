package miller

import (
	"context"
	"path/filepath"

	"github.com/datatug/millertug/pkg/files"
	"github.com/datatug/millertug/pkg/logging"
	"github.com/sirupsen/logrus"
)

// Lister enumerates the immediate children of a directory.
// Implementations never fail: errors surface as an empty (or partial) result.
type Lister interface {
	ListChildren(ctx context.Context, path string) []files.Entry
}

// ParentDir returns the parent of p, or false when p is a root.
func ParentDir(p string) (string, bool) {
	parent := filepath.Dir(p)
	if parent == p {
		return "", false
	}
	return parent, true
}

// Rotator moves a State from one consistent snapshot to the next.
//
// Ascend and Descend reuse the listing already held by the neighbouring pane,
// so each of MoveUp, MoveDown, Ascend and Descend reads at most one directory.
// Not safe for concurrent use.
type Rotator struct {
	lister Lister
	parent func(path string) (string, bool)
	log    logrus.FieldLogger
}

type RotatorOption func(*Rotator)

// WithParentFunc replaces ParentDir, e.g. for stores with their own path rules.
func WithParentFunc(f func(path string) (string, bool)) RotatorOption {
	return func(r *Rotator) {
		r.parent = f
	}
}

func WithLogger(log logrus.FieldLogger) RotatorOption {
	return func(r *Rotator) {
		if log != nil {
			r.log = log
		}
	}
}

func NewRotator(lister Lister, o ...RotatorOption) *Rotator {
	r := &Rotator{
		lister: lister,
		parent: ParentDir,
		log:    logging.Discard(),
	}
	for _, opt := range o {
		opt(r)
	}
	return r
}

// Init builds the state for dir: its listing, its parent's listing
// and a preview of its first entry.
func (r *Rotator) Init(ctx context.Context, dir string) State {
	s := State{
		CursorPath: dir,
		Current:    NewPane(r.list(ctx, dir)),
	}
	r.syncAncestor(ctx, &s)
	r.syncDescendant(ctx, &s)
	return s
}

// Apply returns the state that follows s after e.
// Boundary cases (root, empty pane, file selected) return s unchanged.
func (r *Rotator) Apply(ctx context.Context, s State, e Event) State {
	switch e {
	case MoveUp:
		return r.move(ctx, s, (*Pane).SelectPrevious)
	case MoveDown:
		return r.move(ctx, s, (*Pane).SelectNext)
	case Ascend:
		return r.ascend(ctx, s)
	case Descend:
		return r.descend(ctx, s)
	case Refresh:
		return r.refresh(ctx, s)
	default:
		r.log.WithField("event", e).Debug("ignoring unknown navigation event")
		return s
	}
}

func (r *Rotator) move(ctx context.Context, s State, step func(*Pane)) State {
	if s.Current.IsEmpty() {
		return s
	}
	step(&s.Current)
	r.syncDescendant(ctx, &s)
	return s
}

func (r *Rotator) ascend(ctx context.Context, s State) State {
	parent, ok := r.parent(s.CursorPath)
	if !ok {
		return s
	}
	left := s.CursorPath

	s.Descendant, s.Current = s.Current, s.Ancestor
	s.Descendant.selectIndex(0)
	s.CursorPath = parent

	// The ancestor cursor normally already points at the directory we left.
	// It does not when that directory could not be located earlier.
	if entry, ok := s.Selection(); !ok || entry.Path() != left {
		if !s.Current.Locate(left) {
			r.log.WithFields(logrus.Fields{"dir": parent, "entry": left}).Debug("left directory not found in parent listing")
			r.syncDescendant(ctx, &s)
		}
	}

	r.syncAncestor(ctx, &s)
	return s
}

func (r *Rotator) descend(ctx context.Context, s State) State {
	entry, ok := s.Selection()
	if !ok || !entry.IsDir() || s.Descendant.IsEmpty() {
		return s
	}

	s.Ancestor, s.Current = s.Current, s.Descendant
	s.Current.selectIndex(0)
	s.CursorPath = entry.Path()

	r.syncDescendant(ctx, &s)
	return s
}

func (r *Rotator) refresh(ctx context.Context, s State) State {
	prevIndex := s.Current.Selected()
	var prevPath string
	if entry, ok := s.Selection(); ok {
		prevPath = entry.Path()
	}

	s.Current = NewPane(r.list(ctx, s.CursorPath))
	if prevPath == "" || !s.Current.Locate(prevPath) {
		s.Current.selectIndex(prevIndex)
	}

	r.syncAncestor(ctx, &s)
	r.syncDescendant(ctx, &s)
	return s
}

// syncAncestor lists the parent of s.CursorPath and points its cursor at s.CursorPath.
func (r *Rotator) syncAncestor(ctx context.Context, s *State) {
	parent, ok := r.parent(s.CursorPath)
	if !ok {
		s.Ancestor = Pane{}
		return
	}
	s.Ancestor = NewPane(r.list(ctx, parent))
	if !s.Ancestor.Locate(s.CursorPath) {
		r.log.WithFields(logrus.Fields{"dir": parent, "entry": s.CursorPath}).Debug("cursor path not found in parent listing")
	}
}

// syncDescendant lists the directory selected in s.Current, if any.
func (r *Rotator) syncDescendant(ctx context.Context, s *State) {
	entry, ok := s.Selection()
	if !ok || !entry.IsDir() {
		s.Descendant = Pane{}
		return
	}
	s.Descendant = NewPane(r.list(ctx, entry.Path()))
}

func (r *Rotator) list(ctx context.Context, dir string) []files.Entry {
	if r.lister == nil {
		return nil
	}
	return r.lister.ListChildren(ctx, dir)
}
