package files

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/datatug/millertug/pkg/logging"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var osStat = os.Stat

// StoreLister lists immediate children of a directory through a Store.
// It never fails: read errors are logged and yield an empty listing.
// Not safe for concurrent use (the collator keeps internal buffers).
type StoreLister struct {
	store      Store
	log        logrus.FieldLogger
	maxEntries int
	collator   *collate.Collator
}

type ListerOption func(*StoreLister)

func WithLogger(log logrus.FieldLogger) ListerOption {
	return func(l *StoreLister) {
		if log != nil {
			l.log = log
		}
	}
}

// WithMaxEntries caps the number of children kept per directory. 0 means no cap.
func WithMaxEntries(n int) ListerOption {
	return func(l *StoreLister) {
		l.maxEntries = n
	}
}

// WithLanguage sets the collation used to order names.
func WithLanguage(tag language.Tag) ListerOption {
	return func(l *StoreLister) {
		l.collator = collate.New(tag, collate.Numeric)
	}
}

func NewStoreLister(store Store, o ...ListerOption) *StoreLister {
	l := &StoreLister{
		store:    store,
		log:      logging.Discard(),
		collator: collate.New(language.Und, collate.Numeric),
	}
	for _, opt := range o {
		opt(l)
	}
	return l
}

// ListChildren returns the children of dir, directories first.
func (l *StoreLister) ListChildren(ctx context.Context, dir string) []Entry {
	if l.store == nil {
		return nil
	}
	children, err := l.store.ReadDir(ctx, dir)
	if err != nil {
		l.log.WithError(err).WithField("dir", dir).Debug("failed to read directory")
		if len(children) == 0 {
			return nil
		}
	}

	local := IsLocal(l.store)
	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		name := child.Name()
		if name == "" || name == "." || name == ".." {
			continue
		}
		if parent, _ := filepath.Split(name); parent != "" {
			l.log.WithField("name", name).Debug("skipping entry with path in name")
			continue
		}
		withPath := NewEntryWithDirPath(child, dir).Entry(local)
		isDir := withPath.IsDir()
		if !isDir && local && child.Type()&os.ModeSymlink != 0 {
			if fi, statErr := osStat(withPath.Path()); statErr == nil {
				isDir = fi.IsDir()
			}
		}
		entries = append(entries, NewEntry(withPath.Path(), norm.NFC.String(name), isDir))
	}
	entries = l.sortEntries(entries)
	if l.maxEntries > 0 && len(entries) > l.maxEntries {
		l.log.WithFields(logrus.Fields{
			"dir":   dir,
			"count": len(entries),
			"max":   l.maxEntries,
		}).Debug("directory listing truncated")
		entries = entries[:l.maxEntries]
	}
	return entries
}

// sortEntries orders directories first, including symlinks to directories,
// then by collated name.
func (l *StoreLister) sortEntries(entries []Entry) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		if c := l.collator.CompareString(entries[i].Name(), entries[j].Name()); c != 0 {
			return c < 0
		}
		return entries[i].Name() < entries[j].Name()
	})
	return entries
}
