// Package httpfile browses directories published as HTML index pages
// (nginx autoindex, Apache mod_autoindex, python -m http.server).
package httpfile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/datatug/millertug/pkg/files"
)

// maxListingSize bounds how much of an index page is read.
const maxListingSize = 4 << 20

const userAgent = "millertug"

// hrefRegexp matches the target of an anchor, single or double quoted,
// with any other attributes around it.
var hrefRegexp = regexp.MustCompile(`(?i)<a\s[^>]*?href\s*=\s*["']([^"']+)["']`)

var _ files.Store = (*Store)(nil)

type Store struct {
	root   url.URL
	client *http.Client
}

type StoreOption func(*Store)

func WithClient(client *http.Client) StoreOption {
	return func(s *Store) {
		s.client = client
	}
}

func NewStore(root url.URL, o ...StoreOption) *Store {
	s := &Store{
		root:   root,
		client: http.DefaultClient,
	}
	for _, opt := range o {
		opt(s)
	}
	return s
}

func (s *Store) RootURL() url.URL {
	return s.root
}

// RootTitle is the root URL without credentials.
func (s *Store) RootTitle() string {
	u := s.root
	u.User = nil
	return u.String()
}

func (s *Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	u := s.root
	u.Path = path.Join("/", name)
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", name, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index of %s: %w", name, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index of %s: %s", name, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListingSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read index of %s: %w", name, err)
	}
	return parseIndex(u.Path, string(body)), nil
}

// parseIndex keeps links that point at immediate children of dir.
func parseIndex(dir, body string) []os.DirEntry {
	var entries []os.DirEntry
	seen := make(map[string]struct{})
	for _, m := range hrefRegexp.FindAllStringSubmatch(body, -1) {
		name, isDir, ok := childName(dir, m[1])
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		entries = append(entries, files.NewDirEntry(name, isDir))
	}
	return entries
}

func childName(dir, href string) (name string, isDir bool, ok bool) {
	ref, err := url.Parse(href)
	if err != nil || ref.Scheme != "" || ref.Host != "" || ref.Path == "" {
		return "", false, false
	}
	p := ref.Path
	if strings.HasPrefix(p, "/") {
		if !strings.HasPrefix(p, dir) {
			return "", false, false
		}
		p = strings.TrimPrefix(p, dir)
	}
	p = strings.TrimPrefix(p, "./")
	isDir = strings.HasSuffix(p, "/")
	p = strings.TrimSuffix(p, "/")
	if p == "" || p == "." || p == ".." || strings.Contains(p, "/") {
		return "", false, false
	}
	return p, isDir, true
}
