package ftpfile

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/datatug/millertug/pkg/files"
	"github.com/jlaffaye/ftp"
)

const dialTimeout = 5 * time.Second

type serverConn interface {
	Login(user, password string) error
	List(path string) ([]*ftp.Entry, error)
	Quit() error
}

var dial = func(addr string, options ...ftp.DialOption) (serverConn, error) {
	return ftp.Dial(addr, options...)
}

var _ files.Store = (*Store)(nil)

// TLSMode selects how a connection is secured.
type TLSMode int

const (
	TLSNone TLSMode = iota
	// TLSExplicit upgrades a plain connection with AUTH TLS.
	TLSExplicit
	// TLSImplicit speaks TLS from the first byte (ftps://, port 990 by convention).
	TLSImplicit
)

// Store lists directories of an FTP server.
// Every ReadDir opens its own connection.
type Store struct {
	host     string
	path     string
	user     string
	password string
	tlsMode  TLSMode
}

type Option func(*Store)

func WithTLS(mode TLSMode) Option {
	return func(s *Store) {
		s.tlsMode = mode
	}
}

// NewStore takes credentials from the user info of root, if any.
func NewStore(root url.URL, o ...Option) *Store {
	s := &Store{
		host: root.Host,
		path: root.Path,
	}
	if root.User != nil {
		s.user = root.User.Username()
		s.password, _ = root.User.Password()
	}
	for _, opt := range o {
		opt(s)
	}
	return s
}

func (s *Store) RootURL() url.URL {
	return url.URL{
		Scheme: s.scheme(),
		Host:   s.host,
		Path:   s.path,
	}
}

func (s *Store) RootTitle() string {
	return s.scheme() + "://" + s.host
}

func (s *Store) scheme() string {
	if s.tlsMode == TLSImplicit {
		return "ftps"
	}
	return "ftp"
}

func (s *Store) addr() (addr, host string) {
	host, port, err := net.SplitHostPort(s.host)
	if err != nil {
		host = s.host
		port = "21"
	}
	return net.JoinHostPort(host, port), host
}

func (s *Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	addr, host := s.addr()
	options := []ftp.DialOption{
		ftp.DialWithTimeout(dialTimeout),
		ftp.DialWithContext(ctx),
	}
	switch s.tlsMode {
	case TLSImplicit:
		options = append(options, ftp.DialWithTLS(&tls.Config{ServerName: host}))
	case TLSExplicit:
		options = append(options, ftp.DialWithExplicitTLS(&tls.Config{ServerName: host}))
	}

	c, err := dial(addr, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ftp server: %w", err)
	}
	defer func() {
		_ = c.Quit()
	}()

	if s.user != "" {
		if err = c.Login(s.user, s.password); err != nil {
			return nil, fmt.Errorf("failed to login to ftp server: %w", err)
		}
	}

	entries, err := c.List(name)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}
	return toDirEntries(entries), nil
}

func toDirEntries(entries []*ftp.Entry) []os.DirEntry {
	result := make([]os.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if entry == nil || entry.Name == "." || entry.Name == ".." {
			continue
		}
		isDir := entry.Type == ftp.EntryTypeFolder
		result = append(result, files.NewDirEntry(entry.Name, isDir,
			files.Size(int64(entry.Size)),
			files.ModTime(entry.Time),
		))
	}
	return result
}
