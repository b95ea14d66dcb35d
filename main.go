package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/datatug/millertug/pkg/config"
	"github.com/datatug/millertug/pkg/files"
	"github.com/datatug/millertug/pkg/files/ftpfile"
	"github.com/datatug/millertug/pkg/files/httpfile"
	"github.com/datatug/millertug/pkg/files/osfile"
	"github.com/datatug/millertug/pkg/frame"
	"github.com/datatug/millertug/pkg/fsutils"
	"github.com/datatug/millertug/pkg/logging"
	"github.com/datatug/millertug/pkg/miller"
	"github.com/datatug/millertug/pkg/profiling"
	"github.com/datatug/millertug/pkg/watch"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var osExit = os.Exit
var getenv = os.Getenv
var osGetwd = os.Getwd

var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// terminal is the screen side of the browser; *frame.Terminal implements it.
type terminal interface {
	frame.Screen
	Initialize() error
	Teardown()
}

var newTerminal = func(options ...frame.TerminalOption) terminal {
	return frame.NewTerminal(options...)
}

var browse = runBrowser

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		osExit(1)
	}
}

type profilingFlags struct {
	cpuProfile string
	memProfile string
	pprofAddr  string
}

func newRootCmd() *cobra.Command {
	var pf profilingFlags
	cmd := &cobra.Command{
		Use:   "millertug [path|url]",
		Short: "Browse directories in three Miller columns",
		Long: `millertug shows the parent directory, the current directory and the
highlighted entry side by side. Besides local paths it can browse
http(s):// index pages and ftp:// or ftps:// servers.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), getenv)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.StartPath = args[0]
			}
			defer startProfiling(pf)()
			return browse(cmd.Context(), cfg)
		},
	}
	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&pf.cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	cmd.Flags().StringVar(&pf.memProfile, "memprofile", "", "write memory profile to `file`")
	cmd.Flags().StringVar(&pf.pprofAddr, "pprof", "", "start pprof http server on `address` (e.g. localhost:6060)")
	return cmd
}

func startProfiling(pf profilingFlags) (stop func()) {
	var stops []func()
	if pf.pprofAddr != "" {
		if _, stopServer, err := profiling.ServePprof(pf.pprofAddr); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "pprof server error: %v\n", err)
		} else {
			stops = append(stops, stopServer)
		}
	}
	if pf.cpuProfile != "" {
		stops = append(stops, profiling.DoCPUProfiling(pf.cpuProfile))
	}
	if pf.memProfile != "" {
		stops = append(stops, profiling.DoMemProfiling(pf.memProfile))
	}
	return func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}
}

// location is where browsing starts.
type location struct {
	store files.Store
	dir   string
}

func (l location) local() bool {
	return files.IsLocal(l.store)
}

func resolveLocation(start string) (loc location, err error) {
	if u, ok := parseRemote(start); ok {
		dir := u.Path
		if dir == "" {
			dir = "/"
		}
		if len(dir) > 1 {
			dir = strings.TrimSuffix(dir, "/")
		}
		root := url.URL{Scheme: u.Scheme, Host: u.Host, User: u.User}
		switch u.Scheme {
		case "http", "https":
			return location{store: httpfile.NewStore(root), dir: dir}, nil
		case "ftp", "ftps":
			mode := ftpfile.TLSNone
			if u.Scheme == "ftps" {
				mode = ftpfile.TLSImplicit
			}
			return location{store: ftpfile.NewStore(root, ftpfile.WithTLS(mode)), dir: dir}, nil
		}
	}

	if start == "" {
		if start, err = osGetwd(); err != nil {
			return loc, fmt.Errorf("failed to get working directory: %w", err)
		}
	}
	dir, err := filepath.Abs(fsutils.ExpandHome(start))
	if err != nil {
		return loc, fmt.Errorf("invalid start path %s: %w", start, err)
	}
	exists, err := fsutils.DirExists(dir)
	if err != nil {
		return loc, fmt.Errorf("failed to check %s: %w", dir, err)
	}
	if !exists {
		return loc, fmt.Errorf("not a directory: %s", dir)
	}
	return location{store: osfile.NewStore(""), dir: dir}, nil
}

func parseRemote(s string) (*url.URL, bool) {
	if !strings.Contains(s, "://") {
		return nil, false
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return nil, false
	}
	switch u.Scheme {
	case "http", "https", "ftp", "ftps":
		return u, true
	}
	return nil, false
}

// slashParent is the parent rule for stores addressed with URL paths.
func slashParent(p string) (string, bool) {
	parent := path.Dir(p)
	if parent == p {
		return "", false
	}
	return parent, true
}

var errNotTerminal = errors.New("millertug needs an interactive terminal")

func runBrowser(ctx context.Context, cfg config.Config) error {
	if !isTerminal() {
		return errNotTerminal
	}
	log, closeLog, err := logging.New(logging.Options{FilePath: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer closeLog()
	profiling.SetLogger(log)

	loc, err := resolveLocation(cfg.StartPath)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"store": loc.store.RootTitle(),
		"dir":   loc.dir,
	}).Info("starting")

	lister := files.NewStoreLister(loc.store,
		files.WithLogger(log),
		files.WithMaxEntries(cfg.MaxEntries),
		files.WithLanguage(cfg.LanguageTag()),
	)
	parentDir := miller.ParentDir
	if !loc.local() {
		parentDir = slashParent
	}
	rotator := miller.NewRotator(lister, miller.WithLogger(log), miller.WithParentFunc(parentDir))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := rotator.Init(ctx, loc.dir)

	loopOptions := []frame.LoopOption{
		frame.WithPollInterval(cfg.PollInterval),
		frame.WithLoopLogger(log),
	}
	if cfg.Watch && loc.local() {
		if w, err := watch.New(watch.WithLogger(log)); err != nil {
			log.WithError(err).Warn("directory watching disabled")
		} else {
			defer func() {
				_ = w.Close()
			}()
			loopOptions = append(loopOptions, frame.WithWatcher(w))
		}
	}

	t := newTerminal(
		frame.WithRootTitle(loc.store.RootTitle()),
		frame.WithPreview(cfg.Preview && loc.local()),
		frame.WithColumnProportions(cfg.ColumnProportions),
		frame.WithParentFunc(parentDir),
		frame.WithTerminalLogger(log),
	)
	if err = t.Initialize(); err != nil {
		return err
	}
	defer release(t, log)

	final, err := frame.NewLoop(t, rotator, loopOptions...).Run(ctx, state)
	log.WithField("dir", final.CursorPath).Info("exiting")
	return err
}

// release restores the terminal, also while panicking, so the panic message
// lands on a usable terminal.
func release(t terminal, log logrus.FieldLogger) {
	r := recover()
	t.Teardown()
	if r != nil {
		log.Errorf("panic: %v", r)
		panic(r)
	}
}
