// Package profiling writes CPU and heap profiles and serves net/http/pprof.
package profiling

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	runtimepprof "runtime/pprof"
	"sync"
	"time"

	"github.com/datatug/millertug/pkg/logging"
	"github.com/sirupsen/logrus"
)

var (
	osCreate              = os.Create
	pprofStartCPUProfile  = runtimepprof.StartCPUProfile
	pprofStopCPUProfile   = runtimepprof.StopCPUProfile
	pprofWriteHeapProfile = runtimepprof.WriteHeapProfile
	memProfilingInterval  = 30 * time.Second
)

var (
	logMu sync.RWMutex
	log   logrus.FieldLogger = logging.Discard()
)

// SetLogger sets where profiling failures are reported.
func SetLogger(l logrus.FieldLogger) {
	logMu.Lock()
	defer logMu.Unlock()
	log = l
}

func logger() logrus.FieldLogger {
	logMu.RLock()
	defer logMu.RUnlock()
	return log
}

// DoCPUProfiling starts CPU profiling into file and returns a func that stops it.
// On failure the error is logged and the returned func does nothing.
func DoCPUProfiling(file string) func() {
	f, err := osCreate(file)
	if err != nil {
		logger().WithError(err).Errorf("could not create CPU profile %s", file)
		return func() {}
	}
	if err = pprofStartCPUProfile(f); err != nil {
		logger().WithError(err).Error("could not start CPU profile")
		_ = f.Close()
		return func() {}
	}
	return func() {
		pprofStopCPUProfile()
		_ = f.Close()
	}
}

// DoMemProfiling snapshots the heap into file every memProfilingInterval.
// The returned func writes a snapshot immediately.
func DoMemProfiling(file string) func() {
	var mu sync.Mutex
	create, writeHeap := osCreate, pprofWriteHeapProfile
	write := func() {
		mu.Lock()
		defer mu.Unlock()
		writeHeapProfile(file, create, writeHeap)
	}
	interval := memProfilingInterval
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			write()
		}
	}()
	return write
}

func writeHeapProfile(file string, create func(string) (*os.File, error), writeHeap func(io.Writer) error) {
	f, err := create(file)
	if err != nil {
		logger().WithError(err).Errorf("could not create memory profile %s", file)
		return
	}
	defer func() {
		_ = f.Close()
	}()
	if err = writeHeap(f); err != nil {
		logger().WithError(err).Error("could not write memory profile")
	}
}

// ServePprof serves the net/http/pprof handlers on addr until the returned func is called.
func ServePprof(addr string) (addrInUse string, stop func(), err error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}
	server := &http.Server{
		Handler:           pprofMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger().WithError(err).Error("pprof server stopped")
		}
	}()
	return listener.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}, nil
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
