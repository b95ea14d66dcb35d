package profiling

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoMemProfiling(t *testing.T) {
	origCreate, origWrite, origInterval := osCreate, pprofWriteHeapProfile, memProfilingInterval
	defer func() {
		osCreate, pprofWriteHeapProfile, memProfilingInterval = origCreate, origWrite, origInterval
	}()
	// The snapshot goroutine outlives the test; keep its ticker from firing.
	memProfilingInterval = time.Hour

	t.Run("writes_snapshot", func(t *testing.T) {
		hook := captureLog(t)
		file := filepath.Join(t.TempDir(), "mem.prof")
		write := DoMemProfiling(file)
		require.NotNil(t, write)
		write()
		fi, err := os.Stat(file)
		require.NoError(t, err)
		assert.NotZero(t, fi.Size())
		assert.Empty(t, hook.AllEntries())
	})

	t.Run("create_fails", func(t *testing.T) {
		hook := captureLog(t)
		osCreate = func(string) (*os.File, error) {
			return nil, errors.New("read-only file system")
		}
		write := DoMemProfiling("mem.prof")
		osCreate = origCreate
		write()
		require.Len(t, hook.AllEntries(), 1)
		assert.Equal(t, "could not create memory profile mem.prof", hook.LastEntry().Message)
	})

	t.Run("write_fails", func(t *testing.T) {
		hook := captureLog(t)
		pprofWriteHeapProfile = func(io.Writer) error {
			return errors.New("broken pipe")
		}
		write := DoMemProfiling(filepath.Join(t.TempDir(), "mem.prof"))
		pprofWriteHeapProfile = origWrite
		write()
		require.Len(t, hook.AllEntries(), 1)
		assert.Equal(t, "could not write memory profile", hook.LastEntry().Message)
	})
}

func TestWriteHeapProfile_closesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "heap.prof")
	var written *os.File
	writeHeapProfile(file, os.Create, func(w io.Writer) error {
		written = w.(*os.File)
		_, err := w.Write([]byte("heap"))
		return err
	})
	require.NotNil(t, written)
	_, err := written.Write([]byte("more"))
	assert.ErrorIs(t, err, os.ErrClosed)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "heap", string(data))
}
