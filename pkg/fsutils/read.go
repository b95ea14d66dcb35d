package fsutils

import (
	"io"
	"os"
)

// ReadFileData reads a file.
// max == 0 reads everything, max > 0 reads at most the first max bytes,
// max < 0 reads at most the last -max bytes.
func ReadFileData(name string, max int) (data []byte, err error) {
	if max == 0 {
		return os.ReadFile(name)
	}
	var file *os.File
	if file, err = os.Open(name); err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	if max > 0 {
		return io.ReadAll(io.LimitReader(file, int64(max)))
	}

	absMax := int64(-max)
	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if size := info.Size(); size > absMax {
		if _, err = file.Seek(size-absMax, io.SeekStart); err != nil {
			return nil, err
		}
	}
	return io.ReadAll(io.LimitReader(file, absMax))
}
