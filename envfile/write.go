package envfile

import (
	"errors"
	"fmt"

	"github.com/jongio/azd-dotenv/fileutil"
)

// ErrWrite indicates the destination file could not be created or written.
var ErrWrite = errors.New("env file write failed")

// Write truncates/creates the file at path and writes all lines as UTF-8
// text with LF endings. The write is atomic: a temp file is renamed into
// place so a failed run never leaves a half-written file behind.
func Write(file File, path string) error {
	if err := fileutil.AtomicWriteFile(path, []byte(file.String()), fileutil.FilePermission); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
