package util

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func Exists(filePath string) bool {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return false
	}

	return true
}

func LogClose(logger *zap.Logger, closer io.Closer) {
	if errClose := closer.Close(); errClose != nil {
		logger.Error("Error trying to close", zap.Error(errClose))
	}
}

func IgnoreClose(closer io.Closer) {
	_ = closer.Close()
}

// WriteFileAtomic replaces filePath with the output of write. The content is
// written to a temporary file in the same directory and renamed over the
// target, so readers see either the old or the new file, never a partial one.
func WriteFileAtomic(filePath string, perm os.FileMode, write func(w io.Writer) error) error {
	dir := filepath.Dir(filePath)
	if errMkdir := os.MkdirAll(dir, 0o755); errMkdir != nil {
		return errors.Wrap(errMkdir, "Failed to make output path")
	}

	tmpFile, errTmp := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*")
	if errTmp != nil {
		return errors.Wrap(errTmp, "Failed to create temp file")
	}

	tmpName := tmpFile.Name()

	if errWrite := write(tmpFile); errWrite != nil {
		IgnoreClose(tmpFile)
		_ = os.Remove(tmpName)

		return errWrite
	}

	if errClose := tmpFile.Close(); errClose != nil {
		_ = os.Remove(tmpName)

		return errors.Wrap(errClose, "Failed to close temp file")
	}

	if errChmod := os.Chmod(tmpName, perm); errChmod != nil {
		_ = os.Remove(tmpName)

		return errors.Wrap(errChmod, "Failed to set file mode")
	}

	if errRename := os.Rename(tmpName, filePath); errRename != nil {
		_ = os.Remove(tmpName)

		return errors.Wrap(errRename, "Failed to replace output file")
	}

	return nil
}
