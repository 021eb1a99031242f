package integrity

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"
)

// ErrFileNotFound is returned when a file to be hashed does not exist,
// whether the file itself or one of its parent directories is missing.
var ErrFileNotFound = errors.New("file not found")

// MD5 streams the file at path through an MD5 hasher and returns the
// lowercase hex digest.
func MD5(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		if isMissing(err) {
			return "", fmt.Errorf("file %q not found: %w", path, ErrFileNotFound)
		}
		return "", fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		if isMissing(err) {
			return "", fmt.Errorf("file %q not found: %w", path, ErrFileNotFound)
		}
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// isMissing folds "no such file", "no such directory" and "a parent is not a
// directory" into one condition.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
