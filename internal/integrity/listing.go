package integrity

import (
	"os"
	"path/filepath"
)

// FindMissing returns the first name in names that does not exist inside dir.
// A path that cannot be checked counts as missing. The bool is false when
// every name exists.
func FindMissing(names []string, dir string) (string, bool) {
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return name, true
		}
	}
	return "", false
}
