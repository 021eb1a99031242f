// Package installed remembers which packaged version was last swapped in.
package installed

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/TombRunners/trvs/internal/game"
)

const MarkerFile = ".installed-version"

// Save writes the version name to the marker file in the specified directory
func Save(baseDir, version string) error {
	markerPath := filepath.Join(baseDir, MarkerFile)
	return os.WriteFile(markerPath, []byte(version+"\n"), 0644)
}

// Load reads the version name from the marker file in the specified
// directory. A missing marker is not an error and returns "".
func Load(baseDir string) (string, error) {
	markerPath := filepath.Join(baseDir, MarkerFile)
	data, err := os.ReadFile(markerPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Find returns the index of the version with the given name, or -1
func Find(versions []game.Version, name string) int {
	if name == "" {
		return -1
	}
	for i, v := range versions {
		if v.Name == name {
			return i
		}
	}
	return -1
}
