package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Normalize converts a path to use forward slashes (for audit listings and display)
func Normalize(p string) string {
	return strings.ReplaceAll(filepath.Clean(p), string(filepath.Separator), "/")
}

// Denormalize converts a path from forward slashes to platform-specific separators
func Denormalize(p string) string {
	return strings.ReplaceAll(p, "/", string(filepath.Separator))
}

// CleanLower returns a cleaned, lowercase path for case-insensitive comparison
func CleanLower(p string) string {
	return strings.ToLower(filepath.Clean(p))
}

// SameDir reports whether a and b name the same directory. Only the cleaned
// strings are compared; a subdirectory of b is never the same as b. Windows
// paths compare case-insensitively.
func SameDir(a, b string) bool {
	if runtime.GOOS == "windows" {
		return CleanLower(a) == CleanLower(b)
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

// ProgramDir returns the directory holding the running executable
func ProgramDir() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exePath); err == nil {
		exePath = resolved
	}
	return filepath.Dir(exePath), nil
}

// GameDirFor returns the default game directory for a program directory.
// Releases are unpacked into a folder inside the game installation.
func GameDirFor(programDir string) string {
	return filepath.Dir(filepath.Clean(programDir))
}
