// Package fileio holds the filesystem primitives used to apply a version swap.
// Nothing here knows about running games; callers guard each call.
package fileio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyDirectory copies every file in src into dest, overwriting files of the
// same name, and descends into subdirectories when recursive is set. dest is
// created if needed. Symlinks to files are copied as files; symlinks to
// directories are skipped. A failure leaves dest partially written.
func CopyDirectory(src, dest string, recursive bool) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dest, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read directory %q: %w", src, err)
	}

	var subDirs []string
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())

		info, err := os.Stat(srcPath)
		if err != nil {
			return fmt.Errorf("failed to stat %q: %w", srcPath, err)
		}
		if info.IsDir() {
			if entry.Type()&fs.ModeSymlink != 0 {
				continue
			}
			subDirs = append(subDirs, entry.Name())
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		destPath := filepath.Join(dest, entry.Name())
		if err := copyFile(srcPath, destPath, info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to copy %q to %q: %w", srcPath, destPath, err)
		}
	}

	if !recursive {
		return nil
	}
	for _, name := range subDirs {
		if err := CopyDirectory(filepath.Join(src, name), filepath.Join(dest, name), true); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(srcPath, destPath string, perm fs.FileMode) error {
	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// DeleteFiles removes each file in order and stops at the first failure.
// A file that is already gone is not a failure; a directory is.
func DeleteFiles(paths []string) error {
	for _, path := range paths {
		info, err := os.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to delete file %q: %w", path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("failed to delete file %q: is a directory", path)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete file %q: %w", path, err)
		}
	}
	return nil
}

// DeleteDirectories removes each directory in order and stops at the first
// failure. Without recursive, only empty directories can be removed. A
// directory that does not exist is a failure.
func DeleteDirectories(paths []string, recursive bool) error {
	for _, path := range paths {
		info, err := os.Lstat(path)
		if err != nil {
			return fmt.Errorf("failed to delete directory %q: %w", path, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("failed to delete directory %q: not a directory", path)
		}

		if recursive {
			err = os.RemoveAll(path)
		} else {
			err = os.Remove(path)
		}
		if err != nil {
			return fmt.Errorf("failed to delete directory %q: %w", path, err)
		}
	}
	return nil
}
