// Package download fetches release archives and unpacks them.
package download

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cavaliergopher/grab/v3"
	"github.com/mholt/archiver"
)

// ProgressInterval is how often a running download reports progress
const ProgressInterval = 100 * time.Millisecond

var client = grab.NewClient()

// ProgressCallback receives the bytes written so far, the expected size and
// the percentage complete. The percentage stays 0 while the size is unknown.
type ProgressCallback func(bytesComplete, totalBytes int64, percentage int)

// Fetch downloads url to targetPath, replacing any file already there.
// The callback is only called when the percentage changes.
func Fetch(url, targetPath string, callback ProgressCallback) error {
	req, err := grab.NewRequest(targetPath, url)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.NoResume = true

	resp := client.Do(req)
	report := reporter(resp, callback)

	ticker := time.NewTicker(ProgressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			report(resp.Progress())
		case <-resp.Done:
			if err := resp.Err(); err != nil {
				return fmt.Errorf("failed to download %s: %w", filepath.Base(targetPath), err)
			}
			report(1)
			return nil
		}
	}
}

func reporter(resp *grab.Response, callback ProgressCallback) func(progress float64) {
	last := -1
	return func(progress float64) {
		if callback == nil {
			return
		}
		percentage := 0
		if resp.Size() > 0 {
			percentage = int(progress * 100)
		}
		if percentage == last {
			return
		}
		last = percentage
		callback(resp.BytesComplete(), resp.Size(), percentage)
	}
}

// Contained resolves target and fails unless it lies inside base
func Contained(base, target string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", base, err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", target, err)
	}

	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal: %s is outside %s", absTarget, absBase)
	}
	return absTarget, nil
}

// Extract unpacks a zip archive into destDir, creating it if needed and
// overwriting files already there
func Extract(archivePath, destDir string) error {
	z := archiver.NewZip()
	z.OverwriteExisting = true
	z.MkdirAll = true

	if err := z.Unarchive(archivePath, destDir); err != nil {
		return fmt.Errorf("failed to extract %s: %w", filepath.Base(archivePath), err)
	}
	return nil
}
