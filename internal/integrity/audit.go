package integrity

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/TombRunners/trvs/internal/paths"
)

// Entry pairs a file path, relative to the directory it is audited in, with
// its expected lowercase MD5 digest.
type Entry struct {
	Name string `json:"name"`
	MD5  string `json:"md5"`
}

// Generate hashes every regular file below dir and returns the entries sorted
// by path. Names use forward slashes so the output is portable.
func Generate(dir string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("failed to resolve %q: %w", path, err)
		}
		digest, err := MD5(path)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Name: paths.Normalize(rel), MD5: digest})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to audit %q: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// ParseListing decodes a JSON listing as written by WriteListing. Order is kept.
func ParseListing(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse audit listing: %w", err)
	}
	for i, entry := range entries {
		if entry.Name == "" || len(entry.MD5) != 32 {
			return nil, fmt.Errorf("invalid audit listing entry %d: %+v", i, entry)
		}
	}
	return entries, nil
}

// WriteListing encodes entries as an indented JSON listing
func WriteListing(w io.Writer, entries []Entry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("failed to write audit listing: %w", err)
	}
	return nil
}
