package integrity

import (
	"path/filepath"
	"testing"

	testhelp "github.com/TombRunners/trvs/testing"
)

// TestFindMissing tests first-missing detection in input order
func TestFindMissing(t *testing.T) {
	tests := []struct {
		name      string
		present   []string
		required  []string
		wantName  string
		wantFound bool
	}{
		{
			name:      "first of two missing",
			present:   []string{"b.txt"},
			required:  []string{"a.txt", "b.txt"},
			wantName:  "a.txt",
			wantFound: true,
		},
		{
			name:      "all present",
			present:   []string{"a.txt", "b.txt"},
			required:  []string{"a.txt", "b.txt"},
			wantFound: false,
		},
		{
			name:      "input order wins over alphabetical order",
			present:   []string{"a.txt"},
			required:  []string{"a.txt", "z.txt", "b.txt"},
			wantName:  "z.txt",
			wantFound: true,
		},
		{
			name:      "nested path",
			present:   []string{"tomb4.exe"},
			required:  []string{"tomb4.exe", "data/title.tr4"},
			wantName:  "data/title.tr4",
			wantFound: true,
		},
		{
			name:      "empty requirement list",
			present:   nil,
			required:  nil,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tt.present {
				testhelp.WriteFile(t, filepath.Join(dir, filepath.FromSlash(name)), name)
			}

			gotName, gotFound := FindMissing(tt.required, dir)
			if gotFound != tt.wantFound || gotName != tt.wantName {
				t.Errorf("FindMissing() = (%q, %v), want (%q, %v)", gotName, gotFound, tt.wantName, tt.wantFound)
			}
		})
	}
}

// TestFindMissing_DirectoryCounts tests that an existing directory satisfies a name
func TestFindMissing_DirectoryCounts(t *testing.T) {
	dir := t.TempDir()
	testhelp.MkdirAll(t, dir, "audio")

	if name, found := FindMissing([]string{"audio"}, dir); found {
		t.Errorf("FindMissing() = %q, want nothing missing", name)
	}
}

// TestFindMissing_MissingDir tests a directory that does not exist at all
func TestFindMissing_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")

	name, found := FindMissing([]string{"tomb4.exe", "script.dat"}, dir)
	if !found || name != "tomb4.exe" {
		t.Errorf("FindMissing() = (%q, %v), want (%q, true)", name, found, "tomb4.exe")
	}
}

// TestFindMissing_ParentIsFile tests a name whose parent path is a regular file
func TestFindMissing_ParentIsFile(t *testing.T) {
	dir := t.TempDir()
	testhelp.WriteFile(t, filepath.Join(dir, "data"), "not a folder")

	name, found := FindMissing([]string{"data/title.tr4"}, dir)
	if !found || name != "data/title.tr4" {
		t.Errorf("FindMissing() = (%q, %v), want (%q, true)", name, found, "data/title.tr4")
	}
}
