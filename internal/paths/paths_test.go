package paths

import (
	"path/filepath"
	"runtime"
	"testing"
)

// TestNormalize tests path normalization to forward slashes
func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "nested path",
			input: filepath.Join("versions", "Multipatch", "tomb4.exe"),
			want:  "versions/Multipatch/tomb4.exe",
		},
		{
			name:  "redundant separators are cleaned",
			input: filepath.Join("versions", ".", "Original") + string(filepath.Separator),
			want:  "versions/Original",
		},
		{
			name:  "empty string becomes dot (filepath.Clean behavior)",
			input: "",
			want:  ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestDenormalize tests conversion back to the OS separator
func TestDenormalize(t *testing.T) {
	got := Denormalize("versions/Original/tomb4.exe")
	want := filepath.Join("versions", "Original", "tomb4.exe")
	if got != want {
		t.Errorf("Denormalize() = %q, want %q", got, want)
	}

	if round := Normalize(Denormalize("data/title.tr4")); round != "data/title.tr4" {
		t.Errorf("round trip = %q, want %q", round, "data/title.tr4")
	}
}

// TestSameDir tests exact directory comparison
func TestSameDir(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "games", "foo")

	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{
			name: "identical",
			a:    base,
			b:    base,
			want: true,
		},
		{
			name: "trailing separator",
			a:    base + string(filepath.Separator),
			b:    base,
			want: true,
		},
		{
			name: "subdirectory does not match",
			a:    filepath.Join(base, "bin"),
			b:    base,
			want: false,
		},
		{
			name: "parent does not match",
			a:    filepath.Dir(base),
			b:    base,
			want: false,
		},
		{
			name: "sibling with shared prefix does not match",
			a:    base + "bar",
			b:    base,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDir(tt.a, tt.b); got != tt.want {
				t.Errorf("SameDir(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestSameDir_Case tests that only Windows folds case
func TestSameDir_Case(t *testing.T) {
	a := filepath.Join(string(filepath.Separator), "Games", "TR4")
	b := filepath.Join(string(filepath.Separator), "games", "tr4")

	got := SameDir(a, b)
	want := runtime.GOOS == "windows"
	if got != want {
		t.Errorf("SameDir(%q, %q) = %v, want %v on %s", a, b, got, want, runtime.GOOS)
	}
}

// TestGameDirFor tests the default game directory derivation
func TestGameDirFor(t *testing.T) {
	programDir := filepath.Join(string(filepath.Separator), "games", "tr4", "TRVS")
	want := filepath.Join(string(filepath.Separator), "games", "tr4")

	if got := GameDirFor(programDir); got != want {
		t.Errorf("GameDirFor(%q) = %q, want %q", programDir, got, want)
	}
	if got := GameDirFor(programDir + string(filepath.Separator)); got != want {
		t.Errorf("GameDirFor() with trailing separator = %q, want %q", got, want)
	}
}
