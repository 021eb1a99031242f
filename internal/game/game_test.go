package game

import (
	"path/filepath"
	"reflect"
	"testing"
)

// TestDefinitionLinks tests the derived GitHub locations
func TestDefinitionLinks(t *testing.T) {
	def := Definition{Abbreviation: "TR4"}

	if got := def.RepoName(); got != "tr4-version-swapper" {
		t.Errorf("RepoName() = %q, want %q", got, "tr4-version-swapper")
	}
	if got, want := def.LatestReleaseLink(), "https://github.com/TombRunners/tr4-version-swapper/releases/latest"; got != want {
		t.Errorf("LatestReleaseLink() = %q, want %q", got, want)
	}
}

// TestPathHelpers tests version and game path resolution
func TestPathHelpers(t *testing.T) {
	dirs := Dirs{
		GameDir:     filepath.Join("games", "tr4"),
		PackagedDir: filepath.Join("games", "tr4", "TRVS"),
	}

	v := Version{Name: "Multipatch", Dir: "Multipatch"}
	if got, want := VersionPath(dirs, v), filepath.Join("games", "tr4", "TRVS", "versions", "Multipatch"); got != want {
		t.Errorf("VersionPath() = %q, want %q", got, want)
	}

	got := GamePaths(dirs, []string{"DDraw.dll", "data/cache.bin"})
	want := []string{
		filepath.Join("games", "tr4", "DDraw.dll"),
		filepath.Join("games", "tr4", "data", "cache.bin"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GamePaths() = %v, want %v", got, want)
	}
}
