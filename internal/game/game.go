// Package game describes a supported Tomb Raider title: the files that identify
// an installation, the files this program ships for it, and the versions it can
// swap between.
package game

import (
	"path/filepath"
	"strings"

	"github.com/TombRunners/trvs/internal/integrity"
)

// Directories provides the locations a validator or swapper operates on.
type Directories interface {
	// Game is the installation being operated on.
	Game() string
	// Packaged is where the program's own version files live.
	Packaged() string
}

// FileAudit provides the file lists used to certify an installation.
type FileAudit interface {
	// GameFiles are the bare minimum files required for game recognition.
	GameFiles() []string
	// PackagedFiles are the shipped files with their expected MD5 digests,
	// relative to Directories.Packaged.
	PackagedFiles() []integrity.Entry
}

// Version is one swappable game version shipped under the packaged versions folder.
type Version struct {
	Name        string
	Dir         string
	Description string
	// Obsolete lists game-relative files to remove before this version is copied in.
	Obsolete []string
	// ObsoleteDirs lists game-relative directories to remove before this version is copied in.
	ObsoleteDirs []string
}

// Definition is the static data for one game.
type Definition struct {
	Abbreviation string
	Title        string
	Executable   string
	AsciiArt     []string
	Files        []string
	Packaged     []integrity.Entry
	Versions     []Version
}

// GameFiles implements FileAudit
func (d Definition) GameFiles() []string {
	return d.Files
}

// PackagedFiles implements FileAudit
func (d Definition) PackagedFiles() []integrity.Entry {
	return d.Packaged
}

// RepoName is the GitHub repository releases are published under
func (d Definition) RepoName() string {
	return strings.ToLower(d.Abbreviation) + "-version-swapper"
}

// RepoLink is the project's GitHub page
func (d Definition) RepoLink() string {
	return "https://github.com/" + Owner + "/" + d.RepoName()
}

// LatestReleaseLink is the project's latest release page
func (d Definition) LatestReleaseLink() string {
	return d.RepoLink() + "/releases/latest"
}

// Owner is the GitHub organization that publishes every swapper.
const Owner = "TombRunners"

// VersionsDir is the packaged folder holding one subfolder per version.
const VersionsDir = "versions"

// Dirs is a fixed pair of directories.
type Dirs struct {
	GameDir     string
	PackagedDir string
}

// Game implements Directories
func (d Dirs) Game() string {
	return d.GameDir
}

// Packaged implements Directories
func (d Dirs) Packaged() string {
	return d.PackagedDir
}

// VersionPath returns the packaged folder for v
func VersionPath(dirs Directories, v Version) string {
	return filepath.Join(dirs.Packaged(), VersionsDir, filepath.FromSlash(v.Dir))
}

// GamePaths joins game-relative names onto the game directory
func GamePaths(dirs Directories, names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dirs.Game(), filepath.FromSlash(name)))
	}
	return out
}
