// Package swap applies a version swap to a game installation. Every file
// operation waits for the game to be closed first, and a failed operation
// ends the program unless it was marked non-critical.
package swap

import (
	"fmt"
	"os"
	"strings"

	"github.com/TombRunners/trvs/internal/fileio"
	"github.com/TombRunners/trvs/internal/game"
	"github.com/TombRunners/trvs/internal/installed"
	"github.com/TombRunners/trvs/internal/process"
	"github.com/TombRunners/trvs/internal/session"
)

// Swapper performs one game's version swap
type Swapper interface {
	SwapVersions() error
}

// Guard blocks until no game process is running from a directory
type Guard interface {
	EnsureNotRunning(dir string) process.Resolution
}

// Operations are the guarded file operations a swapper is built from
type Operations struct {
	Session *session.Session
	Guard   Guard
	GameDir string
}

// NewOperations creates guarded operations for the game in gameDir
func NewOperations(s *session.Session, guard Guard, gameDir string) *Operations {
	return &Operations{
		Session: s,
		Guard:   guard,
		GameDir: gameDir,
	}
}

// TryCopyingDirectory copies src over dest recursively. A failure exits the program.
func (o *Operations) TryCopyingDirectory(src, dest string) bool {
	o.Guard.EnsureNotRunning(o.GameDir)

	o.Session.Log.Debugf("Attempting a copy from %q to %q", src, dest)
	if err := fileio.CopyDirectory(src, dest, true); err != nil {
		o.Session.GiveErrorMessageAndExit("Failed to copy files!", err, session.ExitFileFailure)
		return false
	}
	return true
}

// TryDeletingFiles deletes files. A failure exits the program when critical,
// otherwise it is logged and false is returned.
func (o *Operations) TryDeletingFiles(files []string, critical bool) bool {
	o.Guard.EnsureNotRunning(o.GameDir)

	o.Session.Log.Debugf("Attempting to delete the following files: %s", strings.Join(files, ", "))
	if err := fileio.DeleteFiles(files); err != nil {
		return o.fail("Failed to delete files!", err, critical)
	}
	return true
}

// TryDeletingDirectories deletes dirs, with their contents when recursive.
// Failures are handled like TryDeletingFiles.
func (o *Operations) TryDeletingDirectories(dirs []string, recursive, critical bool) bool {
	o.Guard.EnsureNotRunning(o.GameDir)

	o.Session.Log.Debugf("Attempting to delete the following directories: %s", strings.Join(dirs, ", "))
	if err := fileio.DeleteDirectories(dirs, recursive); err != nil {
		return o.fail("Failed to delete directories!", err, critical)
	}
	return true
}

func (o *Operations) fail(statement string, err error, critical bool) bool {
	if critical {
		o.Session.GiveErrorMessageAndExit(statement, err, session.ExitFileFailure)
	} else {
		o.Session.Log.WithError(err).Error(statement)
	}
	return false
}

// Chooser asks the user to pick one of several options
type Chooser interface {
	Menu(title string, options []string) (int, error)
}

// ChooseVersion asks which of versions to install; current, when known, is marked
func ChooseVersion(ui Chooser, versions []game.Version, current string) (game.Version, error) {
	if len(versions) == 0 {
		return game.Version{}, fmt.Errorf("no versions to choose from")
	}

	options := make([]string, len(versions))
	for i, v := range versions {
		options[i] = v.Name
		if v.Description != "" {
			options[i] += ": " + v.Description
		}
	}
	if i := installed.Find(versions, current); i >= 0 {
		options[i] += " (installed)"
	}

	i, err := ui.Menu("Which version would you like to install?", options)
	if err != nil {
		return game.Version{}, fmt.Errorf("failed to choose a version: %w", err)
	}
	return versions[i], nil
}

// VersionSwapper swaps between the packaged versions of one game: it removes
// what the chosen version no longer uses, then copies the version in.
type VersionSwapper struct {
	Ops  *Operations
	Game game.Definition
	Dirs game.Directories
	UI   Chooser
}

// NewVersionSwapper creates a swapper for def
func NewVersionSwapper(ops *Operations, def game.Definition, dirs game.Directories, ui Chooser) *VersionSwapper {
	return &VersionSwapper{
		Ops:  ops,
		Game: def,
		Dirs: dirs,
		UI:   ui,
	}
}

// SwapVersions implements Swapper
func (s *VersionSwapper) SwapVersions() error {
	log := s.Ops.Session.Log

	current, err := installed.Load(s.Dirs.Packaged())
	if err != nil {
		log.WithError(err).Warn("Couldn't read the installed version marker.")
	}

	v, err := ChooseVersion(s.UI, s.Game.Versions, current)
	if err != nil {
		return err
	}
	log.Infof("User picked version %s.", v.Name)

	if len(v.Obsolete) > 0 {
		s.Ops.TryDeletingFiles(game.GamePaths(s.Dirs, v.Obsolete), false)
	}
	if dirs := existingDirs(game.GamePaths(s.Dirs, v.ObsoleteDirs)); len(dirs) > 0 {
		s.Ops.TryDeletingDirectories(dirs, true, false)
	}

	if !s.Ops.TryCopyingDirectory(game.VersionPath(s.Dirs, v), s.Dirs.Game()) {
		return fmt.Errorf("failed to install version %s", v.Name)
	}
	log.Infof("Installed version %s.", v.Name)

	if err := installed.Save(s.Dirs.Packaged(), v.Name); err != nil {
		log.WithError(err).Warn("Couldn't record the installed version.")
	}
	return nil
}

// existingDirs drops paths that are not directories; there is nothing to remove
func existingDirs(paths []string) []string {
	var out []string
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			out = append(out, path)
		}
	}
	return out
}
