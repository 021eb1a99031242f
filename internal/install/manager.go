package install

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/TombRunners/trvs/internal/changelog"
	"github.com/TombRunners/trvs/internal/console"
	"github.com/TombRunners/trvs/internal/download"
	"github.com/TombRunners/trvs/internal/game"
	"github.com/TombRunners/trvs/internal/github"
	"github.com/TombRunners/trvs/internal/prompt"
	"github.com/TombRunners/trvs/internal/session"
	"github.com/TombRunners/trvs/internal/version"
)

// UpdatesDir is the folder inside the program folder new releases are unpacked into
const UpdatesDir = "updates"

// ReleaseSource looks up a repository's latest release
type ReleaseSource interface {
	LatestRelease(owner, repo string) (*github.Release, error)
}

// Manager runs the startup checks for one game
type Manager struct {
	Session  *session.Session
	Game     game.Definition
	Dirs     game.Directories
	Releases ReleaseSource

	Download func(url, targetPath string, callback download.ProgressCallback) error
	Extract  func(archivePath, destDir string) error
}

// NewManager creates a manager that downloads with grab and unpacks zips
func NewManager(s *session.Session, def game.Definition, dirs game.Directories, releases ReleaseSource) *Manager {
	return &Manager{
		Session:  s,
		Game:     def,
		Dirs:     dirs,
		Releases: releases,
		Download: download.Fetch,
		Extract:  download.Extract,
	}
}

// VersionCheck tells the user when a newer release exists. It never fails the program.
func (m *Manager) VersionCheck() {
	s := m.Session
	ui := s.UI
	defer ui.Println()

	s.Log.Debug("Running GitHub version checks...")
	release, err := m.Releases.LatestRelease(game.Owner, m.Game.RepoName())
	var latest version.Version
	if err == nil && release != nil {
		latest, err = version.Parse(release.TagName)
	}
	if err != nil {
		s.Log.WithError(err).Error("Version check failed.")
		ui.Warn("Unable to check for the latest version. Consider manually checking:")
		ui.Println(m.Game.LatestReleaseLink())
		return
	}

	if release == nil {
		s.Log.Debug("No releases found.")
		ui.Println("I didn't find any latest release information.")
		ui.Println("Perhaps no releases exist or the URL was bad.")
		ui.Println("If release information was expected, please bring up the issue!")
		ui.Println("Otherwise... Let me know how testing goes! :D")
		return
	}

	switch s.Version.Compare(latest, 3) {
	case -1:
		s.Log.Debugf("Latest GitHub release (%s) is newer than the running version (%s).", latest, s.Version)
		ui.PrintHeader("A new release is available!", m.Game.LatestReleaseLink(), console.Yellow)
		ui.Println("You are strongly advised to update to ensure leaderboard compatibility.")
		if notes := changelog.Build(release.TagName, release.Body); notes != "" {
			ui.Println()
			ui.Print(notes)
		}
		m.offerDownload(release)
	case 0:
		s.Log.Debugf("Version is up-to-date (%s).", latest)
	default:
		s.Log.Debugf("Running version (%s) has not yet been released on GitHub (%s).", s.Version, latest)
		ui.Println("You seem to be running a pre-release version.")
		ui.Println("Let me know how testing goes! :D")
	}
}

// offerDownload lets the user fetch and unpack the release next to this program
func (m *Manager) offerDownload(release *github.Release) {
	s := m.Session
	asset := release.ZipAsset()
	if asset == nil || m.Download == nil || m.Extract == nil {
		return
	}

	s.UI.Println()
	if !s.UI.YesNo(fmt.Sprintf("Would you like me to download %s now?", release.TagName), prompt.DefaultNo) {
		s.Log.Debug("User declined the release download.")
		return
	}

	dest, err := m.fetchRelease(release.TagName, asset)
	if err != nil {
		s.Log.WithError(err).Error("Release download failed.")
		s.UI.Warn("I couldn't download the new release. You can get it from:")
		s.UI.Println(m.Game.LatestReleaseLink())
		return
	}

	s.Log.Infof("Extracted release %s to %s.", release.TagName, dest)
	if s.UI.Sound != nil {
		s.UI.Sound.PlayAsync("success")
	}
	s.UI.Println("The new release was extracted to:")
	s.UI.Println(dest)
	s.UI.Println("Close this program and run the new version from there.")
}

func (m *Manager) fetchRelease(tag string, asset *github.Asset) (string, error) {
	updates := filepath.Join(m.Dirs.Packaged(), UpdatesDir)
	dest, err := download.Contained(updates, filepath.Join(updates, tag))
	if err != nil {
		return "", fmt.Errorf("refusing release tag %q: %w", tag, err)
	}
	if err := os.MkdirAll(updates, 0755); err != nil {
		return "", fmt.Errorf("failed to create updates folder: %w", err)
	}

	archive := dest + ".zip"
	defer os.Remove(archive)

	s := m.Session
	s.Log.WithFields(logrus.Fields{"url": asset.BrowserDownloadURL, "size": asset.Size}).Debug("Downloading release.")
	err = m.Download(asset.BrowserDownloadURL, archive, func(done, total int64, percentage int) {
		s.UI.Printf("\rDownloading %s... %d%%", asset.Name, percentage)
	})
	s.UI.Println()
	if err != nil {
		return "", err
	}

	if err := m.Extract(archive, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// ValidateInstallation certifies the installation. On failure the user is told
// why and the program exits: 2 for a categorized problem, 1 for anything else.
func (m *Manager) ValidateInstallation() bool {
	s := m.Session

	outcome, err := Validate(m.Game, m.Dirs)
	if err != nil {
		s.GiveErrorMessageAndExit("An unhandled exception occurred while validating your installation.", err, session.ExitUnexpected)
		return false
	}

	if !outcome.OK() {
		s.Log.WithError(outcome.Err()).Log(logrus.FatalLevel, "Installation failed to validate.")
		if s.UI.Sound != nil {
			s.UI.Sound.Play("error")
		}
		s.UI.Error(outcome.Message(m.Game.Abbreviation))
		s.UI.Println("You are advised to re-install the latest release to fix the issue:")
		s.UI.Println(m.Game.LatestReleaseLink())
		s.EarlyPauseAndExit(session.ExitInvalid)
		return false
	}

	s.Log.Info("Successfully validated packaged files using MD5 hashes.")
	s.Log.Infof("Parent directory seems like a %s game installation.", m.Game.Abbreviation)
	return true
}
