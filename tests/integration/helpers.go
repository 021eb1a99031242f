package integration

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/TombRunners/trvs/internal/game"
	"github.com/TombRunners/trvs/internal/games/tr4"
	"github.com/TombRunners/trvs/internal/github"
	"github.com/TombRunners/trvs/internal/install"
	"github.com/TombRunners/trvs/internal/integrity"
	"github.com/TombRunners/trvs/internal/process"
	"github.com/TombRunners/trvs/internal/prompt"
	"github.com/TombRunners/trvs/internal/session"
	"github.com/TombRunners/trvs/internal/settings"
	"github.com/TombRunners/trvs/internal/swap"
	"github.com/TombRunners/trvs/internal/version"
	testhelp "github.com/TombRunners/trvs/testing"
)

// TestEnvironment is a TR4 installation with its program folder, a mock
// GitHub server and a session reading scripted input
type TestEnvironment struct {
	T       *testing.T
	Install *testhelp.GameInstall
	GitHub  *testhelp.MockGitHubServer
	Session *session.Session
	Output  *bytes.Buffer
	Logs    *test.Hook
	Exits   []int
	Guard   *RecordingGuard
	Game    game.Definition
}

// RecordingGuard stands in for the process guard and counts its checks
type RecordingGuard struct {
	Dirs []string
}

// EnsureNotRunning implements swap.Guard
func (g *RecordingGuard) EnsureNotRunning(dir string) process.Resolution {
	g.Dirs = append(g.Dirs, dir)
	return process.NotRunning
}

// LatestPath is the API path the TR4 version check requests
const LatestPath = "/repos/TombRunners/tr4-version-swapper/releases/latest"

// SetupTestEnvironment creates the installation and a session that reads input.
// The packaged listing is generated from the program folder as a release would be.
func SetupTestEnvironment(t *testing.T, running, input string, gameFiles, packagedFiles map[string]string) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		T:       t,
		Install: testhelp.NewGameInstall(t, gameFiles, packagedFiles),
		GitHub:  testhelp.NewMockGitHubServer(t),
		Output:  &bytes.Buffer{},
		Guard:   &RecordingGuard{},
	}

	entries, err := integrity.Generate(env.Install.Packaged())
	if err != nil {
		t.Fatalf("failed to generate packaged listing: %v", err)
	}
	env.Game = tr4.Definition()
	env.Game.Packaged = entries

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	env.Logs = hook
	ui := prompt.New(strings.NewReader(input), env.Output)
	env.Session = session.New(logger, ui, settings.Default(), version.MustParse(running), func(code int) {
		env.Exits = append(env.Exits, code)
	})

	return env
}

// Manager creates the install manager against the mock server
func (env *TestEnvironment) Manager() *install.Manager {
	client := github.NewClient("TRVS/test", nil)
	client.SetBaseURL(env.GitHub.URL)
	return install.NewManager(env.Session, env.Game, env.Install, client)
}

// Swapper creates the TR4 swapper operating on the installation
func (env *TestEnvironment) Swapper() swap.Swapper {
	ops := swap.NewOperations(env.Session, env.Guard, env.Install.Game())
	return tr4.NewSwapper(ops, env.Install, env.Session.UI)
}

// PublishRelease serves a release and, when files are given, a zip asset holding them
func (env *TestEnvironment) PublishRelease(tag, body string, files map[string]string) {
	env.T.Helper()

	release := github.Release{TagName: tag, Body: body, HTMLURL: "https://github.com/TombRunners/tr4-version-swapper/releases/" + tag}
	if files != nil {
		path := "/downloads/" + tag + "/TR4VersionSwapper.zip"
		env.GitHub.SetFile(path, ZipBytes(env.T, files))
		release.Assets = []github.Asset{{Name: "TR4VersionSwapper.zip", BrowserDownloadURL: env.GitHub.URL + path}}
	}

	if err := env.GitHub.SetResponse(LatestPath, release); err != nil {
		env.T.Fatalf("failed to publish release: %v", err)
	}
}

// Logged reports whether any entry was logged with message
func (env *TestEnvironment) Logged(message string) bool {
	for _, entry := range env.Logs.AllEntries() {
		if entry.Message == message {
			return true
		}
	}
	return false
}

// ZipBytes builds a zip archive in memory
func ZipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s to zip: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s to zip: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}
