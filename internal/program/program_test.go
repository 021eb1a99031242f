package program

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"

	"github.com/TombRunners/trvs/internal/console"
	"github.com/TombRunners/trvs/internal/game"
	"github.com/TombRunners/trvs/internal/process"
	"github.com/TombRunners/trvs/internal/prompt"
	"github.com/TombRunners/trvs/internal/session"
	"github.com/TombRunners/trvs/internal/settings"
	"github.com/TombRunners/trvs/internal/swap"
	"github.com/TombRunners/trvs/internal/version"
)

func init() {
	color.NoColor = true
}

func TestSplash(t *testing.T) {
	var out bytes.Buffer
	def := game.Definition{Abbreviation: "TR4", AsciiArt: []string{"TR4"}}

	Splash(console.NewPrinter(&out), def)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Splash() printed %d lines, want 3:\n%s", len(lines), out.String())
	}
	if strings.TrimSpace(lines[0]) != "TR4" {
		t.Errorf("art line = %q", lines[0])
	}
	if strings.TrimSpace(lines[1]) != "Made with love by Midge" {
		t.Errorf("credit line = %q", lines[1])
	}
	if strings.TrimSpace(lines[2]) != "Source code: https://github.com/TombRunners/tr4-version-swapper" {
		t.Errorf("link line = %q", lines[2])
	}
}

func TestRunFixture(t *testing.T) {
	gunit.Run(new(RunFixture), t)
}

type RunFixture struct {
	*gunit.Fixture

	session *session.Session
	out     *bytes.Buffer
	exits   []int
	checks  *FakeChecks
	swapper *FakeSwapper
	calls   []string
}

func (this *RunFixture) Setup() {
	this.out = &bytes.Buffer{}
	logger, _ := test.NewNullLogger()
	ui := prompt.New(strings.NewReader("\n"), this.out)
	this.session = session.New(logger, ui, settings.Default(), version.MustParse("1.0.0"), func(code int) {
		this.exits = append(this.exits, code)
	})
	this.checks = &FakeChecks{valid: true, calls: &this.calls}
	this.swapper = &FakeSwapper{calls: &this.calls}
}

func (this *RunFixture) TestSuccessfulSwap() {
	code := Run(this.session, this.checks, this.swapper)

	this.So(code, should.Equal, session.ExitOK)
	this.So(this.calls, should.Resemble, []string{"VersionCheck", "ValidateInstallation", "SwapVersions"})
	this.So(this.out.String(), should.ContainSubstring, "Version swap complete!")
	this.So(this.out.String(), should.ContainSubstring, "Press any key to exit...")
	this.So(this.exits, should.BeEmpty)
}

func (this *RunFixture) TestInvalidInstallationNeverSwaps() {
	this.checks.valid = false
	this.checks.onInvalid = func() { this.session.EarlyPauseAndExit(session.ExitInvalid) }

	code := Run(this.session, this.checks, this.swapper)

	this.So(code, should.Equal, session.ExitInvalid)
	this.So(this.calls, should.Resemble, []string{"VersionCheck", "ValidateInstallation"})
	this.So(this.out.String(), should.NotContainSubstring, "Version swap complete!")
}

func (this *RunFixture) TestSwapError() {
	this.swapper.err = errors.New("input closed")

	code := Run(this.session, this.checks, this.swapper)

	this.So(code, should.Equal, session.ExitUnexpected)
	this.So(this.exits, should.Resemble, []int{session.ExitUnexpected})
	this.So(this.out.String(), should.StartWith, "An unexpected error occurred while swapping versions.\n")
}

func (this *RunFixture) TestFileFailureDuringSwap() {
	this.swapper.during = func() { this.session.EarlyPauseAndExit(session.ExitFileFailure) }

	code := Run(this.session, this.checks, this.swapper)

	this.So(code, should.Equal, session.ExitFileFailure)
	this.So(this.out.String(), should.NotContainSubstring, "Version swap complete!")
}

func (this *RunFixture) TestMissingVersionFolderReportsOnlyTheCopyFailure() {
	root, err := os.MkdirTemp("", "trvs-program-")
	this.So(err, should.BeNil)
	defer os.RemoveAll(root)

	logger, _ := test.NewNullLogger()
	out := &bytes.Buffer{}
	var exits []int
	s := session.New(logger, prompt.New(strings.NewReader("1\n\n\n"), out), settings.Default(), version.MustParse("1.0.0"), func(code int) {
		exits = append(exits, code)
	})
	def := game.Definition{Abbreviation: "TR4", Versions: []game.Version{{Name: "Original", Dir: "Original"}}}
	dirs := game.Dirs{GameDir: filepath.Join(root, "game"), PackagedDir: filepath.Join(root, "TRVS")}
	ops := swap.NewOperations(s, notRunning{}, dirs.Game())

	code := Run(s, &FakeChecks{valid: true, calls: &this.calls}, swap.NewVersionSwapper(ops, def, dirs, s.UI))

	this.So(code, should.Equal, session.ExitFileFailure)
	this.So(exits, should.Resemble, []int{session.ExitFileFailure})
	this.So(s.ExitCode, should.Equal, session.ExitFileFailure)
	this.So(out.String(), should.ContainSubstring, "Failed to copy files!")
	this.So(out.String(), should.NotContainSubstring, "An unexpected error occurred while swapping versions.")
	this.So(out.String(), should.NotContainSubstring, "Version swap complete!")
}

/////////////////////////////////////////////////////////////////////////////////

type notRunning struct{}

func (notRunning) EnsureNotRunning(string) process.Resolution {
	return process.NotRunning
}


type FakeChecks struct {
	valid     bool
	onInvalid func()
	calls     *[]string
}

func (this *FakeChecks) VersionCheck() {
	*this.calls = append(*this.calls, "VersionCheck")
}

func (this *FakeChecks) ValidateInstallation() bool {
	*this.calls = append(*this.calls, "ValidateInstallation")
	if !this.valid && this.onInvalid != nil {
		this.onInvalid()
	}
	return this.valid
}

type FakeSwapper struct {
	err    error
	during func()
	calls  *[]string
}

func (this *FakeSwapper) SwapVersions() error {
	*this.calls = append(*this.calls, "SwapVersions")
	if this.during != nil {
		this.during()
	}
	return this.err
}
