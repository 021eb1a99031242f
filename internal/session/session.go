// Package session carries the state shared by one run of the program: its
// logger, console, settings, and the way out.
package session

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/TombRunners/trvs/internal/prompt"
	"github.com/TombRunners/trvs/internal/settings"
	"github.com/TombRunners/trvs/internal/version"
)

// Exit codes
const (
	ExitOK          = 0
	ExitUnexpected  = 1
	ExitInvalid     = 2
	ExitFileFailure = 3
	ExitInterrupted = 130
)

// Session is threaded through every component instead of package globals
type Session struct {
	Log      logrus.FieldLogger
	UI       *prompt.Prompter
	Settings settings.Settings
	Version  version.Version

	// Exit ends the program; tests replace it with a recorder
	Exit func(code int)
	// ExitCode is the code last passed to Exit
	ExitCode int
}

// New creates a session; a nil exit defaults to os.Exit
func New(log logrus.FieldLogger, ui *prompt.Prompter, s settings.Settings, v version.Version, exit func(int)) *Session {
	if exit == nil {
		exit = os.Exit
	}
	return &Session{
		Log:      log,
		UI:       ui,
		Settings: s,
		Version:  v,
		Exit:     exit,
	}
}

// GiveErrorMessageAndExit logs err, tells the user what went wrong, and exits
// with code after a key press. It returns code for callers whose Exit returns.
func (s *Session) GiveErrorMessageAndExit(statement string, err error, code int) int {
	s.Log.WithError(err).Log(logrus.FatalLevel, statement)
	if s.UI.Sound != nil {
		s.UI.Sound.Play("error")
	}
	s.UI.Error(statement)
	s.UI.Println("I've put some additional information in this session's log file.")
	return s.EarlyPauseAndExit(code)
}

// EarlyPauseAndExit waits for a key so the console window stays readable, then exits
func (s *Session) EarlyPauseAndExit(code int) int {
	s.UI.WaitForKey("Press any key to exit...")
	s.Log.Debugf("Exiting with code %d.", code)
	s.ExitCode = code
	s.Exit(code)
	return code
}
