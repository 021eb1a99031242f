package process

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TombRunners/trvs/internal/prompt"
)

// SettleDelay is how long to wait after a game process is dealt with, so the
// OS releases its file handles before files are overwritten.
const SettleDelay = 100 * time.Millisecond

// Resolution is how a guard run ended
type Resolution int

const (
	// NotRunning means no game process was found in the folder
	NotRunning Resolution = iota
	// Killed means the program terminated the game process
	Killed
	// ClosedByUser means the user closed the game process themselves
	ClosedByUser
	// Unverified means the scan failed and the user was warned
	Unverified
)

func (r Resolution) String() string {
	switch r {
	case NotRunning:
		return "not running"
	case Killed:
		return "killed"
	case ClosedByUser:
		return "closed by user"
	case Unverified:
		return "unverified"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// UI is what the guard needs from the console
type UI interface {
	Println(a ...interface{})
	Warn(text string)
	YesNo(text string, def prompt.Default) bool
	WaitForKey(text string) error
}

// Guard keeps file operations from running while the game runs from the
// folder being changed
type Guard struct {
	Executable   string
	Abbreviation string
	Log          logrus.FieldLogger
	UI           UI
	Scanner      Scanner
	Sleep        func(time.Duration)
	Settle       time.Duration
}

// NewGuard creates a guard scanning real OS processes
func NewGuard(executable, abbreviation string, log logrus.FieldLogger, ui UI) *Guard {
	return &Guard{
		Executable:   executable,
		Abbreviation: abbreviation,
		Log:          log,
		UI:           ui,
		Scanner:      SystemScanner{},
		Sleep:        time.Sleep,
		Settle:       SettleDelay,
	}
}

// EnsureNotRunning returns once no game process is running from dir, or once
// the user has been warned that this could not be checked.
func (g *Guard) EnsureNotRunning(dir string) Resolution {
	g.Log.Debugf("Checking for a %s process running in the target folder...", g.Abbreviation)

	game, err := FindRunning(g.Scanner, g.Executable, dir)
	if err != nil {
		g.Log.WithError(err).Errorf("An unexpected error occurred while trying to find running %s processes.", g.Abbreviation)
		return g.unverified()
	}

	if game == nil {
		g.Log.Debugf("No %s process of concern found; looks safe to copy files.", g.Abbreviation)
		return NotRunning
	}

	g.Log.Infof("Found %s process of concern.", g.Abbreviation)
	resolution := g.close(game)
	g.Log.Infof("Handled %s process of concern (%s).", g.Abbreviation, resolution)
	return resolution
}

// unverified warns that the folder may still be in use
func (g *Guard) unverified() Resolution {
	g.UI.Warn(fmt.Sprintf("I was unable to finish searching for running %s processes.", g.Abbreviation))
	g.UI.Println(fmt.Sprintf("Please note that a %s game or background task running from the target folder", g.Abbreviation))
	g.UI.Println("could cause the program to crash due to errors.")
	g.UI.Println(fmt.Sprintf("Double-check and make sure no %s game or background task is running.", g.Abbreviation))
	return Unverified
}

// close asks the user whether to kill game, then kills it or waits
func (g *Guard) close(game *RunningGame) Resolution {
	g.Log.WithFields(logrus.Fields{
		"pid": game.PID,
		"exe": game.ExePath,
	}).Debugf("Found a %s process running from target folder. %s", g.Abbreviation, game)

	g.UI.Warn(fmt.Sprintf("%s is running from the target folder.", g.Abbreviation))
	g.UI.Warn(game.String())
	g.UI.Println("Would you like me to end the task for you? If not, I will give a message")
	g.UI.Println("describing how to find and close it.")

	resolution := ClosedByUser
	if g.UI.YesNo("", prompt.DefaultNone) {
		g.Log.Debugf("User wants the program to kill the running %s task.", g.Abbreviation)
		if err := game.Kill(); err != nil {
			g.Log.WithError(err).Errorf("An unexpected error occurred while trying to kill the %s process.", g.Abbreviation)
			g.UI.Warn(fmt.Sprintf("I was unable to kill the %s process. You will have to do it yourself.", g.Abbreviation))
			g.Log.Debug("Going into the user prompt loop due to a failure in killing the process.")
			if err := g.waitForUser(game); err != nil {
				return g.inputClosed(err)
			}
		} else {
			resolution = Killed
		}
	} else {
		g.Log.Debugf("User opted to kill the running %s process on their own.", g.Abbreviation)
		if err := g.waitForUser(game); err != nil {
			return g.inputClosed(err)
		}
	}

	g.sleep(g.Settle)
	return resolution
}

func (g *Guard) inputClosed(err error) Resolution {
	g.Log.WithError(err).Errorf("Stopped waiting for the %s process; no more input can be read.", g.Abbreviation)
	return g.unverified()
}

// waitForUser loops on a key press until game has exited. It fails when input
// is closed while the game still runs.
func (g *Guard) waitForUser(game *RunningGame) error {
	if game.Exited() {
		g.Log.Debug("Process ended before the user prompt loop started.")
		g.UI.Println("Process ended before I could prompt you. Skipping prompt loop.")
		g.UI.Println()
		return nil
	}

	for {
		g.UI.Println(fmt.Sprintf("Be sure that all %s game windows are closed. Then, if you are still", g.Abbreviation))
		g.UI.Println("getting this message, check Task Manager for any phantom processes.")
		g.Log.Debug("Waiting for user to close the running task.")
		keyErr := g.UI.WaitForKey("Press a key to continue. Or press CTRL + C to exit this program.")

		if game.Exited() {
			g.Log.Debugf("User continued the program after the %s process had exited.", g.Abbreviation)
			g.UI.Println()
			return nil
		}
		if keyErr != nil {
			return keyErr
		}
		g.Log.Debugf("User tried to continue but the %s process is still running, looping.", g.Abbreviation)
		g.UI.Println("Process still running, prompting again.")
	}
}

func (g *Guard) sleep(d time.Duration) {
	if g.Sleep == nil {
		time.Sleep(d)
		return
	}
	g.Sleep(d)
}
