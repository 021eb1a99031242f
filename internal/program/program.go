// Package program runs one version swap from splash screen to exit.
package program

import (
	"github.com/TombRunners/trvs/internal/console"
	"github.com/TombRunners/trvs/internal/game"
	"github.com/TombRunners/trvs/internal/session"
	"github.com/TombRunners/trvs/internal/swap"
)

// Author is credited on the splash screen
const Author = "Midge"

// Checks are the startup checks run before swapping
type Checks interface {
	VersionCheck()
	ValidateInstallation() bool
}

// Splash prints the game's art and the project credits
func Splash(p *console.Printer, def game.Definition) {
	for _, line := range def.AsciiArt {
		p.PrintCentered(line, console.Cyan)
	}
	p.PrintCentered("Made with love by "+Author, console.Cyan)
	p.PrintCentered("Source code: "+def.RepoLink(), console.Plain)
	p.Println()
}

// Run checks for updates, validates the installation, swaps versions, and
// returns the process exit code
func Run(s *session.Session, checks Checks, swapper swap.Swapper) int {
	checks.VersionCheck()

	if !checks.ValidateInstallation() {
		return s.ExitCode
	}

	err := swapper.SwapVersions()
	if s.ExitCode != session.ExitOK {
		// A file operation already reported its failure and exited
		return s.ExitCode
	}
	if err != nil {
		return s.GiveErrorMessageAndExit("An unexpected error occurred while swapping versions.", err, session.ExitUnexpected)
	}

	s.Log.Info("Version swap complete.")
	if s.UI.Sound != nil {
		s.UI.Sound.Play("success")
	}
	s.UI.PrintHeader("Version swap complete!", "Press any key to exit...", console.White)
	s.UI.WaitForKey("")
	return session.ExitOK
}
