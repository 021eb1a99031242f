//go:build !windows

package console

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Attach reports whether stdout is a terminal; other platforms never need to
// create a console.
func Attach() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// SetTitle sets the terminal title with an OSC escape sequence
func SetTitle(title string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil
	}
	_, err := fmt.Fprintf(os.Stdout, "\033]0;%s\007", title)
	return err
}

// Window has no meaning outside Windows
func Window() uintptr {
	return 0
}
