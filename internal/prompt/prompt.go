package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"golang.org/x/term"

	"github.com/TombRunners/trvs/internal/console"
)

// Default is the answer given to a yes/no prompt on empty input
type Default int

const (
	DefaultNone Default = iota
	DefaultYes
	DefaultNo
)

// Suffix is the answer hint shown after a yes/no prompt
func (d Default) Suffix() string {
	switch d {
	case DefaultYes:
		return "[Y/n]"
	case DefaultNo:
		return "[y/N]"
	default:
		return "[y/n]"
	}
}

// SoundPlayer defines the interface for playing sounds
type SoundPlayer interface {
	Play(name string)
	PlayAsync(name string)
}

// ErrCancelled is returned when the user backs out of a selection
var ErrCancelled = errors.New("selection cancelled")

// ctrlC is the byte a raw-mode terminal delivers for CTRL + C
const ctrlC = 0x03

// Prompter reads answers from the user and writes prompts to the console
type Prompter struct {
	*console.Printer
	in *bufio.Reader
	// fd is the terminal backing in, or -1 when in is not a terminal
	fd int

	Sound SoundPlayer
	// OnInterrupt runs when CTRL + C is read while waiting for a key
	OnInterrupt func()
}

// New creates a prompter reading from in and printing to out.
// Nil arguments default to os.Stdin and os.Stdout.
func New(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}

	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}

	return &Prompter{
		Printer: console.NewPrinter(out),
		in:      bufio.NewReader(in),
		fd:      fd,
	}
}

func (p *Prompter) play(name string) {
	if p.Sound != nil {
		p.Sound.Play(name)
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// YesNo asks a yes/no question until it gets an answer. Empty input takes the
// default, or asks again when there is none. An empty text uses "Yes or no?".
func (p *Prompter) YesNo(text string, def Default) bool {
	if text == "" {
		text = "Yes or no?"
	}
	question := fmt.Sprintf("%s %s: ", text, def.Suffix())

	for {
		p.Print(question)
		answer, err := p.readLine()
		p.Println()
		if err != nil {
			// Input is gone; only a default can answer
			return def == DefaultYes
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			p.play("select")
			return true
		case "n", "no":
			p.play("select")
			return false
		case "":
			if def == DefaultYes {
				return true
			}
			if def == DefaultNo {
				return false
			}
		}
	}
}

// WaitForKey prints text, when given, and blocks until a key is pressed.
// Without a terminal a whole line is read instead. An error means input is
// closed and no key will ever arrive.
func (p *Prompter) WaitForKey(text string) error {
	if text != "" {
		p.Println(text)
	}

	if p.fd >= 0 {
		if state, err := term.MakeRaw(p.fd); err == nil {
			b, readErr := p.in.ReadByte()
			_ = term.Restore(p.fd, state)
			if readErr != nil {
				return fmt.Errorf("failed to read key: %w", readErr)
			}
			if b == ctrlC && p.OnInterrupt != nil {
				p.OnInterrupt()
			}
			return nil
		}
	}

	if _, err := p.readLine(); err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}
	return nil
}

// Menu prints numbered options and returns the index of the chosen one
func (p *Prompter) Menu(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options to choose from")
	}

	p.Println()
	p.Println(title)
	p.Println()
	for i, option := range options {
		p.Printf("  %d. %s\n", i+1, option)
	}
	p.Println()
	p.Printf("Enter your choice (1-%d): ", len(options))

	for {
		response, err := p.readLine()
		if err != nil {
			p.Println()
			return 0, fmt.Errorf("failed to read choice: %w", err)
		}

		choice, err := strconv.Atoi(response)
		if err == nil && choice >= 1 && choice <= len(options) {
			p.play("select")
			return choice - 1, nil
		}
		p.Printf("Invalid choice. Please enter a number from 1 to %d: ", len(options))
	}
}

// SelectFolder opens the shell folder selection dialog owned by window
func SelectFolder(title string, window uintptr) (string, error) {
	// Fails harmlessly when COM is already initialized on this thread
	_ = ole.CoInitialize(0)
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("Shell.Application")
	if err != nil {
		return "", fmt.Errorf("failed to create Shell object: %w", err)
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return "", fmt.Errorf("failed to get IDispatch interface: %w", err)
	}
	defer shell.Release()

	// 0x10 adds an edit box for typing a path
	folderObj, err := oleutil.CallMethod(shell, "BrowseForFolder", int(window), title, 0x10)
	if err != nil {
		return "", fmt.Errorf("failed to show folder dialog: %w", err)
	}

	if folderObj.Value() == nil {
		return "", ErrCancelled
	}

	folderItem := folderObj.ToIDispatch()
	if folderItem == nil {
		return "", ErrCancelled
	}
	defer folderItem.Release()

	selfProp, err := oleutil.GetProperty(folderItem, "Self")
	if err != nil {
		return "", fmt.Errorf("failed to get folder item: %w", err)
	}

	selfDispatch := selfProp.ToIDispatch()
	defer selfDispatch.Release()

	pathProp, err := oleutil.GetProperty(selfDispatch, "Path")
	if err != nil {
		return "", fmt.Errorf("failed to get folder path: %w", err)
	}

	selectedPath := pathProp.ToString()
	if selectedPath == "" {
		return "", ErrCancelled
	}

	return selectedPath, nil
}
