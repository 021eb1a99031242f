// Package install certifies that a folder is a genuine, untampered game
// installation and tells the user when a newer release exists.
package install

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/TombRunners/trvs/internal/game"
	"github.com/TombRunners/trvs/internal/integrity"
	"github.com/TombRunners/trvs/internal/paths"
)

// Kind categorizes a validation result
type Kind int

const (
	Valid Kind = iota
	// MissingRequiredFile is a packaged file that could not be found for hashing
	MissingRequiredFile
	// TamperedFile is a packaged file whose digest does not match
	TamperedFile
	// MissingInstallFile is a game file that marks the folder as an installation
	MissingInstallFile
)

func (k Kind) String() string {
	switch k {
	case Valid:
		return "valid"
	case MissingRequiredFile:
		return "missing required file"
	case TamperedFile:
		return "tampered file"
	case MissingInstallFile:
		return "missing install file"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the result of one validation run
type Outcome struct {
	Kind     Kind
	File     string
	Expected string
	Actual   string
}

// OK reports whether the installation passed
func (o Outcome) OK() bool {
	return o.Kind == Valid
}

// Err returns the failure as an error, or nil for a valid installation
func (o Outcome) Err() error {
	if o.OK() {
		return nil
	}
	return &ValidationError{Outcome: o}
}

// Message is the text shown to the user for a failed outcome
func (o Outcome) Message(abbreviation string) string {
	switch o.Kind {
	case MissingRequiredFile:
		return fmt.Sprintf("Required file %s is missing.", o.File)
	case TamperedFile:
		return fmt.Sprintf("File %s was modified.\nGot %s, expected %s", o.File, o.Actual, o.Expected)
	case MissingInstallFile:
		return fmt.Sprintf("Parent folder is missing game file %s, cannot be a %s installation.", o.File, abbreviation)
	default:
		return ""
	}
}

// ValidationError is a categorized validation failure
type ValidationError struct {
	Outcome
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case TamperedFile:
		return fmt.Sprintf("%s: %s (got %s, expected %s)", e.Kind, e.File, e.Actual, e.Expected)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.File)
	}
}

// Validate checks every packaged file's digest in order, then checks that the
// game folder holds the files identifying an installation. The first problem
// found is returned. Unexpected I/O failures are returned as errors.
func Validate(audit game.FileAudit, dirs game.Directories) (Outcome, error) {
	for _, entry := range audit.PackagedFiles() {
		path := filepath.Join(dirs.Packaged(), paths.Denormalize(entry.Name))

		actual, err := integrity.MD5(path)
		if errors.Is(err, integrity.ErrFileNotFound) {
			return Outcome{Kind: MissingRequiredFile, File: entry.Name}, nil
		}
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to verify %s: %w", entry.Name, err)
		}

		expected := strings.ToLower(entry.MD5)
		if actual != expected {
			return Outcome{Kind: TamperedFile, File: entry.Name, Expected: expected, Actual: actual}, nil
		}
	}

	if name, missing := integrity.FindMissing(audit.GameFiles(), dirs.Game()); missing {
		return Outcome{Kind: MissingInstallFile, File: name}, nil
	}

	return Outcome{Kind: Valid}, nil
}
