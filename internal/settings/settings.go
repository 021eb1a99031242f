// Package settings loads the user's appsettings.json from the program folder.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the settings file kept next to the executable
const FileName = "appsettings.json"

// Settings are the user-editable program settings
type Settings struct {
	// LogFileLimit is how many session logs to keep; 0 keeps all of them
	LogFileLimit int `json:"LogFileLimit"`
	// PlaySounds enables sound cues
	PlaySounds bool `json:"PlaySounds"`
}

// Default returns the settings written to a new settings file
func Default() Settings {
	return Settings{
		LogFileLimit: 15,
		PlaySounds:   true,
	}
}

var defaultFile = []string{
	"{",
	"  // The number of log files the program will allow before deleting the oldest one(s).",
	"  // Set to 0 to allow infinite log file generation.",
	"  // Default: 15",
	`  "LogFileLimit": 15,`,
	"  // Whether to play sound cues for prompts and errors.",
	"  // Default: true",
	`  "PlaySounds": true`,
	"}",
}

// Path returns the settings file location inside dir
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads the settings file in dir, writing a default one first when it
// does not exist. created reports whether that happened.
func Load(dir string) (s Settings, created bool, err error) {
	path := Path(dir)

	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		if err := WriteDefault(path); err != nil {
			return Settings{}, false, err
		}
		created = true
	}

	s, err = Read(path)
	return s, created, err
}

// WriteDefault writes the commented default settings file to path
func WriteDefault(path string) error {
	data := strings.Join(defaultFile, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write default settings: %w", err)
	}
	return nil
}

// Read parses a settings file. Lines starting with // are comments.
// Fields missing from the file keep their default values.
func Read(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	var jsonLines []string
	for _, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "//") {
			jsonLines = append(jsonLines, line)
		}
	}

	s := Default()
	if err := json.Unmarshal([]byte(strings.Join(jsonLines, "\n")), &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	if s.LogFileLimit < 0 {
		return Settings{}, fmt.Errorf("failed to parse settings: LogFileLimit must not be negative, got %d", s.LogFileLimit)
	}

	return s, nil
}
