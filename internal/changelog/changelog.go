package changelog

import (
	"fmt"
	"strings"
)

// MaxNotes is how many release notes are shown before the rest are summarized
const MaxNotes = 8

// FormatNote turns one line of a release body into a cliff note, or returns
// "" for lines that are not worth showing
func FormatNote(line string) string {
	line = strings.TrimSpace(line)
	for _, bullet := range []string{"- ", "* ", "+ "} {
		line = strings.TrimPrefix(line, bullet)
	}
	line = strings.TrimSpace(line)

	// Skip headings, rules and link-only lines
	if line == "" || strings.HasPrefix(line, "#") || strings.Trim(line, "-=*_") == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(line), "**full changelog**") {
		return ""
	}

	// Capitalize first letter
	runes := []rune(line)
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]

	return "* " + string(runes)
}

// Notes extracts up to limit cliff notes from a markdown release body. When
// there are more, a final line says how many were left out.
func Notes(body string, limit int) []string {
	var notes []string
	for _, line := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		if note := FormatNote(line); note != "" {
			notes = append(notes, note)
		}
	}

	if limit > 0 && len(notes) > limit {
		rest := len(notes) - limit
		notes = append(notes[:limit], fmt.Sprintf("...and %d more, see the release page.", rest))
	}
	return notes
}

// Build returns the release's notes as printable text, or "" when there are none
func Build(tag, body string) string {
	notes := Notes(body, MaxNotes)
	if len(notes) == 0 {
		return ""
	}

	var changelog strings.Builder
	changelog.WriteString(fmt.Sprintf("Changes in %s:\n", tag))
	for _, note := range notes {
		changelog.WriteString("  " + note + "\n")
	}
	return changelog.String()
}
