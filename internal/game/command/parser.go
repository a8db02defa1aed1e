package command

import (
	"strconv"
	"strings"

	"github.com/cory-johannsen/textmoba/internal/game/character"
)

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the raw text after the command.
	RawArgs string
}

// Parse splits a text line into a command and arguments.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty.
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}

	// Split at the first whitespace for the command word
	spaceIdx := strings.IndexFunc(line, isSpace)
	if spaceIdx < 0 {
		return ParseResult{
			Command: strings.ToLower(line),
		}
	}

	cmd := strings.ToLower(line[:spaceIdx])
	rest := strings.TrimSpace(line[spaceIdx+1:])

	var args []string
	if rest != "" {
		args = strings.Fields(rest)
	}

	return ParseResult{
		Command: cmd,
		Args:    args,
		RawArgs: rest,
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// IndexResult is the outcome of parsing a character number.
type IndexResult struct {
	Value int
	OK    bool
}

// ParseIndex parses a character number as shown by look.
//
// Postcondition: OK is false for anything but a non-negative decimal integer.
func ParseIndex(s string) IndexResult {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return IndexResult{}
	}
	return IndexResult{Value: n, OK: true}
}

// ParseRow parses "front" or "back", case-insensitively.
func ParseRow(s string) (character.Row, bool) {
	return character.ParseRow(s)
}
