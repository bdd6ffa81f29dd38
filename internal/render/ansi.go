// Package render draws the solving view-model as plain terminal text.
package render

import "strings"

// ANSI escape codes.
const (
	ClearScreen = "\033[2J"
	CursorHome  = "\033[H"

	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Reverse = "\033[7m"

	FgRed    = "\033[31m"
	FgGreen  = "\033[32m"
	FgYellow = "\033[33m"
	FgCyan   = "\033[36m"
)

// Style wraps s in the given codes when enabled is true.
func Style(s string, enabled bool, codes ...string) string {
	if !enabled || len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// StripANSI removes escape sequences, for measuring styled text.
func StripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
