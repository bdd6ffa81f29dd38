package render

import (
	"strings"
	"unicode/utf8"
)

// Box drawing characters.
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

// BoxWithTitle draws a box around content lines. The box is as wide as the
// widest visible line; styled lines are measured without their escape codes.
func BoxWithTitle(title string, content []string) []string {
	inner := utf8.RuneCountInString(title) + 2
	for _, line := range content {
		if w := utf8.RuneCountInString(StripANSI(line)); w > inner {
			inner = w
		}
	}

	lines := make([]string, 0, len(content)+2)
	top := BoxHorizontal
	if title != "" {
		top += " " + title + " "
	}
	top += strings.Repeat(BoxHorizontal, inner+2-utf8.RuneCountInString(top))
	lines = append(lines, BoxTopLeft+top+BoxTopRight)

	for _, line := range content {
		pad := inner - utf8.RuneCountInString(StripANSI(line))
		lines = append(lines, BoxVertical+" "+line+strings.Repeat(" ", pad)+" "+BoxVertical)
	}

	lines = append(lines, BoxBottomLeft+strings.Repeat(BoxHorizontal, inner+2)+BoxBottomRight)
	return lines
}

// Truncate shortens s to width runes, ending with an ellipsis if cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width >= 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}
