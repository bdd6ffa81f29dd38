package render

import (
	"fmt"
	"strings"

	"github.com/thruflo/crosswatch/internal/progress"
)

// Glyphs used for grid cells.
const (
	GlyphBlocked = "#"
	GlyphEmpty   = "."
)

// MaxPreviewWords is how many words a word-list preview shows before
// summarising the rest.
const MaxPreviewWords = 10

func statusCodes(s progress.Status) []string {
	switch s {
	case progress.StatusSuccess:
		return []string{Bold, FgGreen}
	case progress.StatusError:
		return []string{Bold, FgRed}
	case progress.StatusTrying:
		return []string{Bold, FgYellow}
	case progress.StatusHighlight:
		return []string{FgCyan}
	}
	return nil
}

// statusMark is the plain-text marker placed after a highlighted cell when
// color is disabled.
func statusMark(s progress.Status) string {
	switch s {
	case progress.StatusSuccess:
		return "+"
	case progress.StatusError:
		return "x"
	case progress.StatusTrying:
		return "?"
	case progress.StatusHighlight:
		return "*"
	}
	return " "
}

// Grid renders g one line per row. Highlighted cells are colored, or
// followed by a status marker when color is off.
func Grid(g progress.Grid, h progress.Highlight, color bool) []string {
	lines := make([]string, 0, len(g))
	for i, row := range g {
		var sb strings.Builder
		for j, cell := range row {
			glyph := GlyphEmpty
			switch {
			case cell.Blocked():
				glyph = GlyphBlocked
			case cell.Letter != "":
				glyph = strings.ToUpper(cell.Letter)
			}

			status := h.At(i, j)
			if color {
				if j > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(Style(glyph, status != "", statusCodes(status)...))
				continue
			}
			sb.WriteString(glyph)
			sb.WriteString(statusMark(status))
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}

// Stats renders the counters on one line.
func Stats(s progress.Stats) string {
	return fmt.Sprintf("attempts: %d  placements: %d  backtracks: %d", s.Attempts, s.Placements, s.Backtracks)
}

// Log renders log entries oldest first, keeping at most the last n.
func Log(entries []progress.LogEntry, n int) []string {
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%5d  %s", e.Seq, e.Message)
	}
	return lines
}

// Panel renders the full live view of a solving session.
func Panel(st *progress.State, logLines int, color bool) string {
	var content []string
	if len(st.Grid) == 0 {
		content = append(content, "Initializing solver...")
	} else {
		content = append(content, Grid(st.Grid, st.Highlight, color)...)
	}

	var sb strings.Builder
	for _, line := range BoxWithTitle("grid", content) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(Style(Stats(st.Stats), color, Bold))
	sb.WriteString("\n")
	for _, line := range Log(st.Log.Entries(), logLines) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// StructurePreview renders cell-type tags from a structure preview.
func StructurePreview(preview [][]string) []string {
	lines := make([]string, len(preview))
	for i, row := range preview {
		var sb strings.Builder
		for _, tag := range row {
			if tag == progress.CellTypeCell {
				sb.WriteString(GlyphEmpty)
			} else {
				sb.WriteString(GlyphBlocked)
			}
		}
		lines[i] = sb.String()
	}
	return lines
}

// WordsPreview lists up to max words and summarises the remainder as
// "+N more".
func WordsPreview(words []string, max int) string {
	if max <= 0 {
		max = MaxPreviewWords
	}
	if len(words) <= max {
		return strings.Join(words, ", ")
	}
	return strings.Join(words[:max], ", ") + fmt.Sprintf(", +%d more", len(words)-max)
}
