package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/thruflo/crosswatch/internal/progress"
)

// Display writes session progress to a terminal. In live mode every update
// clears the screen and redraws the panel; otherwise only log lines are
// written as steps arrive.
type Display struct {
	out      io.Writer
	color    bool
	live     bool
	logLines int
	width    int
}

// NewDisplay creates a Display writing to out.
func NewDisplay(out io.Writer, color, live bool, logLines int) *Display {
	return &Display{out: out, color: color, live: live, logLines: logLines, width: Width(out, 0)}
}

// Step reports a replayed step.
func (d *Display) Step(st *progress.State, step progress.Step) {
	if d.live {
		fmt.Fprint(d.out, ClearScreen+CursorHome)
		fmt.Fprint(d.out, d.fit(Panel(st, d.logLines, d.color)))
		return
	}
	fmt.Fprintln(d.out, progress.Describe(step))
}

// Final prints the finished grid and counters.
func (d *Display) Final(st *progress.State, result *progress.Result) {
	grid := st.Grid
	if result != nil && len(result.Grid) > 0 {
		grid = result.Grid
	}
	if d.live {
		fmt.Fprint(d.out, ClearScreen+CursorHome)
	}
	if len(grid) > 0 {
		fmt.Fprintln(d.out, strings.Join(BoxWithTitle("crossword", Grid(grid, nil, d.color)), "\n"))
	}
	fmt.Fprintln(d.out, Style(Stats(st.Stats), d.color, Bold))
}

// fit truncates uncolored panel lines to the terminal width.
func (d *Display) fit(panel string) string {
	if d.width <= 0 {
		return panel
	}
	lines := strings.Split(panel, "\n")
	for i, line := range lines {
		if line == StripANSI(line) {
			lines[i] = Truncate(line, d.width)
		}
	}
	return strings.Join(lines, "\n")
}
