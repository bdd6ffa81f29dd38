package testutil

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thruflo/crosswatch/internal/progress"
)

// SampleStructure is the text form of the sample grid: '_' is a fillable
// cell and anything else is blocked.
const SampleStructure = "_#_\n___\n_#_"

// SampleWords is the word list that solves the sample structure.
var SampleWords = []string{"CAT", "ACE", "THE", "AXE"}

// SampleGrid returns the empty 3x3 sample structure.
func SampleGrid() progress.Grid {
	return gridFromRows([]string{"_#_", "___", "_#_"})
}

// SampleSolvedGrid returns the sample structure with CAT down the first
// column, ACE across the middle row and THE down the last column.
func SampleSolvedGrid() progress.Grid {
	return gridFromRows([]string{"C#T", "ACH", "T#E"})
}

func gridFromRows(rows []string) progress.Grid {
	g := make(progress.Grid, len(rows))
	for i, row := range rows {
		g[i] = make([]progress.Cell, len(row))
		for j, ch := range row {
			switch ch {
			case '#':
				g[i][j] = progress.Cell{Type: progress.CellTypeBlocked}
			case '_':
				g[i][j] = progress.Cell{Type: progress.CellTypeCell}
			default:
				g[i][j] = progress.Cell{Type: progress.CellTypeCell, Letter: string(ch)}
			}
		}
	}
	return g
}

// Sample variables of the 3x3 structure.
var (
	VarCatDown   = progress.Variable{I: 0, J: 0, Direction: progress.DirectionDown, Length: 3}
	VarAceAcross = progress.Variable{I: 1, J: 0, Direction: progress.DirectionAcross, Length: 3}
)

// SampleSteps returns a short solve: CAT placed, AXE rejected, ACE placed,
// ACE backtracked. Counts: 3 attempts, 2 placements, 1 backtrack.
func SampleSteps() []progress.Step {
	cat := VarCatDown
	ace := VarAceAcross
	size := 0
	return []progress.Step{
		{Seq: 1, Type: progress.StepSelectVariable, Data: progress.StepData{Variable: &cat, AssignmentSize: &size}},
		{Seq: 2, Type: progress.StepTryWord, Data: progress.StepData{Variable: &cat, Word: "CAT", Grid: gridFromRows([]string{"C#_", "A__", "T#_"})}},
		{Seq: 3, Type: progress.StepPlaceWord, Data: progress.StepData{Variable: &cat, Word: "CAT", Grid: gridFromRows([]string{"C#_", "A__", "T#_"})}},
		{Seq: 4, Type: progress.StepSelectVariable, Data: progress.StepData{Variable: &ace}},
		{Seq: 5, Type: progress.StepTryWord, Data: progress.StepData{Variable: &ace, Word: "AXE", Grid: gridFromRows([]string{"C#_", "AXE", "T#_"})}},
		{Seq: 6, Type: progress.StepRejectWord, Data: progress.StepData{Variable: &ace, Word: "AXE", Reason: "inconsistent"}},
		{Seq: 7, Type: progress.StepTryWord, Data: progress.StepData{Variable: &ace, Word: "ACE", Grid: gridFromRows([]string{"C#_", "ACE", "T#_"})}},
		{Seq: 8, Type: progress.StepPlaceWord, Data: progress.StepData{Variable: &ace, Word: "ACE", Grid: gridFromRows([]string{"C#_", "ACE", "T#_"})}},
		{Seq: 9, Type: progress.StepBacktrack, Data: progress.StepData{Variable: &ace, Word: "ACE", Grid: gridFromRows([]string{"C#_", "A__", "T#_"})}},
	}
}

// SamplePNG returns a base64-encoded 3x3 PNG.
func SamplePNG(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.Set(1, 0, color.Black)
	img.Set(1, 2, color.Black)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// SampleResult returns a completed result for the sample structure.
func SampleResult(t *testing.T) *progress.Result {
	t.Helper()
	return &progress.Result{
		Grid:   SampleSolvedGrid(),
		Image:  SamplePNG(t),
		Width:  3,
		Height: 3,
	}
}
