package progress

// Status is the highlight applied to the cells of the current variable.
type Status string

const (
	StatusHighlight Status = "highlight"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
	StatusTrying    Status = "trying"
)

// StatusFor maps a step type to the highlight status of its variable.
func StatusFor(t StepType) Status {
	switch t {
	case StepPlaceWord:
		return StatusSuccess
	case StepRejectWord:
		return StatusError
	case StepTryWord:
		return StatusTrying
	default:
		return StatusHighlight
	}
}

// Position addresses a cell by row and column.
type Position struct {
	Row int
	Col int
}

// Span returns the cells covered by v in order from its first cell. Across
// variables extend along the columns of row I, down variables along the rows
// of column J. Unknown directions and non-positive lengths span nothing.
func Span(v Variable) []Position {
	dr, dc, ok := stride(v)
	if !ok {
		return nil
	}

	out := make([]Position, v.Length)
	for k := 0; k < v.Length; k++ {
		out[k] = Position{Row: v.I + k*dr, Col: v.J + k*dc}
	}
	return out
}

func stride(v Variable) (dr, dc int, ok bool) {
	if v.Length <= 0 {
		return 0, 0, false
	}
	switch v.Direction {
	case DirectionAcross:
		return 0, 1, true
	case DirectionDown:
		return 1, 0, true
	}
	return 0, 0, false
}

// Highlight maps highlighted positions to their status.
type Highlight map[Position]Status

// At returns the status of (row, col), or "" when it is not highlighted.
func (h Highlight) At(row, col int) Status {
	return h[Position{Row: row, Col: col}]
}

// Mark highlights the cells of v that fall inside g with status. Only the
// part of the span that can overlap g is walked.
func Mark(g Grid, v Variable, status Status) Highlight {
	h := make(Highlight)
	dr, dc, ok := stride(v)
	if !ok {
		return h
	}

	start, limit := v.J, g.Cols()
	if dr == 1 {
		start, limit = v.I, g.Rows()
	}
	first := 0
	if start < 0 {
		first = -start
	}
	last := v.Length
	if limit-start < last {
		last = limit - start
	}

	for k := first; k < last; k++ {
		row, col := v.I+k*dr, v.J+k*dc
		if g.InBounds(row, col) {
			h[Position{Row: row, Col: col}] = status
		}
	}
	return h
}
