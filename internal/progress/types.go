// Package progress holds the wire types of the crossword solving feed and the
// view-model that replaying solver steps folds into.
package progress

import (
	"encoding/json"
	"fmt"
)

// StepType identifies a solver event.
type StepType string

const (
	// StepSelectVariable reports which slot the solver is about to fill.
	StepSelectVariable StepType = "select_variable"
	// StepTryWord reports a candidate word for the selected slot.
	StepTryWord StepType = "try_word"
	// StepPlaceWord reports a candidate that was consistent and placed.
	StepPlaceWord StepType = "place_word"
	// StepBacktrack reports that a placed word was undone.
	StepBacktrack StepType = "backtrack"
	// StepRejectWord reports a candidate that failed consistency checks.
	StepRejectWord StepType = "reject_word"
)

// Known reports whether t is one of the step types the solver emits.
func (t StepType) Known() bool {
	switch t {
	case StepSelectVariable, StepTryWord, StepPlaceWord, StepBacktrack, StepRejectWord:
		return true
	}
	return false
}

// Direction is the orientation of a variable.
type Direction string

const (
	DirectionAcross Direction = "across"
	DirectionDown   Direction = "down"
)

// Cell types used by grids and structure previews.
const (
	CellTypeCell    = "cell"
	CellTypeBlocked = "blocked"
)

// Variable is a slot in the grid. I is the row and J the column of its first
// cell.
type Variable struct {
	I         int       `json:"i"`
	J         int       `json:"j"`
	Direction Direction `json:"direction"`
	Length    int       `json:"length"`
}

// Cell is a single grid square.
type Cell struct {
	Type   string `json:"type"`
	Letter string `json:"letter"`
}

// Blocked reports whether the cell cannot hold a letter.
func (c Cell) Blocked() bool {
	return c.Type == CellTypeBlocked
}

// Grid is a row-major matrix of cells.
type Grid [][]Cell

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the width of the widest row.
func (g Grid) Cols() int {
	cols := 0
	for _, row := range g {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < len(g) && col >= 0 && col < len(g[row])
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	cp := make(Grid, len(g))
	for i, row := range g {
		cp[i] = make([]Cell, len(row))
		copy(cp[i], row)
	}
	return cp
}

// StepData is the type-dependent payload of a step. Every field is optional.
type StepData struct {
	Variable       *Variable `json:"variable,omitempty"`
	Word           string    `json:"word,omitempty"`
	Grid           Grid      `json:"grid,omitempty"`
	AssignmentSize *int      `json:"assignment_size,omitempty"`
	Reason         string    `json:"reason,omitempty"`
}

// Step is one solver event.
type Step struct {
	// Seq is the server-side step counter. Zero when the server omits it.
	Seq       int      `json:"step,omitempty"`
	Type      StepType `json:"type"`
	Data      StepData `json:"data"`
	Timestamp float64  `json:"timestamp,omitempty"`
}

// Result is the final artifact of a completed solve.
type Result struct {
	Grid Grid `json:"grid"`
	// Image is a base64-encoded PNG.
	Image  string `json:"image"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Response is the body of a /solving-progress poll.
type Response struct {
	Steps    []Step  `json:"steps"`
	Complete bool    `json:"complete"`
	Error    string  `json:"error,omitempty"`
	Result   *Result `json:"result,omitempty"`
}

// UnmarshalResponse decodes a poll body. Missing steps and complete fields
// decode as no steps and not complete; a JSON null error is treated as absent.
func UnmarshalResponse(data []byte) (*Response, error) {
	var raw struct {
		Steps    []Step          `json:"steps"`
		Complete *bool           `json:"complete"`
		Error    json.RawMessage `json:"error"`
		Result   *Result         `json:"result"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal progress response: %w", err)
	}

	resp := &Response{
		Steps:  raw.Steps,
		Result: raw.Result,
	}
	if raw.Complete != nil {
		resp.Complete = *raw.Complete
	}
	if len(raw.Error) > 0 && string(raw.Error) != "null" {
		var msg string
		if err := json.Unmarshal(raw.Error, &msg); err != nil {
			// Non-string error payloads are reported as their JSON text.
			msg = string(raw.Error)
		}
		resp.Error = msg
	}
	return resp, nil
}
