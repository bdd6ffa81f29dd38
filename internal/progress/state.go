package progress

import (
	"fmt"
	"strings"
)

// DefaultLogCapacity is how many log entries the view-model retains.
const DefaultLogCapacity = 50

// Stats are the counters derived from the steps seen so far.
type Stats struct {
	Attempts   int `json:"attempts"`
	Placements int `json:"placements"`
	Backtracks int `json:"backtracks"`
}

// Count folds a single step into the counters.
func (s *Stats) Count(step Step) {
	switch step.Type {
	case StepTryWord:
		s.Attempts++
	case StepPlaceWord:
		s.Placements++
	case StepBacktrack:
		s.Backtracks++
	}
}

// LogEntry is a rendered line of the solving log.
type LogEntry struct {
	Seq     int
	Type    StepType
	Message string
}

// EventLog is a fixed-capacity FIFO of log entries. When full, appending
// evicts the oldest entry.
type EventLog struct {
	buf   []LogEntry
	start int
	size  int
}

// NewEventLog creates a log that retains at most capacity entries.
// A capacity below one is raised to one.
func NewEventLog(capacity int) *EventLog {
	if capacity < 1 {
		capacity = 1
	}
	return &EventLog{buf: make([]LogEntry, capacity)}
}

// Append adds an entry, evicting the oldest one if the log is full.
func (l *EventLog) Append(e LogEntry) {
	if l.size < len(l.buf) {
		l.buf[(l.start+l.size)%len(l.buf)] = e
		l.size++
		return
	}
	l.buf[l.start] = e
	l.start = (l.start + 1) % len(l.buf)
}

// Len returns the number of retained entries.
func (l *EventLog) Len() int {
	return l.size
}

// Cap returns the maximum number of retained entries.
func (l *EventLog) Cap() int {
	return len(l.buf)
}

// Entries returns the retained entries, oldest first.
func (l *EventLog) Entries() []LogEntry {
	out := make([]LogEntry, l.size)
	for i := 0; i < l.size; i++ {
		out[i] = l.buf[(l.start+i)%len(l.buf)]
	}
	return out
}

// Reset drops every entry.
func (l *EventLog) Reset() {
	l.start = 0
	l.size = 0
}

// State is the view-model of one solving session. It is owned by a single
// writer and only changes through Apply.
type State struct {
	Stats     Stats
	Log       *EventLog
	Grid      Grid
	Highlight Highlight
	LastStep  *Step
	// StepsSeen counts every step applied, including unknown types.
	StepsSeen int
}

// NewState creates an empty view-model with the given log capacity.
func NewState(logCapacity int) *State {
	return &State{Log: NewEventLog(logCapacity)}
}

// Reset returns the state to its initial values, keeping the log capacity.
func (s *State) Reset() {
	s.Stats = Stats{}
	s.Log.Reset()
	s.Grid = nil
	s.Highlight = nil
	s.LastStep = nil
	s.StepsSeen = 0
}

// Apply replays a step into the state. Steps carrying a grid snapshot
// replace the displayed grid; if they also carry a variable, the spanned
// cells are highlighted with a status derived from the step type.
func (s *State) Apply(step Step) {
	s.StepsSeen++
	s.Stats.Count(step)

	seq := step.Seq
	if seq == 0 {
		seq = s.StepsSeen
	}
	s.Log.Append(LogEntry{
		Seq:     seq,
		Type:    step.Type,
		Message: Describe(step),
	})

	if step.Data.Grid != nil {
		s.Grid = step.Data.Grid.Clone()
		s.Highlight = nil
		if step.Data.Variable != nil {
			s.Highlight = Mark(s.Grid, *step.Data.Variable, StatusFor(step.Type))
		}
	}

	last := step
	s.LastStep = &last
}

// Describe renders a step as one line of the solving log.
func Describe(step Step) string {
	d := step.Data
	switch step.Type {
	case StepSelectVariable:
		if d.Variable == nil {
			return "Selecting variable"
		}
		return fmt.Sprintf("Selecting variable at (%d, %d) %s", d.Variable.I, d.Variable.J, d.Variable.Direction)
	case StepTryWord:
		return "Trying word: " + d.Word
	case StepPlaceWord:
		return "Placed: " + d.Word
	case StepBacktrack:
		return "Backtracking from: " + d.Word
	case StepRejectWord:
		msg := "Rejected: " + d.Word
		if d.Reason != "" {
			msg += " (" + d.Reason + ")"
		}
		return msg
	default:
		return strings.TrimSpace("Unknown step " + string(step.Type) + " " + d.Word)
	}
}
