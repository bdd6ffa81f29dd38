package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  StepType
		want Status
	}{
		{StepPlaceWord, StatusSuccess},
		{StepRejectWord, StatusError},
		{StepTryWord, StatusTrying},
		{StepSelectVariable, StatusHighlight},
		{StepBacktrack, StatusHighlight},
		{"other", StatusHighlight},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.typ))
		})
	}
}

func TestSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    Variable
		want []Position
	}{
		{
			name: "across extends along columns",
			v:    Variable{I: 2, J: 1, Direction: DirectionAcross, Length: 3},
			want: []Position{{2, 1}, {2, 2}, {2, 3}},
		},
		{
			name: "down extends along rows",
			v:    Variable{I: 0, J: 4, Direction: DirectionDown, Length: 2},
			want: []Position{{0, 4}, {1, 4}},
		},
		{
			name: "zero length",
			v:    Variable{Direction: DirectionAcross},
			want: nil,
		},
		{
			name: "unknown direction",
			v:    Variable{Direction: "diagonal", Length: 3},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Span(tt.v))
		})
	}
}

func TestMarkClipsToGrid(t *testing.T) {
	t.Parallel()

	g := blankGrid(2, 3)
	h := Mark(g, Variable{I: 1, J: 1, Direction: DirectionAcross, Length: 5}, StatusError)

	assert.Len(t, h, 2)
	assert.Equal(t, StatusError, h.At(1, 1))
	assert.Equal(t, StatusError, h.At(1, 2))
}

func TestMarkHugeLength(t *testing.T) {
	t.Parallel()

	g := blankGrid(1, 2)
	require.NotPanics(t, func() {
		h := Mark(g, Variable{I: 0, J: 0, Direction: DirectionAcross, Length: 1 << 50}, StatusSuccess)
		assert.Len(t, h, 2)
	})

	h := Mark(blankGrid(3, 1), Variable{I: -2, J: 0, Direction: DirectionDown, Length: 4}, StatusTrying)
	assert.Len(t, h, 2)
	assert.Equal(t, StatusTrying, h.At(0, 0))
	assert.Equal(t, StatusTrying, h.At(1, 0))

	assert.Empty(t, Mark(g, Variable{I: 0, J: 5, Direction: DirectionAcross, Length: 3}, StatusError))
}

func TestApplyHugeVariableLength(t *testing.T) {
	t.Parallel()

	st := NewState(DefaultLogCapacity)
	require.NotPanics(t, func() {
		st.Apply(Step{Type: StepPlaceWord, Data: StepData{
			Grid:     blankGrid(1, 2),
			Variable: &Variable{Direction: DirectionAcross, Length: 1 << 50},
		}})
	})
	assert.Len(t, st.Highlight, 2)
	assert.Equal(t, 1, st.Stats.Placements)
}

func TestGridHelpers(t *testing.T) {
	t.Parallel()

	g := Grid{
		{{Type: CellTypeCell}, {Type: CellTypeBlocked}},
		{{Type: CellTypeCell}},
	}

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 2, g.Cols())
	assert.True(t, g.InBounds(0, 1))
	assert.False(t, g.InBounds(1, 1))
	assert.False(t, g.InBounds(-1, 0))
	assert.True(t, g[0][1].Blocked())
	assert.Nil(t, Grid(nil).Clone())
}
