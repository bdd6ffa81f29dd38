package progress

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalResponse(t *testing.T) {
	t.Parallel()

	t.Run("full response", func(t *testing.T) {
		t.Parallel()

		body := `{
			"complete": true,
			"error": null,
			"steps": [
				{"step": 7, "type": "place_word", "timestamp": 1700000000.5,
				 "data": {"variable": {"i": 0, "j": 1, "direction": "down", "length": 2},
				          "word": "AT",
				          "grid": [[{"type": "blocked", "letter": ""}, {"type": "cell", "letter": "A"}]]}}
			],
			"result": {"grid": [[{"type": "cell", "letter": "A"}]], "image": "aGk=", "width": 1, "height": 1}
		}`

		resp, err := UnmarshalResponse([]byte(body))
		require.NoError(t, err)

		assert.True(t, resp.Complete)
		assert.Empty(t, resp.Error)
		require.Len(t, resp.Steps, 1)
		step := resp.Steps[0]
		assert.Equal(t, 7, step.Seq)
		assert.Equal(t, StepPlaceWord, step.Type)
		require.NotNil(t, step.Data.Variable)
		assert.Equal(t, Variable{I: 0, J: 1, Direction: DirectionDown, Length: 2}, *step.Data.Variable)
		assert.True(t, step.Data.Grid[0][0].Blocked())
		require.NotNil(t, resp.Result)
		assert.Equal(t, "aGk=", resp.Result.Image)
	})

	t.Run("missing fields mean no steps and not complete", func(t *testing.T) {
		t.Parallel()

		resp, err := UnmarshalResponse([]byte(`{}`))
		require.NoError(t, err)
		assert.Empty(t, resp.Steps)
		assert.False(t, resp.Complete)
		assert.Nil(t, resp.Result)
	})

	t.Run("string error", func(t *testing.T) {
		t.Parallel()

		resp, err := UnmarshalResponse([]byte(`{"error": "No solution found", "complete": true}`))
		require.NoError(t, err)
		assert.Equal(t, "No solution found", resp.Error)
	})

	t.Run("non-string error is kept as text", func(t *testing.T) {
		t.Parallel()

		resp, err := UnmarshalResponse([]byte(`{"error": {"code": 3}}`))
		require.NoError(t, err)
		assert.Equal(t, `{"code": 3}`, resp.Error)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()

		_, err := UnmarshalResponse([]byte(`{`))
		require.Error(t, err)
	})
}

func TestStepTypeKnown(t *testing.T) {
	t.Parallel()

	for _, typ := range []StepType{StepSelectVariable, StepTryWord, StepPlaceWord, StepBacktrack, StepRejectWord} {
		assert.True(t, typ.Known(), typ)
	}
	assert.False(t, StepType("shuffle").Known())
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	t.Parallel()

	pngData := tinyPNG(t)
	encoded := base64.StdEncoding.EncodeToString(pngData)

	t.Run("plain base64", func(t *testing.T) {
		data, err := DecodeImage(&Result{Image: encoded})
		require.NoError(t, err)
		assert.Equal(t, pngData, data)
	})

	t.Run("data URI", func(t *testing.T) {
		data, err := DecodeImage(&Result{Image: "data:image/png;base64," + encoded})
		require.NoError(t, err)
		assert.Equal(t, pngData, data)
	})

	t.Run("missing image", func(t *testing.T) {
		_, err := DecodeImage(&Result{})
		assert.ErrorIs(t, err, ErrNoImage)
		_, err = DecodeImage(nil)
		assert.ErrorIs(t, err, ErrNoImage)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := DecodeImage(&Result{Image: "%%%"})
		require.Error(t, err)
	})

	t.Run("not a PNG", func(t *testing.T) {
		_, err := DecodeImage(&Result{Image: base64.StdEncoding.EncodeToString([]byte("hello"))})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a PNG")
	})
}
