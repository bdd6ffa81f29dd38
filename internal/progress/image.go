package progress

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"strings"
)

// ErrNoImage is returned when a result carries no image payload.
var ErrNoImage = errors.New("result has no image")

// DecodeImage returns the PNG bytes of the result image. A data URI prefix is
// tolerated. The payload must decode as a PNG header.
func DecodeImage(r *Result) ([]byte, error) {
	if r == nil || r.Image == "" {
		return nil, ErrNoImage
	}

	payload := r.Image
	if i := strings.Index(payload, ","); strings.HasPrefix(payload, "data:") && i >= 0 {
		payload = payload[i+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("image is not a PNG: %w", err)
	}
	return data, nil
}
