package tesseract

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSplitsLanguages(t *testing.T) {
	require.Equal(t, []string{"eng", "ind"}, New("eng+ind").langs)
	require.Equal(t, []string{"eng"}, New(" eng ").langs)
	require.Nil(t, New("").langs)
}

func TestRecognizeBlankImage(t *testing.T) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}

	im := image.NewRGBA(image.Rect(0, 0, 200, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 200; x++ {
			im.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, im))

	spans, err := New("eng").Recognize(context.Background(), buf.Bytes())
	require.NoError(t, err)
	require.Empty(t, spans)
}

func TestRecognizeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("eng").Recognize(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}
